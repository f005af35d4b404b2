// Package phrase maps spoken notification text to stable cache keys.
//
// Keys for the standard phrase set are pre-assigned and human readable so the
// cache directory stays inspectable (work-complete.mp3 rather than a hash).
// Unknown phrases derive a key from a normalized slug plus a short content
// hash; the hash is the collision guarantee, the slug is cosmetic.
package phrase

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"
)

// ErrEmptyPhrase indicates the phrase was empty or all whitespace.
// An empty phrase has no meaningful key and is rejected outright.
var ErrEmptyPhrase = errors.New("phrase is empty")

// maxSlugLen bounds the readable part of a derived key so filenames stay
// manageable. Longer phrases fall back to the content hash alone.
const maxSlugLen = 48

// hashSuffixLen is the number of hex characters of the content hash appended
// to slugged keys. 8 hex chars (32 bits) is plenty for a notification cache.
const hashSuffixLen = 8

// standardKeys is the fixed table of known notification phrases and their
// pre-assigned keys. The same phrase always yields the same key within one
// version of this table.
var standardKeys = map[string]string{
	"Work complete!":                "work-complete",
	"Task finished!":                "task-finished",
	"All done!":                     "all-done",
	"Job complete!":                 "job-complete",
	"Ready for next task!":          "ready-for-next-task",
	"Subagent complete!":            "subagent-complete",
	"Test passed!":                  "test-passed",
	"Tests passed!":                 "tests-passed",
	"Build successful!":             "build-successful",
	"Setup completed successfully!": "setup-completed-successfully",
	"Waiting for your input":        "waiting-for-your-input",
}

// StandardPhrases returns the phrases with pre-assigned keys, for cache
// warming. The returned slice is a copy.
func StandardPhrases() []string {
	phrases := make([]string, 0, len(standardKeys))
	for p := range standardKeys {
		phrases = append(phrases, p)
	}
	return phrases
}

// Resolve returns the cache key for a phrase.
//
// Resolution order:
//  1. Exact match in the standard table: the pre-assigned key.
//  2. Phrases that slug cleanly: slug plus a short content hash suffix.
//  3. Everything else: the content hash of the raw phrase.
//
// Resolve is a pure function: no side effects, same input same output.
func Resolve(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyPhrase
	}

	if key, ok := standardKeys[text]; ok {
		return key, nil
	}

	slug := slugify(text)
	if slug == "" || len(slug) > maxSlugLen {
		return contentHash(text), nil
	}

	return slug + "-" + contentHash(text)[:hashSuffixLen], nil
}

// slugify lowercases the phrase and collapses every non-alphanumeric run into
// a single separator. Non-ASCII input returns "" to force the hash path
// rather than guessing at a transliteration.
func slugify(text string) string {
	var b strings.Builder
	pendingSep := false

	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
		case r > unicode.MaxASCII:
			return ""
		default:
			pendingSep = true
		}
	}

	return b.String()
}

// contentHash returns a hex digest of the raw phrase. 16 bytes of SHA-256
// keeps keys short while leaving collisions out of practical reach.
func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:16])
}
