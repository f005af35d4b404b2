package hooks

import (
	"fmt"
	"math/rand"
)

// completionPhrases are the spoken variants for a finished session. All
// of them sit in the pre-generated cache, so announcing one normally
// costs no synthesis call.
var completionPhrases = []string{
	"Work complete!",
	"All done!",
	"Task finished!",
	"Job complete!",
	"Ready for next task!",
}

// personalizationOdds is the chance a phrase is prefixed with the
// engineer's name when one is configured.
const personalizationOdds = 0.3

// announcementText picks what to speak for an event, or "" when the
// event kind has no spoken feedback.
func announcementText(kind Kind, _ *Event, engineer string, rng *rand.Rand) string {
	var text string
	switch kind {
	case Stop:
		text = completionPhrases[rng.Intn(len(completionPhrases))]
	case SubagentStop:
		text = "Subagent complete!"
	case Notification:
		text = "Waiting for your input"
	default:
		return ""
	}

	if engineer != "" && rng.Float64() < personalizationOdds {
		return fmt.Sprintf("%s, %s", engineer, lowerFirst(text))
	}
	return text
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	c := s[0]
	if c >= 'A' && c <= 'Z' {
		return string(c+('a'-'A')) + s[1:]
	}
	return s
}
