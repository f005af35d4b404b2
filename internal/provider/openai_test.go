package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
)

func TestOpenAI_Available(t *testing.T) {
	if err := NewOpenAI(OpenAIConfig{APIKey: "sk-key"}).Available(); err != nil {
		t.Errorf("Available with key = %v, want nil", err)
	}
	if err := NewOpenAI(OpenAIConfig{}).Available(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Available without key = %v, want ErrUnavailable", err)
	}
}

func TestOpenAI_Synthesize(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq openAIRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	p := NewOpenAI(OpenAIConfig{APIKey: "sk-key", BaseURL: srv.URL})

	audio, err := p.Synthesize(context.Background(), "Tests passed!")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if string(audio.Data) != "mp3-bytes" || audio.Format != "mp3" {
		t.Errorf("audio = %q (%s), want mp3-bytes (mp3)", audio.Data, audio.Format)
	}
	if gotPath != "/v1/audio/speech" {
		t.Errorf("request path = %s, want /v1/audio/speech", gotPath)
	}
	if gotAuth != "Bearer sk-key" {
		t.Errorf("Authorization = %q, want Bearer sk-key", gotAuth)
	}
	if gotReq.Input != "Tests passed!" || gotReq.ResponseFormat != "mp3" {
		t.Errorf("request = %+v, want the phrase with mp3 response format", gotReq)
	}
	if gotReq.Model != openAIDefaultModel || gotReq.Voice != openAIDefaultVoice {
		t.Errorf("request model/voice = %s/%s, want defaults %s/%s",
			gotReq.Model, gotReq.Voice, openAIDefaultModel, openAIDefaultVoice)
	}
}

func TestOpenAI_SynthesizeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid_api_key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewOpenAI(OpenAIConfig{APIKey: "bad", BaseURL: srv.URL})

	if _, err := p.Synthesize(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for HTTP 401")
	}
}

func TestEspeak_AvailableWithoutBinary(t *testing.T) {
	p := NewEspeak(EspeakConfig{})
	p.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }

	if err := p.Available(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Available without binary = %v, want ErrUnavailable", err)
	}
}

func TestEspeak_BinaryPreference(t *testing.T) {
	p := NewEspeak(EspeakConfig{})
	p.lookPath = func(name string) (string, error) {
		if name == "espeak-ng" {
			return "/usr/bin/espeak-ng", nil
		}
		return "/usr/bin/espeak", nil
	}

	bin, err := p.binary()
	if err != nil {
		t.Fatal(err)
	}
	if bin != "/usr/bin/espeak-ng" {
		t.Errorf("binary = %s, want espeak-ng preferred", bin)
	}
}
