package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	speakCacheOnly bool
	speakNoPlay    bool
	speakProvider  string

	speakCmd = &cobra.Command{
		Use:   "speak <phrase>",
		Short: "Speak a phrase, synthesizing and caching it on first use",
		Long: paragraph(
			fmt.Sprintf("\nSpeak a phrase aloud. The first request %s the audio through the provider chain; repeats play straight from the cache.", keyword("synthesizes")),
		),
		Example: paragraph("herald speak \"Work complete!\"\nherald speak --cache-only \"Tests passed!\"\nherald speak --provider espeak \"All done!\""),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			speaker, _, err := newSpeaker(loadCredentials(), speakNoPlay, speakProvider)
			if err != nil {
				return err
			}

			run := speaker.Speak
			if speakCacheOnly {
				run = speaker.Prime
			}

			res, err := run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if res.CacheHit {
				fmt.Println(subtle(fmt.Sprintf("cached  %s  %s", res.Key, res.Path)))
			} else {
				fmt.Println(subtle(fmt.Sprintf("%s  %s  %s", res.Provider, res.Key, res.Path)))
			}
			return nil
		},
	}
)

func init() {
	speakCmd.Flags().BoolVar(&speakCacheOnly, "cache-only", false, "synthesize and cache without playing")
	speakCmd.Flags().BoolVar(&speakNoPlay, "no-play", false, "resolve and cache, print the path, play nothing")
	speakCmd.Flags().StringVar(&speakProvider, "provider", "", "pin one provider (elevenlabs, openai, espeak)")
}
