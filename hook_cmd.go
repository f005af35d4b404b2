package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/herald-sh/herald/internal/hooklog"
	"github.com/herald-sh/herald/internal/hooks"
	"github.com/herald-sh/herald/internal/speech"
)

var (
	hookNotify bool

	hookCmd = &cobra.Command{
		Use:   "hook <event>",
		Short: "Run one lifecycle hook: JSON event on stdin, decision as exit code",
		Long: paragraph(
			fmt.Sprintf("\nRun a single lifecycle hook. The event payload arrives on stdin as JSON; the decision leaves as the exit code: %s allows, %s blocks with the reason on stderr, anything else is a soft error.", keyword("0"), keyword("2")),
		),
		Example: paragraph("echo \"$PAYLOAD\" | herald hook pre_tool_use\nherald hook stop --notify"),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := hooks.ParseKind(args[0])
			if err != nil {
				return err
			}

			creds := loadCredentials()

			var announcer hooks.Announcer
			if hookNotify {
				speaker, _, err := newSpeaker(creds, false, "")
				if err != nil {
					// A broken audio setup must never block the host.
					fmt.Fprintln(os.Stderr, "herald: audio unavailable:", err)
				} else {
					announcer = speakerAnnouncer{speaker}
				}
			}

			runner := hooks.NewRunner(hooks.RunnerConfig{
				Log:       hooklog.NewWriter(viper.GetString("hooks.log_dir")),
				Announcer: announcer,
				Engineer:  creds.Engineer,
			})

			out := runner.Run(cmd.Context(), kind, os.Stdin)
			if out.Reason != "" {
				fmt.Fprintln(os.Stderr, out.Reason)
			}
			exitCode = out.ExitCode()
			return nil
		},
	}
)

// speakerAnnouncer adapts the speech pipeline to the hook runner.
type speakerAnnouncer struct {
	speaker *speech.Speaker
}

func (a speakerAnnouncer) Announce(ctx context.Context, text string) error {
	_, err := a.speaker.Speak(ctx, text)
	return err
}

func init() {
	hookCmd.Flags().BoolVar(&hookNotify, "notify", false, "speak feedback for stop/notification events")
}
