package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/herald-sh/herald/internal/scaffold"
)

var (
	initMCPs     []string
	initEngineer string
	initForce    bool

	initCmd = &cobra.Command{
		Use:   "init <dir>",
		Short: "Scaffold hook wiring, agent stubs, and env templates into a project",
		Long: paragraph(
			fmt.Sprintf("\nPopulate a project with %s: settings wiring for every lifecycle event, agent prompt stubs, a .env.sample, and the pre-generated phrase cache.", keyword("ready-to-use hooks")),
		),
		Example: paragraph("herald init .\nherald init ~/src/app --mcps context7,serena --name Dana"),
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cache, err := cacheDir()
			if err != nil {
				return err
			}

			res, err := scaffold.Run(scaffold.Options{
				TargetDir: args[0],
				Engineer:  initEngineer,
				MCPs:      initMCPs,
				CacheDir:  cache,
				Force:     initForce,
			})
			if err != nil {
				return err
			}

			for _, f := range res.Created {
				fmt.Println(keyword("created ") + f)
			}
			for _, f := range res.Skipped {
				fmt.Println(subtle("kept    " + f))
			}
			if res.CachedFiles > 0 {
				fmt.Printf("copied %d cached phrases\n", res.CachedFiles)
			}
			return nil
		},
	}
)

func init() {
	initCmd.Flags().StringSliceVar(&initMCPs, "mcps", nil, "MCP servers to enable (comma-separated catalog IDs)")
	initCmd.Flags().StringVar(&initEngineer, "name", "", "engineer name for personalized announcements")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite files that already exist")
}
