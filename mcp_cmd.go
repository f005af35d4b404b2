package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/herald-sh/herald/internal/mcp"
)

var (
	mcpFile string

	mcpCmd = &cobra.Command{
		Use:   "mcp",
		Short: "Manage the project's MCP server configuration",
		Long: paragraph(
			fmt.Sprintf("\nManage %s against a fixed catalog of known servers. Credentials stay out of the file; entries reference them as ${VAR} placeholders.", keyword(".mcp.json")),
		),
		Args: cobra.NoArgs,
	}
)

var mcpListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged servers and their status",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		cfg, err := mcp.Load(mcpFile)
		if err != nil {
			return err
		}
		runtime := mcp.NewRuntimeCheck()

		for _, entry := range mcp.Catalog() {
			var notes []string
			if err := runtime.Check(entry); err != nil {
				notes = append(notes, err.Error())
			}

			status := subtle("available")
			if srv, ok := cfg.Servers[entry.ID]; ok {
				status = keyword("enabled")
				if missing := srv.MissingEnv(); len(missing) > 0 {
					notes = append(notes, "missing "+strings.Join(missing, ", "))
				}
			}
			if len(notes) > 0 {
				status = fmt.Sprintf("%s (%s)", status, strings.Join(notes, "; "))
			}
			fmt.Printf("%-12s %-10s %s\n", entry.ID, status, subtle(entry.Description))
		}
		return nil
	},
}

var mcpAddCmd = &cobra.Command{
	Use:   "add <id>...",
	Short: "Enable cataloged servers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := mcp.Load(mcpFile)
		if err != nil {
			return err
		}
		runtime := mcp.NewRuntimeCheck()
		for _, id := range args {
			entry, err := mcp.Find(id)
			if err != nil {
				return err
			}
			cfg.Add(entry)
			fmt.Println(keyword("enabled ") + id)
			// The entry is still written; the host reads .mcp.json, not
			// this machine's PATH. The warning tells the user what to
			// install before it will launch.
			if err := runtime.Check(entry); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %s: %v\n", id, err)
			}
		}
		return cfg.Save(mcpFile)
	},
}

var mcpRemoveCmd = &cobra.Command{
	Use:   "remove <id>...",
	Short: "Disable configured servers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := mcp.Load(mcpFile)
		if err != nil {
			return err
		}
		for _, id := range args {
			if cfg.Remove(id) {
				fmt.Println(keyword("removed ") + id)
			} else {
				fmt.Println(subtle("not configured: " + id))
			}
		}
		return cfg.Save(mcpFile)
	},
}

var mcpUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh configured entries from the catalog",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		cfg, err := mcp.Load(mcpFile)
		if err != nil {
			return err
		}
		for _, id := range cfg.Enabled() {
			entry, err := mcp.Find(id)
			if err != nil {
				fmt.Println(subtle("skipping uncataloged entry: " + id))
				continue
			}
			cfg.Add(entry)
			fmt.Println(keyword("updated ") + id)
		}
		return cfg.Save(mcpFile)
	},
}

func init() {
	mcpCmd.PersistentFlags().StringVar(&mcpFile, "file", mcp.ConfigFile, "path to the MCP config file")
	mcpCmd.AddCommand(mcpListCmd, mcpAddCmd, mcpRemoveCmd, mcpUpdateCmd)
}
