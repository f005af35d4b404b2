package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/herald-sh/herald/internal/phrase"
	"github.com/herald-sh/herald/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the phrase audio cache",
	Args:  cobra.NoArgs,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache location, entry count, and size",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		st, err := openCache()
		if err != nil {
			return err
		}

		entries, err := st.Entries()
		if err != nil {
			return fmt.Errorf("could not list cache entries: %w", err)
		}
		size, err := st.TotalSize()
		if err != nil {
			return fmt.Errorf("could not size the cache: %w", err)
		}

		fmt.Println(keyword(st.Path()))
		fmt.Printf("%d entries, %s\n", len(entries), humanize.Bytes(uint64(size)))
		for _, e := range entries {
			fmt.Println(subtle("  " + e))
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached audio file",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		st, err := openCache()
		if err != nil {
			return err
		}
		entries, err := st.Entries()
		if err != nil {
			return fmt.Errorf("could not list cache entries: %w", err)
		}
		if err := st.Clear(); err != nil {
			return fmt.Errorf("could not clear cache: %w", err)
		}
		fmt.Printf("Removed %d entries from %s\n", len(entries), st.Path())
		return nil
	},
}

var cacheWarmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Pre-synthesize the standard phrase set",
	Long: paragraph(
		fmt.Sprintf("\nSynthesize and cache every %s so later announcements need no network at all.", keyword("standard phrase")),
	),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		speaker, _, err := newSpeaker(loadCredentials(), true, "")
		if err != nil {
			return err
		}

		var failures int
		for _, text := range phrase.StandardPhrases() {
			res, err := speaker.Prime(cmd.Context(), text)
			if err != nil {
				failures++
				fmt.Fprintf(os.Stderr, "failed  %-30q %v\n", text, err)
				continue
			}
			state := res.Provider
			if res.CacheHit {
				state = "cached"
			}
			fmt.Printf("%-10s %s\n", state, res.Key)
		}

		if failures > 0 {
			return fmt.Errorf("%d phrases could not be synthesized", failures)
		}
		return nil
	},
}

func openCache() (*store.DiskStore, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	st, err := store.NewDiskStore(dir)
	if err != nil {
		return nil, fmt.Errorf("could not open phrase cache: %w", err)
	}
	return st, nil
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd, cacheWarmCmd)
}
