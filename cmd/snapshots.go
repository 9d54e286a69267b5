package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/vizprofile-cli/internal/config"
)

var snapFormat string

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List, show or delete saved profiles",
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := snapshotStore()
		if err != nil {
			return err
		}
		list, err := store.List()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("(no snapshots)")
			return nil
		}
		for _, s := range list {
			fmt.Printf("- %s  %s  %d rows × %d cols, quality %d  (%s)\n",
				s.ID[:8], s.Source, s.Rows, s.Columns, s.QualityScore, humanize.Time(s.CreatedAt))
		}
		return nil
	},
}

var snapshotsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved profile (id or unique prefix)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := snapshotStore()
		if err != nil {
			return err
		}
		s, err := store.Load(args[0])
		if err != nil {
			return err
		}
		format, err := resolveFormat(snapFormat)
		if err != nil {
			return err
		}
		if format != cfgpkg.FormatMarkdown {
			return printRendered(s, format)
		}
		fmt.Printf("Snapshot %s, saved %s\n\n", s.ID, humanize.Time(s.CreatedAt))
		fmt.Println(s.Profile.Markdown(s.Source))
		return nil
	},
}

var snapshotsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved profile (id or unique prefix)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := snapshotStore()
		if err != nil {
			return err
		}
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Deleted snapshot %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotsCmd)
	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsShowCmd)
	snapshotsCmd.AddCommand(snapshotsDeleteCmd)
	snapshotsShowCmd.Flags().StringVarP(&snapFormat, "format", "f", "", "output format: markdown | json | yaml (default from config)")
}
