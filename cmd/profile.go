package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/vizprofile-cli/internal/profile"
	"github.com/KaramelBytes/vizprofile-cli/internal/snapshot"
)

var (
	profSource     sourceFlags
	profOutputPath string
	profFormat     string
	profSave       bool
)

var profileCmd = &cobra.Command{
	Use:   "profile <file>",
	Short: "Profile a CSV/TSV, JSON, XLSX or SQLite file and recommend charts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		format, err := resolveFormat(profFormat)
		if err != nil {
			return err
		}
		res, err := profSource.load(cmd.Context(), path, false)
		if err != nil {
			return err
		}
		p := profile.New().Profile(res.Table)

		out, err := render(p, res.Name, format)
		if err != nil {
			return err
		}
		if profOutputPath != "" {
			if err := os.WriteFile(profOutputPath, []byte(out), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote profile to %s\n", profOutputPath)
		} else {
			fmt.Println(out)
		}
		if profSave {
			id, err := saveSnapshot(path, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "✓ Saved snapshot %s\n", id)
		}
		return nil
	},
}

// saveSnapshot stores p in the configured snapshot directory and returns its id.
func saveSnapshot(source string, p *profile.Profile) (string, error) {
	store, err := snapshotStore()
	if err != nil {
		return "", err
	}
	s := snapshot.New(source, p)
	if err := store.Save(s); err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	return s.ID, nil
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profSource.bind(profileCmd)
	profileCmd.Flags().StringVarP(&profOutputPath, "output", "o", "", "optional path to write the profile")
	profileCmd.Flags().StringVarP(&profFormat, "format", "f", "", "output format: markdown | json | yaml (default from config)")
	profileCmd.Flags().BoolVar(&profSave, "save", false, "store the profile as a snapshot")
}
