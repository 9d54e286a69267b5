package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/vizprofile-cli/internal/config"
	"github.com/KaramelBytes/vizprofile-cli/internal/profile"
	"github.com/KaramelBytes/vizprofile-cli/internal/utils"
)

var (
	pbSource sourceFlags
	pbOutDir string
	pbFormat string
	pbSave   bool
	pbQuiet  bool
)

var profileBatchCmd = &cobra.Command{
	Use:   "profile-batch <files...>",
	Short: "Profile multiple files with progress, optionally writing one report per file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := utils.ExpandInputs(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		format, err := resolveFormat(pbFormat)
		if err != nil {
			return err
		}
		if pbOutDir != "" {
			if err := utils.EnsureDir(pbOutDir); err != nil {
				return err
			}
		}
		pr := profile.New()

		total := len(files)
		for i, path := range files {
			if !pbQuiet {
				fmt.Printf("[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			res, err := pbSource.load(cmd.Context(), path, pbQuiet)
			if err != nil {
				return err
			}
			p := pr.Profile(res.Table)
			out, err := render(p, res.Name, format)
			if err != nil {
				return err
			}

			if pbOutDir != "" {
				outFile := reportPath(pbOutDir, path, format)
				if err := os.WriteFile(outFile, []byte(out), 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				if !pbQuiet {
					fmt.Printf("✓ Wrote %s\n", outFile)
				}
			} else if !pbQuiet {
				fmt.Println(out)
			}
			if pbSave {
				id, err := saveSnapshot(path, p)
				if err != nil {
					return err
				}
				if !pbQuiet {
					fmt.Printf("✓ Saved snapshot %s\n", id)
				}
			}
		}
		return nil
	},
}

// reportPath names the report for src inside dir, adding a __N suffix
// instead of overwriting an existing file.
func reportPath(dir, src, format string) string {
	ext := ".md"
	switch format {
	case cfgpkg.FormatJSON:
		ext = ".json"
	case cfgpkg.FormatYAML:
		ext = ".yaml"
	}
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	out := filepath.Join(dir, stem+".profile"+ext)
	if _, err := os.Stat(out); err != nil {
		return out
	}
	for idx := 2; ; idx++ {
		cand := filepath.Join(dir, fmt.Sprintf("%s__%d.profile%s", stem, idx, ext))
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
	}
}

func init() {
	rootCmd.AddCommand(profileBatchCmd)
	pbSource.bind(profileBatchCmd)
	profileBatchCmd.Flags().StringVar(&pbOutDir, "out-dir", "", "directory to write one report per input (default: stdout)")
	profileBatchCmd.Flags().StringVarP(&pbFormat, "format", "f", "", "output format: markdown | json | yaml (default from config)")
	profileBatchCmd.Flags().BoolVar(&pbSave, "save", false, "store each profile as a snapshot")
	profileBatchCmd.Flags().BoolVar(&pbQuiet, "quiet", false, "suppress progress and non-essential output")
}
