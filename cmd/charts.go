package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/vizprofile-cli/internal/charts"
	cfgpkg "github.com/KaramelBytes/vizprofile-cli/internal/config"
)

var (
	chartsPalette string
	chartsFormat  string
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "List supported chart types and the active color palette",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := charts.DefaultCatalog()
		name := chartsPalette
		if name == "" {
			name = settings().Palette
		}
		format, err := resolveFormat(chartsFormat)
		if err != nil {
			return err
		}
		if format != cfgpkg.FormatMarkdown {
			return printRendered(map[string]any{
				"charts":   cat.Charts(),
				"palette":  cat.Palette(name),
				"palettes": cat.PaletteNames(),
			}, format)
		}

		var b strings.Builder
		byCat := cat.ByCategory()
		for _, c := range []charts.Category{charts.Basic, charts.Advanced, charts.Business} {
			infos := byCat[c]
			if len(infos) == 0 {
				continue
			}
			b.WriteString(fmt.Sprintf("[%s]\n", strings.ToUpper(string(c))))
			for _, in := range infos {
				b.WriteString(fmt.Sprintf("- %s (%s): min columns %d, engine %s\n", in.Type, in.Name, in.MinColumns, in.Engine))
			}
			b.WriteString("\n")
		}
		p := cat.Palette(name)
		b.WriteString(fmt.Sprintf("[PALETTE %s]\n", name))
		b.WriteString("primary:   " + strings.Join(p.Primary, " ") + "\n")
		b.WriteString("secondary: " + strings.Join(p.Secondary, " ") + "\n")
		b.WriteString("available: " + strings.Join(cat.PaletteNames(), ", ") + "\n")
		fmt.Print(b.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
	chartsCmd.Flags().StringVar(&chartsPalette, "palette", "", "palette to show (default from config)")
	chartsCmd.Flags().StringVarP(&chartsFormat, "format", "f", "", "output format: markdown | json | yaml (default from config)")
}
