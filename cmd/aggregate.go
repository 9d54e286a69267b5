package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/vizprofile-cli/internal/aggregate"
	cfgpkg "github.com/KaramelBytes/vizprofile-cli/internal/config"
	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

var (
	aggSource   sourceFlags
	aggFormat   string
	aggColumn   string
	aggBins     int
	aggCategory string
	aggValue    string
	aggLimit    int
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Bin, roll up, group or sort a column for charting",
}

var aggHistogramCmd = &cobra.Command{
	Use:   "histogram <file>",
	Short: "Equal-width histogram of a numeric column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if aggColumn == "" {
			return fmt.Errorf("--column is required")
		}
		t, format, err := loadForAggregate(cmd, args[0])
		if err != nil {
			return err
		}
		if aggBins > aggregate.MaxBins {
			return fmt.Errorf("--bins must be at most %d", aggregate.MaxBins)
		}
		bins := aggBins
		if bins <= 0 {
			bins = settings().HistogramBins
		}
		h := aggregate.Histogram(t, aggColumn, bins)
		if format != cfgpkg.FormatMarkdown {
			return printRendered(h, format)
		}
		var b strings.Builder
		b.WriteString(fmt.Sprintf("[HISTOGRAM] %s (min %.4g, max %.4g, width %.4g)\n", h.Column, h.Min, h.Max, h.Width))
		b.WriteString("| bin | count |\n|---|---|\n")
		for i, label := range h.Labels {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", label, h.Counts[i]))
		}
		fmt.Print(b.String())
		return nil
	},
}

var aggRollupCmd = &cobra.Command{
	Use:   "rollup <file>",
	Short: "Sum and count a value column per category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if aggCategory == "" || aggValue == "" {
			return fmt.Errorf("--category and --value are required")
		}
		t, format, err := loadForAggregate(cmd, args[0])
		if err != nil {
			return err
		}
		buckets := aggregate.Rollup(t, aggCategory, aggValue)
		if format != cfgpkg.FormatMarkdown {
			return printRendered(buckets, format)
		}
		var b strings.Builder
		b.WriteString(fmt.Sprintf("| %s | sum(%s) | count |\n|---|---|---|\n", aggCategory, aggValue))
		for _, bk := range buckets {
			b.WriteString(fmt.Sprintf("| %s | %.4g | %d |\n", bk.Category, bk.Sum, bk.Count))
		}
		fmt.Print(b.String())
		return nil
	},
}

var aggGroupsCmd = &cobra.Command{
	Use:   "groups <file>",
	Short: "Count rows per value of a column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if aggColumn == "" {
			return fmt.Errorf("--column is required")
		}
		t, format, err := loadForAggregate(cmd, args[0])
		if err != nil {
			return err
		}
		groups := aggregate.GroupBy(t, aggColumn)
		type groupCount struct {
			Category string `json:"category" yaml:"category"`
			Rows     int    `json:"rows" yaml:"rows"`
		}
		counts := make([]groupCount, len(groups))
		for i, g := range groups {
			counts[i] = groupCount{Category: g.Category, Rows: len(g.Rows)}
		}
		if format != cfgpkg.FormatMarkdown {
			return printRendered(counts, format)
		}
		for _, c := range counts {
			fmt.Printf("- %s: %d\n", c.Category, c.Rows)
		}
		return nil
	},
}

var aggSortCmd = &cobra.Command{
	Use:   "sort <file>",
	Short: "Print rows sorted ascending by a column (dates, then numbers, then text)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if aggColumn == "" {
			return fmt.Errorf("--column is required")
		}
		t, format, err := loadForAggregate(cmd, args[0])
		if err != nil {
			return err
		}
		sorted := aggregate.SortByColumn(t, aggColumn)
		if aggLimit > 0 && len(sorted) > aggLimit {
			sorted = sorted[:aggLimit]
		}
		if format == cfgpkg.FormatMarkdown {
			format = cfgpkg.FormatJSON
		}
		return printRendered(sorted, format)
	},
}

func loadForAggregate(cmd *cobra.Command, path string) (table.Table, string, error) {
	format, err := resolveFormat(aggFormat)
	if err != nil {
		return nil, "", err
	}
	res, err := aggSource.load(cmd.Context(), path, false)
	if err != nil {
		return nil, "", err
	}
	return res.Table, format, nil
}

func printRendered(v any, format string) error {
	out, err := render(v, "", format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
	for _, c := range []*cobra.Command{aggHistogramCmd, aggRollupCmd, aggGroupsCmd, aggSortCmd} {
		aggregateCmd.AddCommand(c)
		aggSource.bind(c)
		c.Flags().StringVarP(&aggFormat, "format", "f", "", "output format: markdown | json | yaml (default from config)")
	}
	aggHistogramCmd.Flags().StringVar(&aggColumn, "column", "", "numeric column to bin")
	aggHistogramCmd.Flags().IntVar(&aggBins, "bins", 0, "number of bins (default from config histogram_bins)")
	aggRollupCmd.Flags().StringVar(&aggCategory, "category", "", "category column")
	aggRollupCmd.Flags().StringVar(&aggValue, "value", "", "value column to sum")
	aggGroupsCmd.Flags().StringVar(&aggColumn, "column", "", "column to group by")
	aggSortCmd.Flags().StringVar(&aggColumn, "column", "", "column to sort by")
	aggSortCmd.Flags().IntVar(&aggLimit, "limit", 0, "print at most this many rows (0 = all)")
}
