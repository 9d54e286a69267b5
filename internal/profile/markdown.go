package profile

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

const maxCorrPairs = 10

// Markdown renders a compact summary suitable for terminals or docs. name is
// the source label printed in the header; empty omits it.
func (p *Profile) Markdown(name string) string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", p.RowCount))
	b.WriteString(fmt.Sprintf("Columns: %d\n", p.ColumnCount))
	if p.EstimatedSize != "" {
		b.WriteString(fmt.Sprintf("Size: ~%s\n", p.EstimatedSize))
	}
	b.WriteString("\n")

	if p.ColumnCount > 0 {
		b.WriteString("[SCHEMA]\n")
		for _, name := range p.ColumnNames {
			writeColumn(&b, name, p.Columns[name])
		}
		b.WriteString("\n")

		b.WriteString("[DATA QUALITY]\n")
		q := p.Quality
		b.WriteString(fmt.Sprintf("- completeness %d%% (missing cells %d), duplicate rows %d, score %d/100\n",
			q.Completeness, q.MissingCells, q.DuplicateRowCount, q.QualityScore))
		for _, r := range q.Recommendations {
			b.WriteString("- ")
			b.WriteString(r)
			b.WriteString("\n")
		}
	}

	if pairs := p.Correlations.Pairs(p.NumericColumns); len(pairs) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		sort.SliceStable(pairs, func(i, j int) bool {
			return math.Abs(pairs[i].R) > math.Abs(pairs[j].R)
		})
		if len(pairs) > maxCorrPairs {
			pairs = pairs[:maxCorrPairs]
		}
		for _, pc := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", safeName(pc.A), safeName(pc.B), pc.R))
		}
	}
	if len(p.Recommendations) > 0 {
		b.WriteString("\n[RECOMMENDED CHARTS]\n")
		for _, r := range p.Recommendations {
			b.WriteString(fmt.Sprintf("- %s (%s): %s\n", r.ChartType, r.Priority, r.Rationale))
		}
	}
	if len(p.Insights) > 0 {
		b.WriteString("\n[INSIGHTS]\n")
		for _, in := range p.Insights {
			b.WriteString("- ")
			b.WriteString(in)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeColumn(b *strings.Builder, name string, c ColumnProfile) {
	b.WriteString(fmt.Sprintf("- %s: %s (missing %d%%, unique %d)", safeName(name), c.Type, c.MissingRate, c.UniqueCount))
	st := c.Statistics
	switch {
	case st == nil:
	case st.Numeric != nil:
		n := st.Numeric
		b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, median %.4g, std %.4g, q1 %.4g, q3 %.4g",
			n.Min, n.Max, n.Mean, n.Median, n.StdDev, n.Q1, n.Q3))
	case st.Categorical != nil:
		cs := st.Categorical
		if len(cs.Top) > 0 {
			b.WriteString(" — top: ")
			for i, kv := range cs.Top {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
			}
			if cs.Distinct > len(cs.Top) {
				b.WriteString(fmt.Sprintf("; distinct=%d", cs.Distinct))
			}
		}
	case st.Date != nil:
		d := st.Date
		b.WriteString(fmt.Sprintf(" — %s to %s (%d days, %d dates)", d.Earliest, d.Latest, d.SpanDays, d.Count))
	case st.Text != nil:
		t := st.Text
		b.WriteString(fmt.Sprintf(" — length avg %d (min %d, max %d)", t.MeanLength, t.MinLength, t.MaxLength))
	}
	if len(c.SampleValues) > 0 && (st == nil || st.Text != nil) {
		b.WriteString(" — e.g., ")
		for i, v := range c.SampleValues {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeVal(table.String(v)))
		}
	}
	b.WriteString("\n")
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string {
	s = strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
	if len(s) > 80 {
		s = s[:77] + "..."
	}
	return s
}
