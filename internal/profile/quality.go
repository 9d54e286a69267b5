package profile

import (
	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

// Quality recommendation strings, in the order they are appended.
const (
	AdviceMissingValues = "address missing values"
	AdviceDuplicateRows = "remove duplicate rows"
	AdviceGood          = "data quality is good"
)

// Assess computes completeness against the first record's key set, counts
// exact duplicate rows and blends both into a 0-100 score.
func Assess(t table.Table) QualityReport {
	if len(t) == 0 {
		return QualityReport{Recommendations: []string{AdviceMissingValues}}
	}
	cols := t.Columns()
	total := len(t) * len(cols)
	missing := 0
	seen := make(map[string]struct{}, len(t))
	for _, r := range t {
		for _, c := range cols {
			v, _ := r.Get(c)
			if table.IsMissing(v) {
				missing++
			}
		}
		seen[r.Canonical()] = struct{}{}
	}
	dups := len(t) - len(seen)

	completeness := 0
	if total > 0 {
		completeness = int(roundHalfUp(100 * float64(total-missing) / float64(total)))
	}
	uniqueness := 100 * float64(len(t)-dups) / float64(len(t))
	score := int(roundHalfUp((float64(completeness) + uniqueness) / 2))

	var advice []string
	if completeness < 90 {
		advice = append(advice, AdviceMissingValues)
	}
	if dups > 0 {
		advice = append(advice, AdviceDuplicateRows)
	}
	if len(advice) == 0 {
		advice = append(advice, AdviceGood)
	}
	return QualityReport{
		Completeness:      completeness,
		MissingCells:      missing,
		DuplicateRowCount: dups,
		QualityScore:      score,
		Recommendations:   advice,
	}
}
