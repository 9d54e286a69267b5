package profile

import (
	"strings"

	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

// ClassifySampleSize is the number of non-missing values inspected.
const ClassifySampleSize = 100

// Classify assigns a semantic type from a column's raw values. Missing
// entries are discarded before sampling.
func Classify(values []any) ColumnType {
	sample := make([]any, 0, ClassifySampleSize)
	for _, v := range values {
		if table.IsMissing(v) {
			continue
		}
		sample = append(sample, v)
		if len(sample) == ClassifySampleSize {
			break
		}
	}
	if len(sample) == 0 {
		return TypeEmpty
	}

	var numeric, dates int
	for _, v := range sample {
		s := strings.TrimSpace(table.String(v))
		if _, ok := ParseNumeric(v); ok {
			numeric++
		} else if isDateLike(s) {
			dates++
		}
	}
	total := float64(len(sample))
	numericRatio := float64(numeric) / total
	dateRatio := float64(dates) / total

	switch {
	case numericRatio >= 0.8:
		return TypeNumeric
	case dateRatio >= 0.8:
		if hasTimeComponent(sample) {
			return TypeDateTime
		}
		return TypeDate
	case numericRatio > 0.5:
		return TypeMixedNumeric
	}

	distinct := map[string]struct{}{}
	for _, v := range sample {
		distinct[table.Key(v)] = struct{}{}
	}
	if len(distinct) == 1 {
		return TypeCategorical
	}
	if float64(len(distinct))/total < 0.5 {
		return TypeCategorical
	}
	return TypeText
}

func hasTimeComponent(sample []any) bool {
	for _, v := range sample {
		s := table.String(v)
		if strings.Contains(s, ":") || strings.Contains(s, "T") {
			return true
		}
	}
	return false
}
