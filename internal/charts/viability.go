package charts

import "fmt"

// ColumnCounts are the column-type tallies a viability check needs.
type ColumnCounts struct {
	Numeric     int
	Categorical int
}

// Viability is the outcome of Validate.
type Viability struct {
	Valid  bool   `json:"valid" yaml:"valid"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Validate reports whether a chart type can be drawn from columns with the
// given type counts.
func (c Catalog) Validate(t ChartType, counts ColumnCounts) Viability {
	info, ok := c.Lookup(t)
	if !ok {
		return Viability{Reason: fmt.Sprintf("unsupported chart type: %s", t)}
	}
	if total := counts.Numeric + counts.Categorical; total < info.MinColumns {
		return Viability{Reason: fmt.Sprintf("%s needs at least %d columns", info.Name, info.MinColumns)}
	}
	switch t {
	case Scatter, Bubble:
		if counts.Numeric < 2 {
			return Viability{Reason: "needs at least 2 numeric columns"}
		}
	case Radar:
		if counts.Numeric < 3 {
			return Viability{Reason: "needs at least 3 numeric columns"}
		}
	}
	return Viability{Valid: true}
}

// ColumnSets lists column names by inferred type, in table order.
type ColumnSets struct {
	All         []string
	Numeric     []string
	Categorical []string
	Date        []string
}

// Axes are the default category (x) and value (y) columns for a chart.
type Axes struct {
	Category string `json:"category" yaml:"category"`
	Value    string `json:"value" yaml:"value"`
}

// SelectAxes picks default axes: time first for line charts, otherwise the
// first categorical column, with the first numeric column as the value.
func SelectAxes(t ChartType, cols ColumnSets) Axes {
	value := first(cols.Numeric)
	if value == "" {
		value = nth(cols.All, 1)
	}
	switch t {
	case Line:
		cat := first(cols.Date)
		if cat == "" {
			cat = first(cols.Categorical)
		}
		if cat == "" {
			cat = first(cols.All)
		}
		return Axes{Category: cat, Value: value}
	default:
		cat := first(cols.Categorical)
		if cat == "" {
			cat = first(cols.All)
		}
		return Axes{Category: cat, Value: value}
	}
}

func first(s []string) string { return nth(s, 0) }

func nth(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	if len(s) > 0 {
		return s[0]
	}
	return ""
}
