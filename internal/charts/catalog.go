// Package charts holds the chart-type registry, color palettes and the
// column checks used to decide whether a chart can be drawn.
package charts

import (
	"fmt"
	"sort"
)

// ChartType names a visualization kind.
type ChartType string

const (
	Bar       ChartType = "bar"
	Line      ChartType = "line"
	Pie       ChartType = "pie"
	Scatter   ChartType = "scatter"
	Doughnut  ChartType = "doughnut"
	Area      ChartType = "area"
	Radar     ChartType = "radar"
	Polar     ChartType = "polar"
	Bubble    ChartType = "bubble"
	Histogram ChartType = "histogram"
	Sankey    ChartType = "sankey"
	Waterfall ChartType = "waterfall"
	Funnel    ChartType = "funnel"
	Treemap   ChartType = "treemap"
	Boxplot   ChartType = "boxplot"
	Heatmap   ChartType = "heatmap"
	Scatter3D ChartType = "scatter3d"
	Gauge     ChartType = "gauge"
	KPI       ChartType = "kpi"
)

// Priority ranks a recommendation.
type Priority string

const (
	High   Priority = "high"
	Medium Priority = "medium"
	Low    Priority = "low"
)

// Category groups chart types for menus.
type Category string

const (
	Basic    Category = "basic"
	Advanced Category = "advanced"
	Business Category = "business"
)

// Engine is the rendering library a chart type is drawn with.
type Engine string

const (
	ChartJS Engine = "chartjs"
	Plotly  Engine = "plotly"
)

// Info describes one chart type in the catalog.
type Info struct {
	Type       ChartType `json:"type" yaml:"type"`
	Name       string    `json:"name" yaml:"name"`
	Category   Category  `json:"category" yaml:"category"`
	MinColumns int       `json:"min_columns" yaml:"min_columns"`
	Engine     Engine    `json:"engine" yaml:"engine"`
}

// Catalog is read-only configuration: the known chart types and palettes.
// Build one with DefaultCatalog and pass it to whoever needs it.
type Catalog struct {
	charts   []Info
	index    map[ChartType]int
	palettes map[string]Palette
}

// DefaultCatalog returns a fresh catalog with the built-in chart registry
// and palettes.
func DefaultCatalog() Catalog {
	infos := []Info{
		{Bar, "Bar chart", Basic, 2, ChartJS},
		{Line, "Line chart", Basic, 2, ChartJS},
		{Pie, "Pie chart", Basic, 2, ChartJS},
		{Scatter, "Scatter plot", Basic, 2, ChartJS},
		{Doughnut, "Doughnut chart", Basic, 2, ChartJS},
		{Area, "Area chart", Basic, 2, ChartJS},
		{Radar, "Radar chart", Advanced, 3, ChartJS},
		{Polar, "Polar area chart", Advanced, 2, ChartJS},
		{Bubble, "Bubble chart", Advanced, 3, ChartJS},
		{Histogram, "Histogram", Advanced, 1, ChartJS},
		{Sankey, "Sankey diagram", Business, 3, Plotly},
		{Waterfall, "Waterfall chart", Business, 2, Plotly},
		{Funnel, "Funnel chart", Business, 2, Plotly},
		{Treemap, "Treemap", Business, 2, Plotly},
		{Boxplot, "Box plot", Advanced, 1, Plotly},
		{Heatmap, "Heatmap", Advanced, 2, Plotly},
		{Scatter3D, "3D scatter plot", Advanced, 3, Plotly},
		{Gauge, "Gauge", Business, 1, Plotly},
		{KPI, "KPI card", Business, 1, Plotly},
	}
	c := Catalog{charts: infos, index: make(map[ChartType]int, len(infos)), palettes: defaultPalettes()}
	for i, in := range infos {
		c.index[in.Type] = i
	}
	return c
}

// Lookup returns the entry for a chart type.
func (c Catalog) Lookup(t ChartType) (Info, bool) {
	i, ok := c.index[t]
	if !ok {
		return Info{}, false
	}
	return c.charts[i], true
}

// Charts returns all entries in registry order.
func (c Catalog) Charts() []Info {
	out := make([]Info, len(c.charts))
	copy(out, c.charts)
	return out
}

// ByCategory groups entries by category, preserving registry order.
func (c Catalog) ByCategory() map[Category][]Info {
	out := map[Category][]Info{}
	for _, in := range c.charts {
		out[in.Category] = append(out[in.Category], in)
	}
	return out
}

// ParseChartType validates a chart type name against the catalog.
func (c Catalog) ParseChartType(s string) (ChartType, error) {
	t := ChartType(s)
	if _, ok := c.index[t]; !ok {
		return "", fmt.Errorf("unsupported chart type: %s", s)
	}
	return t, nil
}

// PaletteNames lists the available palettes, sorted.
func (c Catalog) PaletteNames() []string {
	names := make([]string, 0, len(c.palettes))
	for k := range c.palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
