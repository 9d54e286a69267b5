package profile

import (
	"github.com/KaramelBytes/vizprofile-cli/internal/charts"
)

// ColumnType is the semantic type assigned to a column.
type ColumnType string

const (
	TypeNumeric      ColumnType = "numeric"
	TypeCategorical  ColumnType = "categorical"
	TypeDate         ColumnType = "date"
	TypeDateTime     ColumnType = "datetime"
	TypeText         ColumnType = "text"
	TypeMixedNumeric ColumnType = "mixed_numeric"
	TypeEmpty        ColumnType = "empty"
)

// Profile is the complete, read-only result of profiling one table.
type Profile struct {
	RowCount      int      `json:"row_count" yaml:"row_count"`
	ColumnCount   int      `json:"column_count" yaml:"column_count"`
	ColumnNames   []string `json:"column_names" yaml:"column_names"`
	EstimatedSize string   `json:"estimated_size,omitempty" yaml:"estimated_size,omitempty"`

	Columns            map[string]ColumnProfile `json:"columns" yaml:"columns"`
	NumericColumns     []string                 `json:"numeric_columns" yaml:"numeric_columns"`
	CategoricalColumns []string                 `json:"categorical_columns" yaml:"categorical_columns"`
	DateColumns        []string                 `json:"date_columns" yaml:"date_columns"`
	TextColumns        []string                 `json:"text_columns" yaml:"text_columns"`

	Quality         QualityReport         `json:"quality" yaml:"quality"`
	Correlations    CorrelationMatrix     `json:"correlations" yaml:"correlations"`
	Recommendations []ChartRecommendation `json:"recommendations" yaml:"recommendations"`
	Insights        []string              `json:"insights" yaml:"insights"`
}

// ColumnProfile describes one column.
type ColumnProfile struct {
	Type          ColumnType  `json:"type" yaml:"type"`
	MissingRate   int         `json:"missing_rate" yaml:"missing_rate"`
	ValidRate     int         `json:"valid_rate" yaml:"valid_rate"`
	UniqueCount   int         `json:"unique_count" yaml:"unique_count"`
	DuplicateRate int         `json:"duplicate_rate" yaml:"duplicate_rate"`
	SampleValues  []any       `json:"sample_values" yaml:"sample_values"`
	Statistics    *Statistics `json:"statistics" yaml:"statistics"`
}

// Statistics is a tagged variant: exactly one of the pointers is set and it
// matches Kind.
type Statistics struct {
	Kind        ColumnType        `json:"kind" yaml:"kind"`
	Numeric     *NumericStats     `json:"numeric,omitempty" yaml:"numeric,omitempty"`
	Categorical *CategoricalStats `json:"categorical,omitempty" yaml:"categorical,omitempty"`
	Date        *DateStats        `json:"date,omitempty" yaml:"date,omitempty"`
	Text        *TextStats        `json:"text,omitempty" yaml:"text,omitempty"`
}

type NumericStats struct {
	Count  int     `json:"count" yaml:"count"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Range  float64 `json:"range" yaml:"range"`
	Q1     float64 `json:"q1" yaml:"q1"`
	Q3     float64 `json:"q3" yaml:"q3"`
}

type CategoryCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

type CategoricalStats struct {
	// Top holds at most ten categories by descending count.
	Top       []CategoryCount `json:"top" yaml:"top"`
	Distinct  int             `json:"distinct" yaml:"distinct"`
	Mode      *string         `json:"mode" yaml:"mode"`
	ModeCount int             `json:"mode_count" yaml:"mode_count"`
}

type DateStats struct {
	Earliest string `json:"earliest" yaml:"earliest"`
	Latest   string `json:"latest" yaml:"latest"`
	SpanDays int    `json:"span_days" yaml:"span_days"`
	Count    int    `json:"count" yaml:"count"`
}

type TextStats struct {
	MeanLength  int `json:"mean_length" yaml:"mean_length"`
	MinLength   int `json:"min_length" yaml:"min_length"`
	MaxLength   int `json:"max_length" yaml:"max_length"`
	WithDigits  int `json:"with_digits" yaml:"with_digits"`
	WithSpecial int `json:"with_special" yaml:"with_special"`
}

// QualityReport is the table-wide data quality summary.
type QualityReport struct {
	Completeness      int      `json:"completeness" yaml:"completeness"`
	MissingCells      int      `json:"missing_cells" yaml:"missing_cells"`
	DuplicateRowCount int      `json:"duplicate_row_count" yaml:"duplicate_row_count"`
	QualityScore      int      `json:"quality_score" yaml:"quality_score"`
	Recommendations   []string `json:"recommendations" yaml:"recommendations"`
}

// ChartRecommendation is a suggested visualization, not a rendered chart.
type ChartRecommendation struct {
	ChartType charts.ChartType `json:"chart_type" yaml:"chart_type"`
	Title     string           `json:"title,omitempty" yaml:"title,omitempty"`
	Rationale string           `json:"rationale" yaml:"rationale"`
	Priority  charts.Priority  `json:"priority" yaml:"priority"`
}
