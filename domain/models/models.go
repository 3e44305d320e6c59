package models

import "fmt"

type ClickhouseTableName string

// ColumnKind is resolved once at ingestion; the analysis core never
// re-inspects values to decide whether a column is numeric.
type ColumnKind int

const (
	KindNumeric ColumnKind = iota
	KindCategorical
)

// Column is a single named column of a tabular dataset. Exactly one of
// Numbers/Labels is populated depending on Kind.
type Column struct {
	Name    string
	Kind    ColumnKind
	Numbers []float64
	Labels  []string
}

func (c Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Numbers)
	}
	return len(c.Labels)
}

// DistinctCount returns the number of distinct values in the column.
func (c Column) DistinctCount() int {
	if c.Kind == KindNumeric {
		seen := map[float64]struct{}{}
		for _, v := range c.Numbers {
			seen[v] = struct{}{}
		}
		return len(seen)
	}
	seen := map[string]struct{}{}
	for _, v := range c.Labels {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Dataset is an ordered set of equally sized columns. Callers own their
// datasets; analysis code works on derived copies only.
type Dataset struct {
	Columns []Column
}

func (d Dataset) Rows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return d.Columns[0].Len()
}

func (d Dataset) Column(name string) (Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (d Dataset) ColumnNames() []string {
	names := make([]string, 0, len(d.Columns))
	for _, c := range d.Columns {
		names = append(names, c.Name)
	}
	return names
}

// Validate checks that all columns share the same length and that the
// populated value slice matches the declared kind.
func (d Dataset) Validate() error {
	for _, c := range d.Columns {
		if c.Len() != d.Rows() {
			return fmt.Errorf("column %s has %d rows, expected %d", c.Name, c.Len(), d.Rows())
		}
		if c.Kind == KindNumeric && len(c.Labels) > 0 {
			return fmt.Errorf("numeric column %s carries labels", c.Name)
		}
		if c.Kind == KindCategorical && len(c.Numbers) > 0 {
			return fmt.Errorf("categorical column %s carries numbers", c.Name)
		}
	}
	return nil
}

type ColumnInfo struct {
	Name string
	Type string //Date DateTime64 Int64 Float64 String
}

type HeaderAnalysis struct {
	Headers        []string
	FirstRowIsData bool
	FirstDataRow   []string
}

// SubgroupSummary is the per-subgroup digest shown by the details command.
type SubgroupSummary struct {
	Label        string
	Count        int
	Slope        float64
	CauseMean    float64
	CauseMedian  float64
	EffectMean   float64
	EffectMedian float64
	EffectQ25    float64
	EffectQ75    float64
}
