package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pivolan/paradox_detector/domain/models"
)

// LoadCSVDataset reads a whole CSV file into an in-memory dataset without
// going through the database. A column becomes numeric only when every
// one of its values parses as a float, otherwise it stays categorical.
func LoadCSVDataset(filePath string) (models.Dataset, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return models.Dataset{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = SEPARATOR
	r.LazyQuotes = true

	firstRow, err := r.Read()
	if err != nil {
		return models.Dataset{}, fmt.Errorf("read csv header: %w", err)
	}
	analysis := AnalyzeHeaders(firstRow)
	if analysis == nil {
		return models.Dataset{}, fmt.Errorf("empty csv header row")
	}

	records := [][]string{}
	if analysis.FirstRowIsData {
		records = append(records, analysis.FirstDataRow)
	}
	for {
		values, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Dataset{}, fmt.Errorf("read csv row %d: %w", len(records)+1, err)
		}
		if len(values) != len(analysis.Headers) {
			return models.Dataset{}, fmt.Errorf("row %d has %d fields, expected %d", len(records)+1, len(values), len(analysis.Headers))
		}
		records = append(records, values)
	}
	if len(records) == 0 {
		return models.Dataset{}, fmt.Errorf("csv file %s has no data rows", filePath)
	}

	ds := models.Dataset{}
	for i, name := range analysis.Headers {
		raw := make([]string, len(records))
		for j, row := range records {
			raw[j] = strings.TrimSpace(row[i])
		}
		ds.Columns = append(ds.Columns, buildColumn(name, raw))
	}
	if err := ds.Validate(); err != nil {
		return models.Dataset{}, err
	}
	return ds, nil
}

func buildColumn(name string, raw []string) models.Column {
	numbers := make([]float64, len(raw))
	numeric := true
	for i, value := range raw {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			numeric = false
			break
		}
		numbers[i] = v
	}
	if numeric {
		return models.Column{Name: name, Kind: models.KindNumeric, Numbers: numbers}
	}
	return models.Column{Name: name, Kind: models.KindCategorical, Labels: raw}
}
