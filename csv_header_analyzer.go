// csv_header_analyzer.go
package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pivolan/paradox_detector/domain/models"
)

// AnalyzeHeaders inspects the first CSV row and decides whether it is a
// header row or already data. Header rows are cleaned and deduplicated,
// data rows get generated column_N names instead.
func AnalyzeHeaders(firstRow []string) *models.HeaderAnalysis {
	if len(firstRow) == 0 {
		return nil
	}

	result := &models.HeaderAnalysis{
		Headers:        make([]string, len(firstRow)),
		FirstRowIsData: false,
		FirstDataRow:   firstRow,
	}

	headerLikeCount := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLikeCount++
		}
	}

	// Majority vote over the fields decides header vs data.
	if float64(headerLikeCount)/float64(len(firstRow)) >= 0.5 {
		result.FirstRowIsData = false
		for i, header := range firstRow {
			result.Headers[i] = cleanHeaderName(header, i)
		}
	} else {
		result.FirstRowIsData = true
		for i := range firstRow {
			result.Headers[i] = generateColumnName(i)
		}
	}

	result.Headers = ValidateHeaders(result.Headers)
	return result
}

func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}

	// Date-looking values are data, not column names.
	datePatterns := []string{
		`^\d{4}-\d{2}-\d{2}$`,
		`^\d{2}/\d{2}/\d{4}$`,
		`^\d{2}\.\d{2}\.\d{4}$`,
		`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}$`,
		`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}\.\d+$`,
	}
	for _, pattern := range datePatterns {
		if matched, _ := regexp.MatchString(pattern, text); matched {
			return false
		}
	}

	letters := 0
	digits := 0
	specials := 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		case unicode.IsSpace(r):
		default:
			specials++
		}
	}

	totalChars := letters + digits + specials
	if totalChars == 0 {
		return false
	}
	// A name should be at least 30% letters.
	return letters > 0 && float64(letters)/float64(totalChars) >= 0.3
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// ValidateHeaders resolves duplicate names by suffixing a counter.
func ValidateHeaders(headers []string) []string {
	seen := make(map[string]int)
	result := make([]string, len(headers))

	for i, header := range headers {
		originalHeader := header
		counter := 1
		for {
			if count, exists := seen[header]; exists {
				header = fmt.Sprintf("%s_%d", originalHeader, counter)
				counter++
			} else {
				seen[header] = count + 1
				break
			}
		}
		result[i] = header
	}

	return result
}

// isNumericData reports whether a column's sampled values are mostly numbers.
func isNumericData(values []string) bool {
	if len(values) == 0 {
		return false
	}
	numericCount := 0
	for _, value := range values {
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			numericCount++
		}
	}
	return float64(numericCount)/float64(len(values)) >= 0.8
}

// cleanHeaderName normalizes a header into a safe lowercase column name,
// the same form the database schema uses.
func cleanHeaderName(header string, index int) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return generateColumnName(index)
	}

	cleaned := replaceSpecialSymbols(header)
	if cleaned == "" {
		return generateColumnName(index)
	}
	if !isLikelyHeader(header) {
		return generateColumnName(index)
	}
	return strings.ToLower(cleaned)
}
