package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pivolan/paradox_detector/domain/models"
)

const SEPARATOR = ','

// importDataIntoClickHouse sniffs column types from the first 50k rows,
// creates a table named after the columns and a hash of the file path,
// and streams the CSV into it in 5000-row batches.
func importDataIntoClickHouse(filePath string) (models.ClickhouseTableName, error) {
	sourceCSV := filePath
	f, err := os.OpenFile(sourceCSV, os.O_RDONLY, 0655)
	if err != nil {
		return "", err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = SEPARATOR
	r.LazyQuotes = true

	firstRow, err := r.Read()
	if err != nil {
		return "", fmt.Errorf("read csv header: %w", err)
	}
	analysis := AnalyzeHeaders(firstRow)
	if analysis == nil {
		return "", fmt.Errorf("empty csv header row")
	}
	headers := analysis.Headers

	typesWeight := []string{"", "DateTime64", "Date", "Int64", "Float64", "String"}
	types := make([]string, len(headers))
	nullables := make([]string, len(headers))
	if analysis.FirstRowIsData {
		sniffRowTypes(analysis.FirstDataRow, types, nullables, typesWeight)
	}
	for u := 0; u < 50000; u++ {
		values, err := r.Read()
		if err != nil {
			break
		}
		sniffRowTypes(values, types, nullables, typesWeight)
	}

	f.Seek(0, 0)
	r = csv.NewReader(f)
	r.Comma = SEPARATOR
	r.LazyQuotes = true
	if !analysis.FirstRowIsData {
		// skip the header row on the second pass
		if _, err := r.Read(); err != nil {
			return "", err
		}
	}

	db, err := connectDB()
	if err != nil {
		return "", fmt.Errorf("cannot connect to clickhouse: %w", err)
	}

	fields := []string{}
	columns := []string{}
	for i, header := range headers {
		if types[i] == "" {
			types[i] = "String"
		}
		fields = append(fields, fmt.Sprintf("%s %s %s", header, types[i], nullables[i]))
		columns = append(columns, header)
	}
	tableName := strings.Join(columns, "_") + "_" + getMD5String(filePath)[:6]
	if len(columns) > 2 {
		tableName = strings.Join(columns[:3], "_") + "_" + getMD5String(filePath)[:6]
	}

	sql := `CREATE TABLE ` + tableName + ` (id UInt64,`
	idExists := false
	for _, v := range headers {
		if v == "id" {
			idExists = true
			sql = `CREATE TABLE ` + tableName + ` (`
		}
	}
	sql += strings.Join(fields, ",\n") + ") ENGINE = ReplacingMergeTree PRIMARY KEY (id) SETTINGS index_granularity = 8192"
	tx := db.Exec("DROP TABLE IF EXISTS " + tableName)
	if tx.Error != nil {
		log.Println("drop table error", tx.Error)
		return "", tx.Error
	}
	tx = db.Exec(sql)
	if tx.Error != nil {
		return "", tx.Error
	}

	b := bytes.NewBufferString("")
	csvWriter := csv.NewWriter(b)
	i := 0
	for ; ; i++ {
		values, err := r.Read()
		if err != nil {
			break
		}
		for k, v := range values {
			if types[k] == "String" || types[k] == "Date" || types[k] == "DateTime64" {
				values[k] = "'" + replaceSpecialSymbols(v) + "'"
			}
		}

		if !idExists {
			values = append([]string{strconv.Itoa(i)}, values...)
		}
		csvWriter.Write(values)
		if i%5000 == 0 {
			csvWriter.Flush()
			sql := fmt.Sprintf("INSERT INTO "+tableName+" FORMAT CSV \n%s", b.String())
			b.Reset()
			tx = db.Exec(sql)
			if tx.Error != nil {
				log.Println("insert batch error", tx.Error)
				return "", tx.Error
			}
		}
	}
	csvWriter.Flush()
	if b.Len() > 0 {
		sql := fmt.Sprintf("INSERT INTO "+tableName+" FORMAT CSV \n%s", b.String())
		db.Exec(sql)
	}
	log.Println("import finished, rows saved:", i)
	return models.ClickhouseTableName(tableName), nil
}

// sniffRowTypes widens the per-column type guesses with one more row of
// evidence. A column only ever moves toward the heavier type.
func sniffRowTypes(values []string, types, nullables, typesWeight []string) {
	for n, value := range values {
		if n >= len(types) {
			break
		}
		f := ""
		var v interface{}
		var err error
		v, err = time.Parse("2006-01-02 15:04:05.999999", value)
		if err == nil {
			f = "DateTime"
		}
		if err != nil {
			v, err = time.Parse("2006-01-02 15:04:05", value)
			if err == nil {
				f = "DateTime"
			}
			if err != nil {
				v, err = time.Parse("2006-01-02", value)
				if err != nil {
					v, err = strconv.ParseUint(value, 10, 64)
					if err != nil {
						v, err = strconv.ParseInt(value, 10, 64)
						if err != nil {
							v, err = strconv.ParseFloat(value, 64)
							if err != nil {
								v = value
							}
						}
					}
				}
			}
		}
		t := ""
		switch v.(type) {
		case time.Time:
			if f == "DateTime" {
				t = "DateTime64"
			} else {
				t = "Date"
			}
		case uint64:
			t = "Int64"
		case int64:
			t = "Int64"
		case float64:
			t = "Float64"
		case string:
			if v == "" {
				nullables[n] = " NULL "
				continue
			}
			t = "String"
		}
		currentTypeWeight := SearchStrings(typesWeight, t)
		savedTypeWeight := SearchStrings(typesWeight, types[n])
		if currentTypeWeight > savedTypeWeight {
			types[n] = t
		}
	}
}
