package main

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mozillazg/go-unidecode"
	"github.com/pivolan/go_utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pivolan/paradox_detector/config"
	"github.com/pivolan/paradox_detector/domain/models"
)

func getMD5String(input string) string {
	hasher := md5.New()
	hasher.Write([]byte(input))
	hashBytes := hasher.Sum(nil)
	hashString := hex.EncodeToString(hashBytes)
	return hashString
}

func SearchStrings(a []string, x string) int {
	for i, s := range a {
		if s == x {
			return i
		}
	}
	return -1
}

func replaceSpecialSymbols(input string) string {
	// Transliterate first so cyrillic or accented headers survive as ascii
	processedString := unidecode.Unidecode(input)

	// Replace all non-alphanumeric characters with underscores
	re := regexp.MustCompile("[^a-zA-Z0-9]+")
	processedString = re.ReplaceAllString(processedString, "_")

	// Replace any consecutive underscores with a single underscore
	processedString = strings.ReplaceAll(processedString, "__", "_")

	// Remove any underscores at the beginning or end of the string
	processedString = strings.Trim(processedString, "_")

	return processedString
}

func connectDB() (*gorm.DB, error) {
	cfg := config.GetConfig()
	return gorm.Open(mysql.Open(cfg.DatabaseDSN), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
}

func getColumnAndTypeList(db *gorm.DB, tableName string) ([]models.ColumnInfo, error) {
	query := fmt.Sprintf("DESCRIBE TABLE %s", tableName)
	tx := db.Raw(query)
	if tx.Error != nil {
		return nil, tx.Error
	}

	var columns []models.ColumnInfo
	tx.Scan(&columns)

	return columns, nil
}

func IsNumericType(_type string) bool {
	return go_utils.InArray(_type, []string{"Int64", "Float64", "Nullable(Int64)", "Nullable(Float64)"})
}

func excludeColumn(name string) bool {
	return go_utils.InArray(name, []string{"id", "slug"})
}

// loadDataset pulls a previously imported table back out of ClickHouse as
// an in-memory dataset. Numeric column types come back as numeric columns,
// everything else turns into categorical labels. The synthetic id column
// only orders the rows and is dropped from the result.
func loadDataset(db *gorm.DB, tableName models.ClickhouseTableName) (models.Dataset, error) {
	columns, err := getColumnAndTypeList(db, string(tableName))
	if err != nil {
		return models.Dataset{}, fmt.Errorf("describe %s: %w", tableName, err)
	}
	if len(columns) == 0 {
		return models.Dataset{}, fmt.Errorf("table %s has no columns", tableName)
	}

	var rows []map[string]interface{}
	tx := db.Raw(fmt.Sprintf("SELECT * FROM %s ORDER BY id", tableName)).Scan(&rows)
	if tx.Error != nil {
		return models.Dataset{}, fmt.Errorf("select from %s: %w", tableName, tx.Error)
	}

	ds := models.Dataset{}
	for _, info := range columns {
		if excludeColumn(info.Name) {
			continue
		}
		col := models.Column{Name: info.Name}
		if IsNumericType(info.Type) {
			col.Kind = models.KindNumeric
			col.Numbers = make([]float64, 0, len(rows))
			for _, row := range rows {
				v, err := toFloat(row[info.Name])
				if err != nil {
					return models.Dataset{}, fmt.Errorf("column %s: %w", info.Name, err)
				}
				col.Numbers = append(col.Numbers, v)
			}
		} else {
			col.Kind = models.KindCategorical
			col.Labels = make([]string, 0, len(rows))
			for _, row := range rows {
				col.Labels = append(col.Labels, toLabel(row[info.Name]))
			}
		}
		ds.Columns = append(ds.Columns, col)
	}
	sort.Slice(ds.Columns, func(i, j int) bool { return ds.Columns[i].Name < ds.Columns[j].Name })

	if err := ds.Validate(); err != nil {
		return models.Dataset{}, err
	}
	return ds, nil
}

func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case int:
		return float64(x), nil
	case []byte:
		return strconv.ParseFloat(string(x), 64)
	case string:
		return strconv.ParseFloat(x, 64)
	case nil:
		return 0, fmt.Errorf("null value in numeric column")
	default:
		return 0, fmt.Errorf("unexpected value %v of type %T", v, v)
	}
}

func toLabel(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}
