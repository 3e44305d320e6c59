package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-telegram-bot-api/telegram-bot-api"
	uuid "github.com/satori/go.uuid"

	"github.com/pivolan/paradox_detector/config"
	"github.com/pivolan/paradox_detector/domain/models"
	"github.com/pivolan/paradox_detector/paradox"
)

var toDelete = map[string]time.Time{}

// telegram_handler.go

const welcomeText = `Hi!

I look for Simpson's paradox in your data: cases where a trend between
two columns reverses once the rows are split into groups.

What I can do:
- Analyze CSV files of any size
- Analyze number sequences (just paste numbers into the chat)
- Unpack archives (gzip, lz4, zip)
- Scan every column triple for trend reversals
- Draw scatter plots with per-group trend lines
- Cluster continuous grouping columns automatically

How to use me:
1. Send a CSV file right into the chat
2. Or send a sequence of numbers for a quick digest
3. Or send any message to get a web upload link
4. Try /generate for a synthetic dataset that hides a paradox

Number examples:
- "1 2 3 4 5"
- "1,2,3,4,5"
- "1\n2\n3\n4\n5"
`

func handleText(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	message := update.Message
	text := message.Text

	numbers := ExtractNumbers(text)
	if len(numbers) > 0 {
		stats := AnalyzeNumbers(numbers)
		formattedStats := FormatStats(stats)

		msg := tgbotapi.NewMessage(message.Chat.ID, formattedStats)
		_, err := bot.Send(msg)
		if err != nil {
			return
		}
		return
	}

	switch message.Command() {
	case "start":
		msg := tgbotapi.NewMessage(message.Chat.ID, welcomeText)
		_, err := bot.Send(msg)
		if err != nil {
			return
		}
		return
	}

	uid := uuid.NewV4()
	users[uid.String()] = message.Chat.ID
	cfg := config.GetConfig()
	msg := tgbotapi.NewMessage(message.Chat.ID, "Follow this link to upload a file: "+cfg.PublicURL+"/?id="+uid.String())
	toDelete[uid.String()] = time.Now()
	_, err := bot.Send(msg)
	if err != nil {
		return
	}
}

func handleDocument(bot *tgbotapi.BotAPI, message *tgbotapi.Message) {
	fileURL, err := bot.GetFileDirectURL(message.Document.FileID)
	if err != nil {
		log.Printf("Error getting file URL: %v", err)
		uid := uuid.NewV4()
		users[uid.String()] = message.Chat.ID
		cfg := config.GetConfig()
		msg := tgbotapi.NewMessage(message.Chat.ID, "Error on upload file, if file too big try another method, upload by this link: "+cfg.PublicURL+"/?id="+uid.String())
		bot.Send(msg)
		return
	}

	// Download file to disk
	filePath := filepath.Join(".", strconv.Itoa(message.From.ID), message.Document.FileName)
	err = os.MkdirAll(filepath.Dir(filePath), os.ModePerm)
	if err != nil {
		log.Printf("Error creating directory: %v", err)
		return
	}
	resp, err := http.Get(fileURL)
	if err != nil {
		log.Printf("Error downloading file: %v", err)
		return
	}
	defer resp.Body.Close()
	file, err := os.Create(filePath)
	if err != nil {
		log.Printf("Error creating file: %v", err)
		return
	}
	_, err = io.Copy(file, resp.Body)
	if err != nil {
		log.Printf("Error writing file: %v", err)
		return
	}

	go func() {
		ds, tableName, err := handleFile(filePath)
		if err != nil {
			msg := tgbotapi.NewMessage(message.Chat.ID, "Could not analyze the file: "+err.Error())
			bot.Send(msg)
			return
		}
		currentTable[message.Chat.ID] = tableName
		sendFindings(message.Chat.ID, ds, bot)
	}()
}

// handleFile unpacks the upload if needed, imports it into ClickHouse and
// loads it back as a typed dataset ready for detection.
func handleFile(filePath string) (models.Dataset, models.ClickhouseTableName, error) {
	unpackedFilePath, err := unpackArchive(filePath)
	if err != nil {
		return models.Dataset{}, "", fmt.Errorf("unpack archive: %w", err)
	}
	if unpackedFilePath != "" {
		filePath = unpackedFilePath
	}

	tableName, err := importDataIntoClickHouse(filePath)
	if err != nil {
		return models.Dataset{}, "", fmt.Errorf("import into clickhouse: %w", err)
	}
	db, err := connectDB()
	if err != nil {
		return models.Dataset{}, "", err
	}
	ds, err := loadDataset(db, tableName)
	if err != nil {
		return models.Dataset{}, "", err
	}
	return ds, tableName, nil
}

// sendFindings runs the full sweep over a freshly imported dataset and
// reports the reversals it found, with plots for the strongest ones.
func sendFindings(chatId int64, ds models.Dataset, bot *tgbotapi.BotAPI) {
	opts := paradox.DefaultOptions()
	opts.Verbose = false

	result := sweepParadoxes(ds, opts)

	summary := FormatSweepSummary(result)
	msg := tgbotapi.NewMessage(chatId, "<pre>\n"+summary+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	bot.Send(msg)

	columnsMsg := tgbotapi.NewMessage(chatId, formatColumnCommands(ds))
	bot.Send(columnsMsg)

	if len(result.Findings) == 0 {
		return
	}

	// Full tables as a text attachment, charts for the first findings only.
	tables := ""
	for i := range result.Findings {
		tables += GenerateTrendTable(&result.Findings[i]) + "\n\n"
	}
	data := tgbotapi.FileBytes{Name: "paradoxes" + time.Now().Format("20060102-150405") + ".txt", Bytes: []byte(tables)}
	doc := tgbotapi.NewDocumentUpload(chatId, data)
	doc.Caption = "file"
	bot.Send(doc)

	htmlReports := map[string]string{}
	for i := range result.Findings {
		report := &result.Findings[i]
		if i < 3 {
			sendParadoxCharts(chatId, ds, report, bot)
		}
		html, err := renderTrendHTML(ds, report)
		if err != nil {
			log.Printf("Error rendering html report: %v", err)
			continue
		}
		htmlReports[fmt.Sprintf("%s_%s_by_%s.html", report.Cause, report.Effect, report.Factor)] = string(html)
	}
	if len(htmlReports) > 0 {
		b := ZipArchive(htmlReports)
		data = tgbotapi.FileBytes{Name: "paradox_reports" + time.Now().Format("20060102-150405") + ".zip", Bytes: b}
		doc = tgbotapi.NewDocumentUpload(chatId, data)
		doc.Caption = "interactive reports, open any html file in a browser"
		bot.Send(doc)
	}
}

func formatColumnCommands(ds models.Dataset) string {
	out := "Columns:\n"
	for _, col := range ds.Columns {
		kind := "text"
		if col.Kind == models.KindNumeric {
			kind = "number"
		}
		out += fmt.Sprintf("- %s (%s, %d distinct)\n", col.Name, kind, col.DistinctCount())
	}
	out += "\nCommands:\n" +
		"/paradox_<cause>__<effect>__<factor> - check one triple\n" +
		"/details_<cause>__<effect>__<factor> - per-group digests\n" +
		"/clusters_<column> - cluster a numeric column\n" +
		"/hist_<column> - histogram of a numeric column\n" +
		"/generate - synthetic dataset hiding a paradox"
	return out
}
