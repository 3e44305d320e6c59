package main

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/paradox_detector/domain/models"
	"github.com/pivolan/paradox_detector/paradox"
	"github.com/pivolan/paradox_detector/plot"
)

// currentTable remembers the last imported table per chat so column
// commands know what to query.
var currentTable = map[int64]models.ClickhouseTableName{}

func handleCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	fullCommand := update.Message.Command()

	paradoxPrefix := "paradox_"
	detailsPrefix := "details_"
	clustersPrefix := "clusters_"
	histPrefix := "hist_"

	switch {
	case strings.HasPrefix(fullCommand, paradoxPrefix):
		args := strings.TrimPrefix(fullCommand, paradoxPrefix)
		if args == "" {
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Specify columns after paradox, like /paradox_dose__recovery__severity")
			api.Send(msg)
			return
		}
		handleParadoxTriple(api, update, args, false)

	case strings.HasPrefix(fullCommand, detailsPrefix):
		args := strings.TrimPrefix(fullCommand, detailsPrefix)
		if args == "" {
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Specify columns after details, like /details_dose__recovery__severity")
			api.Send(msg)
			return
		}
		handleParadoxTriple(api, update, args, true)

	case strings.HasPrefix(fullCommand, clustersPrefix):
		columnName := strings.TrimPrefix(fullCommand, clustersPrefix)
		if columnName == "" {
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Specify a column name after clusters")
			api.Send(msg)
			return
		}
		handleClusterColumn(api, update, columnName)

	case strings.HasPrefix(fullCommand, histPrefix):
		columnName := strings.TrimPrefix(fullCommand, histPrefix)
		if columnName == "" {
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Specify a column name after hist")
			api.Send(msg)
			return
		}
		handleHistColumn(api, update, columnName)

	case fullCommand == "sweep":
		handleSweepCommand(api, update)
	case fullCommand == "columns":
		handleColumnsCommand(api, update)
	case fullCommand == "generate":
		handleGenerateCommand(api, update)
	case fullCommand == "start":
		handleStartCommand(api, update)
	default:
		msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Unknown command. Use /paradox_<cause>__<effect>__<factor>, /clusters_<column>, /hist_<column>, /sweep, /columns or /generate")
		api.Send(msg)
	}
}

func paradoxCommand(cause, effect, factor string) string {
	return fmt.Sprintf("paradox_%s__%s__%s", cause, effect, factor)
}

// loadCurrentDataset reloads the chat's active table from ClickHouse.
func loadCurrentDataset(chatID int64) (models.Dataset, error) {
	tableName, exists := currentTable[chatID]
	if !exists {
		return models.Dataset{}, fmt.Errorf("no table selected, upload a file first")
	}
	db, err := connectDB()
	if err != nil {
		return models.Dataset{}, fmt.Errorf("cannot connect to database: %w", err)
	}
	return loadDataset(db, tableName)
}

func handleParadoxTriple(api *tgbotapi.BotAPI, update tgbotapi.Update, args string, withDetails bool) {
	parts := strings.Split(args, "__")
	if len(parts) != 3 {
		msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Bad column format. Expected: cause__effect__factor")
		api.Send(msg)
		return
	}
	cause, effect, factor := parts[0], parts[1], parts[2]

	ds, err := loadCurrentDataset(update.Message.Chat.ID)
	if err != nil {
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, err.Error()))
		return
	}

	opts := paradox.DefaultOptions()
	trace := &strings.Builder{}
	opts.Out = trace

	report, err := paradox.Detect(ds, cause, effect, factor, opts)
	if err != nil {
		log.Printf("detect %s: %v", args, err)
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "Detection failed: "+err.Error()))
		return
	}

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, FormatVerdict(report)+"\n\n<pre>\n"+GenerateTrendTable(report)+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	api.Send(msg)

	if withDetails {
		causeVals, effectVals, err := coercePair(ds, cause, effect)
		if err == nil {
			summaries := SummarizeSubgroups(report, causeVals, effectVals)
			api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, FormatSubgroupSummaries(cause, effect, summaries)))
		}
		if trace.Len() > 0 {
			data := tgbotapi.FileBytes{Name: "trace" + time.Now().Format("20060102-150405") + ".txt", Bytes: []byte(trace.String())}
			doc := tgbotapi.NewDocumentUpload(update.Message.Chat.ID, data)
			doc.Caption = "analysis trace"
			api.Send(doc)
		}
	}

	sendParadoxCharts(update.Message.Chat.ID, ds, report, api)
}

func coercePair(ds models.Dataset, cause, effect string) ([]float64, []float64, error) {
	causeCol, ok := ds.Column(cause)
	if !ok {
		return nil, nil, fmt.Errorf("column %s not found", cause)
	}
	effectCol, ok := ds.Column(effect)
	if !ok {
		return nil, nil, fmt.Errorf("column %s not found", effect)
	}
	causeVals, err := paradox.CoerceNumeric(causeCol)
	if err != nil {
		return nil, nil, err
	}
	effectVals, err := paradox.CoerceNumeric(effectCol)
	if err != nil {
		return nil, nil, err
	}
	return causeVals, effectVals, nil
}

// sendParadoxCharts draws the trend scatter for one report, plus the
// cluster scatter when the factor had to be discretized.
func sendParadoxCharts(chatID int64, ds models.Dataset, report *paradox.Report, api *tgbotapi.BotAPI) {
	causeVals, effectVals, err := coercePair(ds, report.Cause, report.Effect)
	if err != nil {
		log.Printf("Error coercing columns for chart: %v", err)
		return
	}

	series := make([]plot.TrendSeries, 0, len(report.Subgroups))
	for _, sg := range report.Subgroups {
		series = append(series, plot.TrendSeries{
			Label:     sg.Label,
			Rows:      sg.Rows,
			Slope:     sg.Slope,
			Intercept: sg.Intercept,
		})
	}
	graphData, err := plot.DrawTrendScatter(causeVals, effectVals, series, report.OverallSlope, report.OverallIntercept, report.Cause, report.Effect)
	if err != nil {
		log.Printf("Error generating trend plot: %v", err)
		api.Send(tgbotapi.NewMessage(chatID, "Chart generation failed"))
		return
	}
	sendGraphVisualization(graphData, "scatter", report.Cause+"_"+report.Effect, report.Factor, chatID, api)

	if report.Clusters != nil {
		factorCol, ok := ds.Column(report.Factor)
		if ok && factorCol.Kind == models.KindNumeric {
			clusterData, err := plot.DrawClusterScatter(factorCol.Numbers, report.Clusters.Assignments, report.Clusters.K, report.Factor)
			if err != nil {
				log.Printf("Error generating cluster plot: %v", err)
				return
			}
			sendGraphVisualization(clusterData, "clusters", report.Factor, report.Factor, chatID, api)
		}
	}
}

// renderTrendHTML builds the interactive echarts page for one report.
func renderTrendHTML(ds models.Dataset, report *paradox.Report) ([]byte, error) {
	causeVals, effectVals, err := coercePair(ds, report.Cause, report.Effect)
	if err != nil {
		return nil, err
	}
	series := make([]plot.TrendSeries, 0, len(report.Subgroups))
	for _, sg := range report.Subgroups {
		series = append(series, plot.TrendSeries{
			Label:     sg.Label,
			Rows:      sg.Rows,
			Slope:     sg.Slope,
			Intercept: sg.Intercept,
		})
	}
	return plot.RenderTrendReport(causeVals, effectVals, series, report.Cause, report.Effect)
}

func handleClusterColumn(api *tgbotapi.BotAPI, update tgbotapi.Update, columnName string) {
	ds, err := loadCurrentDataset(update.Message.Chat.ID)
	if err != nil {
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, err.Error()))
		return
	}
	col, ok := ds.Column(columnName)
	if !ok {
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "Column not found: "+columnName))
		return
	}
	if col.Kind != models.KindNumeric {
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "Clustering works on numeric columns only"))
		return
	}

	opts := paradox.DefaultOptions()
	opts.Verbose = false
	// force the cluster path even for few distinct values
	opts.ContinuousThreshold = 2
	subgroups, clusters, err := paradox.GroupByFactor(ds, columnName, opts)
	if err != nil {
		log.Printf("cluster %s: %v", columnName, err)
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "Clustering failed: "+err.Error()))
		return
	}
	if clusters == nil {
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "Column has too few distinct values to cluster"))
		return
	}

	statsMsg := fmt.Sprintf("Clustered %s into %d groups (cost %.2f):\n", columnName, clusters.K, clusters.Cost)
	for _, sg := range subgroups {
		statsMsg += fmt.Sprintf("- %s: %d rows\n", sg.Label, len(sg.Rows))
	}
	api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, statsMsg))

	graphData, err := plot.DrawClusterScatter(col.Numbers, clusters.Assignments, clusters.K, columnName)
	if err != nil {
		log.Printf("Error generating cluster plot: %v", err)
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "Chart generation failed"))
		return
	}
	sendGraphVisualization(graphData, "clusters", columnName, columnName, update.Message.Chat.ID, api)

	html, err := plot.RenderClusterReport(col.Numbers, clusters.Assignments, clusters.K, columnName)
	if err == nil {
		data := tgbotapi.FileBytes{Name: "clusters_" + columnName + ".html", Bytes: html}
		doc := tgbotapi.NewDocumentUpload(update.Message.Chat.ID, data)
		doc.Caption = "interactive cluster report"
		api.Send(doc)
	}
}

func handleHistColumn(api *tgbotapi.BotAPI, update tgbotapi.Update, columnName string) {
	tableName, exists := currentTable[update.Message.Chat.ID]
	if !exists {
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "No table selected, upload a file first"))
		return
	}
	db, err := connectDB()
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "Database connection failed"))
		return
	}

	pngData, err, pngData2 := GenerateHistogram(db, tableName, columnName)
	if err != nil {
		log.Printf("Error generating histogram: %v", err)
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "Chart generation failed"))
		return
	}

	sendGraphVisualization(pngData, "histogram", columnName, columnName, update.Message.Chat.ID, api)
	sendGraphVisualization(pngData2, "density", columnName, columnName, update.Message.Chat.ID, api)
}

func handleSweepCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	ds, err := loadCurrentDataset(update.Message.Chat.ID)
	if err != nil {
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, err.Error()))
		return
	}
	sendFindings(update.Message.Chat.ID, ds, api)
}

func handleColumnsCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	ds, err := loadCurrentDataset(update.Message.Chat.ID)
	if err != nil {
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, err.Error()))
		return
	}
	api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, formatColumnCommands(ds)))
}

// handleGenerateCommand builds a synthetic dataset with a hidden reversal
// and runs detection on it right away, so the workflow can be tried
// without uploading anything.
func handleGenerateCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ds, err := paradox.GenerateParadoxDataset(200, rng, 20)
	if err != nil {
		log.Printf("generate: %v", err)
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "Generation failed: "+err.Error()))
		return
	}

	csvData := datasetToCSV(ds)
	data := tgbotapi.FileBytes{Name: "paradox_sample" + time.Now().Format("20060102-150405") + ".csv", Bytes: []byte(csvData)}
	doc := tgbotapi.NewDocumentUpload(update.Message.Chat.ID, data)
	doc.Caption = fmt.Sprintf("synthetic dataset, try /%s after uploading it", paradoxCommand(paradox.GeneratedCause, paradox.GeneratedEffect, paradox.GeneratedFactor))
	api.Send(doc)

	opts := paradox.DefaultOptions()
	opts.Verbose = false
	report, err := paradox.Detect(ds, paradox.GeneratedCause, paradox.GeneratedEffect, paradox.GeneratedFactor, opts)
	if err != nil {
		log.Printf("detect generated: %v", err)
		return
	}
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, FormatVerdict(report)+"\n\n<pre>\n"+GenerateTrendTable(report)+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	api.Send(msg)
	sendParadoxCharts(update.Message.Chat.ID, ds, report, api)
}

func handleStartCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, welcomeText)
	api.Send(msg)
}

func datasetToCSV(ds models.Dataset) string {
	names := ds.ColumnNames()
	buf := &strings.Builder{}
	buf.WriteString(strings.Join(names, ","))
	buf.WriteString("\n")
	for row := 0; row < ds.Rows(); row++ {
		fields := make([]string, 0, len(ds.Columns))
		for _, col := range ds.Columns {
			if col.Kind == models.KindNumeric {
				fields = append(fields, fmt.Sprintf("%g", col.Numbers[row]))
			} else {
				fields = append(fields, col.Labels[row])
			}
		}
		buf.WriteString(strings.Join(fields, ","))
		buf.WriteString("\n")
	}
	return buf.String()
}
