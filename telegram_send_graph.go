package main

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// sendGraphVisualization sends a rendered chart into the chat with a
// caption matching the visualization type. Telegram rejects large photos,
// so big renders go out as documents instead.
func sendGraphVisualization(graph []byte, visualType string, columnName string, nameGraph string, chatID int64, api *tgbotapi.BotAPI) {
	fileName := fmt.Sprintf("%s_%s_%s.png",
		visualType,
		columnName,
		time.Now().Format("20060102-150405"))

	pngFile := tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: graph,
	}

	var maxSizePhoto = 150000

	switch {
	case maxSizePhoto > len(graph):
		docMsg := tgbotapi.NewPhotoUpload(chatID, pngFile)
		docMsg.Caption = generateVizualDescription(visualType, columnName, nameGraph)

		_, err := api.Send(docMsg)
		if err != nil {
			log.Printf("Error sending %s visualization for %s: %v",
				visualType, columnName, err)
			errMsg := tgbotapi.NewMessage(chatID,
				fmt.Sprintf("Could not send %s visualization. Error: %v",
					visualType, err))
			api.Send(errMsg)
			return
		}
	case maxSizePhoto < len(graph):
		docMsg := tgbotapi.NewDocumentUpload(chatID, pngFile)
		docMsg.Caption = generateVizualDescription(visualType, columnName, nameGraph)

		_, err := api.Send(docMsg)
		if err != nil {
			log.Printf("Error sending %s visualization for %s: %v",
				visualType, columnName, err)
			errMsg := tgbotapi.NewMessage(chatID,
				fmt.Sprintf("Could not send %s visualization. Error: %v",
					visualType, err))
			api.Send(errMsg)
			return
		}
	}
}

func generateVizualDescription(description, columnName string, nameGraph string) string {
	var caption string
	switch description {
	case "scatter":
		caption = fmt.Sprintf("Trend scatter: %s\n"+
			"Colored points are %s groups with their own trend lines, the dashed line is the overall trend.",
			columnName, nameGraph)
	case "clusters":
		caption = fmt.Sprintf("Cluster scatter: %s\n"+
			"Shows how the values of %s split into automatically chosen groups.",
			columnName, nameGraph)
	case "histogram":
		caption = fmt.Sprintf("Distribution histogram: %s\n"+
			"Shows how often each value range occurs in the data.",
			columnName)
	case "density":
		caption = fmt.Sprintf("Density plot: %s\n"+
			"Shows the continuous probability distribution of the values.",
			columnName)
	default:
		caption = fmt.Sprintf("Data visualization: %s", columnName)
	}
	return caption
}
