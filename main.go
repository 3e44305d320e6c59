package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/paradox_detector/config"
)

var users = map[string]int64{}
var bot *tgbotapi.BotAPI

func main() {
	fmt.Println("started")
	cfg := config.GetConfig()

	_, err := connectDB()
	if err != nil {
		log.Fatalln("cannot connect to clickhouse", err)
	}
	fmt.Println("connected clickhouse")

	bot, err = tgbotapi.NewBotAPI(cfg.TgToken)
	if err != nil {
		log.Fatal("tg error", err)
	}
	fmt.Println("bot init")

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// Get the uuid from the URL
		id := r.URL.Query().Get("id")

		// Generate the upload form page with the uuid field pre-filled
		tmpl := template.Must(template.ParseFiles("upload.html"))
		err := tmpl.Execute(w, id)
		if err != nil {
			http.Error(w, "Error rendering upload form", http.StatusInternalServerError)
			return
		}
	})

	// Handle a POST request to /upload with a file upload form
	http.HandleFunc("/upload", handleUpload)

	log.Printf("Authorized on account %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	go func() {
		fmt.Println("listen on:", cfg.ListenAddr)
		err := http.ListenAndServe(cfg.ListenAddr, nil)
		if err != nil {
			fmt.Println("Error starting server:", err)
			os.Exit(1)
		}
	}()
	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		log.Fatal("tg updates error", err)
	}
	go func() {
		for {
			time.Sleep(time.Minute)
			for uid, date := range toDelete {
				if time.Now().After(date.Add(time.Hour * 1)) {
					delete(users, uid)
					delete(toDelete, uid)
				}
			}
			removeOldFiles("uploads", time.Now().Add(-time.Hour*2))
		}
	}()
	for update := range updates {
		if update.Message == nil {
			continue
		}

		if update.Message.Document != nil {
			go handleDocument(bot, update.Message)
		} else if update.Message.IsCommand() && update.Message.Command() != "start" {
			go handleCommand(bot, update)
		} else if update.Message.Text != "" {
			go handleText(bot, update)
		}
	}
}

func removeOldFiles(dirPath string, maxAge time.Time) error {
	// Get a list of files and directories in the directory
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}

	// Loop through each file/directory
	for _, file := range files {
		filePath := filepath.Join(dirPath, file.Name())

		// If the file is a directory, recursively call this function on it
		if file.IsDir() {
			err := removeOldFiles(filePath, maxAge)
			if err != nil {
				return err
			}
		} else {
			// If the file is older than the max age, remove it
			fileStat, err := os.Stat(filePath)
			if err != nil {
				return err
			}
			fileModTime := fileStat.ModTime()
			if fileModTime.Before(maxAge) {
				err := os.Remove(filePath)
				if err != nil {
					return err
				}
				fmt.Printf("Removed file: %s\n", filePath)
			}
		}
	}

	return nil
}
