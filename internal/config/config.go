package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port         string
	DBDSN        string
	ProductsFile string
	BotToken     string
	OrderGroupID int64
	WebURL       string
	LogFile      string
}

// Load reads configuration from the environment. Everything has a workable
// default; an empty BotToken disables the Telegram subsystem while the web
// server keeps running.
func Load() Config {
	cfg := Config{
		Port:         getenv("PORT", "8080"),
		DBDSN:        getenv("DB_DSN", "altindan.db"),
		ProductsFile: getenv("PRODUCTS_FILE", "./products.json"),
		BotToken:     getenv("BOT_TOKEN", os.Getenv("TOKEN")),
		WebURL:       getenv("WEB_URL", os.Getenv("WEBAPP_URL")),
		LogFile:      os.Getenv("LOG_FILE"),
	}
	if raw := getenv("ORDER_GROUP_ID", os.Getenv("GROUP_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Printf("[config] ignoring bad ORDER_GROUP_ID %q: %v", raw, err)
		} else {
			cfg.OrderGroupID = id
		}
	}
	log.Printf("[config] PORT=%s DB_DSN=%s PRODUCTS_FILE=%s WEB_URL=%s bot=%v group=%d",
		cfg.Port, cfg.DBDSN, cfg.ProductsFile, cfg.WebURL, cfg.BotToken != "", cfg.OrderGroupID)
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
