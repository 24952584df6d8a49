package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"srrd-bot/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from environment variables and the per-guild
// config file at data/config.yaml.
func Load() (*model.Config, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	appID := os.Getenv("APP_ID")
	if appID == "" {
		log.Fatal("Error: APP_ID environment variable not set")
	}

	logChannelID := os.Getenv("LOG_CHANNEL_ID")
	if logChannelID == "" {
		log.Println("Warning: LOG_CHANNEL_ID not set, operational log relay disabled")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/records.db"
	}

	cfg := &model.Config{
		BotToken:         token,
		AppID:            appID,
		LogChannelID:     logChannelID,
		DBPath:           dbPath,
		DeveloperUserIDs: strings.Split(os.Getenv("DEVELOPER_USER_IDS"), ","),
		ServerConfigs:    make(map[string]model.ServerConfig),
	}

	if err := loadServerConfigs(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadServerConfigs reads the per-guild settings from data/config.yaml.
// A missing file is not fatal; the bot simply starts with no guilds enabled.
func loadServerConfigs(cfg *model.Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("data")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: data/config.yaml not found, no guilds enabled")
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var servers []model.ServerConfig
	if err := v.UnmarshalKey("servers", &servers); err != nil {
		return fmt.Errorf("failed to parse server configs: %w", err)
	}
	for _, serverCfg := range servers {
		cfg.ServerConfigs[serverCfg.GuildID] = serverCfg
	}

	return nil
}
