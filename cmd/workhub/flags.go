package main

import (
	"flag"
	"github.com/joho/godotenv"
	"os"
	"time"
)

var flagAPIURL string
var flagLogLevel string
var flagLogFile string
var flagPollInterval time.Duration
var flagEmail string
var flagPassword string

func parseFlags() {
	// values from .env are plain env vars afterwards, so the overrides
	// below pick them up
	_ = godotenv.Load()

	flag.StringVar(&flagAPIURL, "a", "http://localhost:5000/api", "backend API base URL")
	flag.StringVar(&flagLogLevel, "l", "debug", "log level")
	flag.StringVar(&flagLogFile, "f", "", "log file path, empty for stderr")
	flag.DurationVar(&flagPollInterval, "i", 3*time.Second, "chat poll interval")
	flag.StringVar(&flagEmail, "u", "", "login email")
	flag.StringVar(&flagPassword, "p", "", "login password")
	flag.Parse()

	applyEnv()
}

func applyEnv() {
	if envAPIURL := os.Getenv("API_URL"); envAPIURL != "" {
		flagAPIURL = envAPIURL
	}

	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		flagLogLevel = envLogLevel
	}

	if envLogFile := os.Getenv("LOG_FILE"); envLogFile != "" {
		flagLogFile = envLogFile
	}

	if envInterval := os.Getenv("POLL_INTERVAL"); envInterval != "" {
		if d, err := time.ParseDuration(envInterval); err == nil {
			flagPollInterval = d
		}
	}

	if envEmail := os.Getenv("WORKHUB_EMAIL"); envEmail != "" {
		flagEmail = envEmail
	}

	if envPassword := os.Getenv("WORKHUB_PASSWORD"); envPassword != "" {
		flagPassword = envPassword
	}
}
