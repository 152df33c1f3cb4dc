package main

import (
	"bitbucket.org/sotavant/workhub-chat/internal/api"
	"bitbucket.org/sotavant/workhub-chat/internal/logger"
	"context"
	"fmt"
	"go.uber.org/zap"
	"time"
)

func main() {
	parseFlags()
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	if err := logger.Initialize(flagLogLevel, flagLogFile); err != nil {
		return err
	}

	if flagEmail == "" || flagPassword == "" {
		return fmt.Errorf("login credentials required (-u/-p or WORKHUB_EMAIL/WORKHUB_PASSWORD)")
	}

	client := api.NewClient(flagAPIURL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := client.Login(ctx, flagEmail, flagPassword)
	if err != nil {
		return err
	}

	logger.Log.Info("logged in",
		zap.String("user", user.Name),
		zap.String("role", user.Role))

	return newApp(client, user).runTUI(flagPollInterval)
}
