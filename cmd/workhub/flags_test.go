package main

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestApplyEnvOverrides(t *testing.T) {
	flagAPIURL = "http://localhost:5000/api"
	flagLogLevel = "debug"
	flagPollInterval = 3 * time.Second

	t.Setenv("API_URL", "http://backend:5000/api")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("POLL_INTERVAL", "5s")

	applyEnv()

	assert.Equal(t, "http://backend:5000/api", flagAPIURL)
	assert.Equal(t, "info", flagLogLevel)
	assert.Equal(t, 5*time.Second, flagPollInterval)
}

func TestApplyEnvIgnoresBadInterval(t *testing.T) {
	flagPollInterval = 3 * time.Second

	t.Setenv("POLL_INTERVAL", "soon")

	applyEnv()

	assert.Equal(t, 3*time.Second, flagPollInterval)
}
