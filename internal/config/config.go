package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr            string
	LogLevel        string
	ShutdownTimeout time.Duration
}

func FromEnv() (*Config, error) {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":1337"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	shutdownTimeout := 3 * time.Second
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			return nil, ErrInvalidShutdownTimeout
		}
		shutdownTimeout = time.Duration(seconds) * time.Second
	}

	cfg := &Config{
		Addr:            addr,
		LogLevel:        logLevel,
		ShutdownTimeout: shutdownTimeout,
	}

	return cfg, nil
}
