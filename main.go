package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	app "github.com/rocketscienceinc/tictactoe-solo/internal"
	"github.com/rocketscienceinc/tictactoe-solo/internal/config"
)

const configFile = "config.yml"

// main loads config.yml from the working directory, sets up the JSON logger and serves the game API.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()
	logger := initLogger(conf)

	seed := conf.Bot.ResolveSeed(time.Now())
	logger.Info("tictactoe starting",
		"storage", conf.Storage,
		"http_port", conf.HTTPPort,
		"session_ttl", conf.SessionTTL.String(),
		"bot_seed", seed,
	)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, configFile))
}

func initLogger(conf *config.Config) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(conf.LogLevel)})

	return slog.New(handler).With("service", "tictactoe")
}

// parseLevel maps the config value to a slog level, falling back to info.
func parseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo
	}

	return level
}
