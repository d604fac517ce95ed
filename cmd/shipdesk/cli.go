package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/harborline/shipdesk"
	"github.com/harborline/shipdesk/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Config    *Config
	Logger    *slog.Logger
	Ships     shipdesk.ShipService
	Users     shipdesk.UserService
	Uploads   shipdesk.UploadStore
	Reader    shipdesk.DocumentReader
	Extractor shipdesk.FieldExtractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ConfigFile string `name:"config" help:"YAML configuration file" env:"SHIPDESK_CONFIG"`
	DB         string `name:"db" help:"SQLite database path" env:"SHIPDESK_DB"`
	LogLevel   string `name:"log-level" help:"Log level (debug, info, warn, error)" env:"SHIPDESK_LOG_LEVEL"`

	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API"`
	Extract ExtractCmd `cmd:"" help:"Extract ship fields from documents"`
	Ships   ShipsCmd   `cmd:"" help:"List ship operations"`
}

// config resolves settings from defaults, the config file and then flags.
func (c *CLI) config(dbPath string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DBPath = dbPath
	if c.ConfigFile != "" {
		if err := cfg.Load(c.ConfigFile); err != nil {
			return nil, err
		}
	}
	if c.DB != "" {
		cfg.DBPath = c.DB
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.Serve.Addr != "" {
		cfg.Addr = c.Serve.Addr
	}
	if c.Serve.Uploads != "" {
		cfg.UploadDir = c.Serve.Uploads
	}
	return cfg, cfg.Validate()
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string `help:"Listen address (default :5000)" env:"SHIPDESK_ADDR"`
	Uploads string `help:"Directory for uploaded files (default uploads)" env:"SHIPDESK_UPLOADS"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Files       []string `arg:"" name:"file" help:"PDF, CSV, TXT or HTML files to extract"`
	Concurrency int      `short:"c" default:"4" help:"Files read concurrently"`
	Create      bool     `help:"Create a ship operation from each extraction"`
}

// ShipsCmd is the "ships" subcommand.
type ShipsCmd struct {
	Status string `short:"s" help:"Only list ships with this status"`
}
