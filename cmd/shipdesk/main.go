package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/harborline/shipdesk"
	"github.com/harborline/shipdesk/charmap"
	"github.com/harborline/shipdesk/extract"
	"github.com/harborline/shipdesk/fs"
	"github.com/harborline/shipdesk/goquery"
	"github.com/harborline/shipdesk/pdf"
	shipslog "github.com/harborline/shipdesk/slog"
	"github.com/harborline/shipdesk/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); overridden by --db or the config file.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ShipService shipdesk.ShipService
	UserService shipdesk.UserService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("shipdesk"),
		kong.Description("Terminal ship operations dashboard and document field extraction."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'shipdesk --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := cli.config(m.DBPath)
	if err != nil {
		return err
	}
	m.DBPath = cfg.DBPath

	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SHIPDESK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	if m.ShipService == nil {
		m.ShipService = sqlite.NewShipService(m.DB)
	}
	if m.UserService == nil {
		m.UserService = sqlite.NewUserService(m.DB)
	}

	deps.DB = m.DB
	deps.Config = cfg
	deps.Logger = logger
	deps.Ships = m.ShipService
	deps.Users = m.UserService
	deps.Reader = shipslog.NewLoggingDocumentReader(newDocumentReader(), logger)
	deps.Extractor = shipslog.NewLoggingFieldExtractor(extract.NewEngine(), logger)

	// Global flags may precede the command, so dispatch on the parsed command.
	if kongCtx.Command() == "serve" {
		uploads := fs.NewUploadStore(cfg.UploadDir)
		uploads.MaxSize = cfg.maxUploadBytes()
		deps.Uploads = shipslog.NewLoggingUploadStore(uploads, logger)
	}

	return kongCtx.Run(deps)
}

// newDocumentReader returns a reader covering every supported format.
func newDocumentReader() shipdesk.DocumentReader {
	text := charmap.NewReader()
	return shipdesk.DocumentReaders{
		shipdesk.FormatPDF:  pdf.NewReader(),
		shipdesk.FormatCSV:  text,
		shipdesk.FormatTXT:  text,
		shipdesk.FormatHTML: goquery.NewReader(),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "shipdesk.db"
	}
	dir := filepath.Join(home, ".shipdesk")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "shipdesk.db")
}
