package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harborline/shipdesk"
)

// ExtractResult is the line printed for each file.
type ExtractResult struct {
	File string `json:"file"`
	*shipdesk.ExtractionReport
	ShipID int    `json:"ship_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Run executes the extract command. Files are processed concurrently but
// printed in argument order. Per-file failures are reported inline and
// make the command fail once every file has been tried.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if c.Concurrency < 1 {
		err := shipdesk.Errorf(shipdesk.EINVALID, "concurrency must be at least 1")
		fmt.Fprintf(deps.Stderr, "error: %s\n", shipdesk.ErrorMessage(err))
		return err
	}

	results := make([]ExtractResult, len(c.Files))

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)
	for i, path := range c.Files {
		g.Go(func() error {
			results[i] = c.extractFile(ctx, deps, path)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
		if err := enc.Encode(r); err != nil {
			return err
		}
	}

	if failed > 0 {
		err := fmt.Errorf("%d of %d files failed", failed, len(results))
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	return nil
}

func (c *ExtractCmd) extractFile(ctx context.Context, deps *Dependencies, path string) ExtractResult {
	result := ExtractResult{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Error = errorText(err)
		return result
	}

	doc, err := deps.Reader.ReadDocument(ctx, path, data)
	if err != nil {
		result.Error = errorText(err)
		return result
	}

	fields := deps.Extractor.Extract(doc.Text)
	result.ExtractionReport = shipdesk.NewExtractionReport(doc.Text, fields)

	if c.Create {
		ship, err := shipdesk.NewShip(shipdesk.NewShipInputFromFields(fields), time.Now())
		if err == nil {
			err = deps.Ships.CreateShip(ctx, ship)
		}
		if err != nil {
			result.Error = errorText(err)
			return result
		}
		result.ShipID = ship.ID
	}

	return result
}

// errorText returns the user-facing message for domain errors and the full
// error text otherwise.
func errorText(err error) string {
	if shipdesk.ErrorCode(err) == shipdesk.EINTERNAL {
		return err.Error()
	}
	return shipdesk.ErrorMessage(err)
}
