// Package repository defines how raw spreadsheet rows reach the record store.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/fields"
)

// ErrUnknownBackend indicates a dataset points at a backend nobody registered.
var ErrUnknownBackend = errors.New("unknown row source backend")

// ErrUnknownDataset indicates the catalog has no source for a dataset kind.
var ErrUnknownDataset = errors.New("dataset not configured")

// RowSource fetches every row stored at location. The meaning of location is
// backend specific: a URL, a sheet range, a workbook path or a collection name.
type RowSource interface {
	FetchRows(ctx context.Context, location string) ([]models.RawRecord, error)
}

// Fetcher resolves a dataset kind to its rows.
type Fetcher interface {
	Fetch(ctx context.Context, kind models.DatasetKind) ([]models.RawRecord, error)
}

// Catalog routes each dataset kind to its configured backend.
type Catalog struct {
	backends map[string]RowSource
	datasets map[models.DatasetKind]config.DatasetSource
	logger   *zap.Logger
}

// NewCatalog validates that every configured dataset has a registered backend.
func NewCatalog(datasets map[models.DatasetKind]config.DatasetSource, backends map[string]RowSource, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for kind, src := range datasets {
		if _, ok := backends[src.Backend]; !ok {
			return nil, fmt.Errorf("%w %q for dataset %s", ErrUnknownBackend, src.Backend, kind)
		}
	}

	return &Catalog{backends: backends, datasets: datasets, logger: logger}, nil
}

// Fetch reads all rows of the dataset.
func (c *Catalog) Fetch(ctx context.Context, kind models.DatasetKind) ([]models.RawRecord, error) {
	src, ok := c.datasets[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, kind)
	}

	rows, err := c.backends[src.Backend].FetchRows(ctx, src.Location)
	if err != nil {
		return nil, fmt.Errorf("fetch %s from %s: %w", kind, src.Backend, err)
	}

	c.logger.Debug("dataset fetched",
		zap.String("dataset", string(kind)),
		zap.String("backend", src.Backend),
		zap.Int("rows", len(rows)))
	return rows, nil
}

// RowsFromTable turns a header-first table into records. Header cells are
// cleaned, blank lines are dropped and short rows simply omit missing fields.
func RowsFromTable(table [][]string) []models.RawRecord {
	if len(table) == 0 {
		return nil
	}

	header := make([]string, len(table[0]))
	for i, h := range table[0] {
		header[i] = fields.CleanHeader(h)
	}

	records := make([]models.RawRecord, 0, len(table)-1)
	for _, row := range table[1:] {
		if isBlank(row) {
			continue
		}

		rec := make(models.RawRecord, len(header))
		for i, name := range header {
			if name == "" || i >= len(row) {
				continue
			}
			rec[name] = row[i]
		}
		records = append(records, rec)
	}

	return records
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
