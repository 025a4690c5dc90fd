// Package csvexport reads published spreadsheet CSV exports over HTTP.
package csvexport

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository"
)

var _ repository.RowSource = (*Client)(nil)

// Client is a resty-backed CSV export reader.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient builds a CSV export client with the given request timeout.
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetHeader("Accept", "text/csv").
		SetTimeout(timeout)

	return &Client{httpClient: httpClient, logger: logger}
}

// FetchRows downloads the CSV published at url and maps it to records.
func (c *Client) FetchRows(ctx context.Context, url string) ([]models.RawRecord, error) {
	if url == "" {
		return nil, errors.New("csv url must not be empty")
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("download csv: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("download csv: status %d", resp.StatusCode())
	}

	table, err := parse(resp.Body())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("csv export downloaded", zap.Int("bytes", len(resp.Body())), zap.Int("lines", len(table)))
	return repository.RowsFromTable(table), nil
}

func parse(body []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	table, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return table, nil
}
