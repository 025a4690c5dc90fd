// Package xlsx reads downloaded workbook exports from disk.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository"
)

var _ repository.RowSource = (*Reader)(nil)

// Reader loads rows from a workbook. Locations look like "farm.xlsx#Cows";
// without a sheet name the first sheet is used.
type Reader struct {
	logger *zap.Logger
}

// NewReader builds a workbook reader.
func NewReader(logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{logger: logger}
}

// FetchRows opens the workbook and maps the selected sheet to records.
func (r *Reader) FetchRows(ctx context.Context, location string) ([]models.RawRecord, error) {
	path, sheet := splitLocation(location)
	if path == "" {
		return nil, errors.New("workbook path must not be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			r.logger.Warn("failed to close workbook", zap.String("path", path), zap.Error(err))
		}
	}()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	table, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	r.logger.Debug("workbook sheet read", zap.String("path", path), zap.String("sheet", sheet), zap.Int("rows", len(table)))
	return repository.RowsFromTable(table), nil
}

func splitLocation(location string) (string, string) {
	path, sheet, _ := strings.Cut(location, "#")
	return strings.TrimSpace(path), strings.TrimSpace(sheet)
}
