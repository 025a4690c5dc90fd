// Package backends opens the row sources named by the configuration and
// assembles them into a dataset catalog.
package backends

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/repository"
	"github.com/mamadbah2/dairy/internal/repository/csvexport"
	"github.com/mamadbah2/dairy/internal/repository/mongodb"
	"github.com/mamadbah2/dairy/internal/repository/sheets"
	"github.com/mamadbah2/dairy/internal/repository/xlsx"
)

// CloseFunc releases connections held by the opened backends.
type CloseFunc func(ctx context.Context) error

// Open builds every backend referenced by cfg.Datasets. Sheets and Mongo
// clients are only dialled when a dataset uses them.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.Catalog, CloseFunc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sources := map[string]repository.RowSource{
		config.BackendCSV:  csvexport.NewClient(cfg.Fetch.Timeout, logger.Named("repo.csv")),
		config.BackendXLSX: xlsx.NewReader(logger.Named("repo.xlsx")),
	}
	var closers []CloseFunc

	if cfg.UsesBackend(config.BackendSheets) {
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named("repo.sheets"))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init sheets repository: %w", err)
		}
		sources[config.BackendSheets] = repo
	}

	if cfg.UsesBackend(config.BackendMongo) {
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init mongodb repository: %w", err)
		}
		sources[config.BackendMongo] = repo
		closers = append(closers, repo.Close)
	}

	closeAll := func(ctx context.Context) error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c(ctx))
		}
		return errors.Join(errs...)
	}

	catalog, err := repository.NewCatalog(cfg.Datasets, sources, logger.Named("catalog"))
	if err != nil {
		_ = closeAll(ctx)
		return nil, nil, err
	}

	return catalog, closeAll, nil
}
