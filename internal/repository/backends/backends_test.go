package backends

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/domain/models"
)

func TestOpen_CSVAndXLSXWithoutRemoteClients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Cow,ID\nGauri,C1\n"))
	}))
	defer srv.Close()

	cfg := &config.Config{
		Datasets: map[models.DatasetKind]config.DatasetSource{
			models.DatasetProfiles:   {Backend: config.BackendCSV, Location: srv.URL},
			models.DatasetExpenses:   {Backend: config.BackendXLSX, Location: "missing.xlsx"},
			models.DatasetProduction: {Backend: config.BackendCSV, Location: srv.URL},
		},
		Fetch: config.FetchConfig{Timeout: 5 * time.Second},
	}

	catalog, closeFn, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeFn(context.Background())) }()

	rows, err := catalog.Fetch(context.Background(), models.DatasetProfiles)
	require.NoError(t, err)
	assert.Equal(t, []models.RawRecord{{"Cow": "Gauri", "ID": "C1"}}, rows)

	_, err = catalog.Fetch(context.Background(), models.DatasetExpenses)
	assert.Error(t, err)
}

func TestOpen_SheetsWithoutCredentialsFails(t *testing.T) {
	cfg := &config.Config{
		Datasets: map[models.DatasetKind]config.DatasetSource{
			models.DatasetProfiles: {Backend: config.BackendSheets, Location: "Profiles!A:Z"},
		},
		Sheets: config.SheetsConfig{CredentialsPath: "/nonexistent/creds.json", SpreadsheetID: "sheet"},
		Fetch:  config.FetchConfig{Timeout: time.Second},
	}

	_, _, err := Open(context.Background(), cfg, nil)
	assert.Error(t, err)
}
