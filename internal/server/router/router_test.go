package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairy/internal/chart"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/server/handlers"
	"github.com/mamadbah2/dairy/internal/service/dashboard"
)

type fixtureFetcher map[models.DatasetKind][]models.RawRecord

func (f fixtureFetcher) Fetch(_ context.Context, kind models.DatasetKind) ([]models.RawRecord, error) {
	return f[kind], nil
}

var fixtures = fixtureFetcher{
	models.DatasetProfiles: {
		{"Cow": "Gauri", "ID": "C1", "Breed": "Gir", "Status": "Open"},
	},
	models.DatasetExpenses: {
		{"Timestamp": "2023-01-05", "Category": "Feed", "Rs": "100"},
		{"Timestamp": "2024-02-10", "Category": "Vet", "Rs": "50"},
	},
	models.DatasetProduction: {
		{"Start Date": "2023-01-02", "Total Milk Count": "12", "Payment": "300"},
	},
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	m := dashboard.NewManager(fixtures, nil)
	srv := httptest.NewServer(New(handlers.NewDashboardHandler(m, nil), nil))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := do(t, http.MethodPost, srv.URL+"/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode[struct {
		ID   string `json:"id"`
		Cows []struct {
			ID string `json:"id"`
		} `json:"cows"`
	}](t, resp)
	require.Len(t, body.Cows, 1)
	return body.ID
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCowEndpoints(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	resp := do(t, http.MethodGet, srv.URL+"/sessions/"+id+"/cows/Gauri", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cow := decode[map[string]any](t, resp)
	assert.Equal(t, "C1", cow["id"])

	resp = do(t, http.MethodGet, srv.URL+"/sessions/"+id+"/cows/Unknown", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnalyticsFlow(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)
	base := srv.URL + "/sessions/" + id

	resp := do(t, http.MethodGet, base+"/charts/"+dashboard.TargetExpenseBar, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodPost, base+"/analytics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	opened := decode[dashboard.Bundle](t, resp)
	assert.Equal(t, []int{2023, 2024}, opened.Options.Years)
	assert.Equal(t, 150.0, opened.Summary.Expense)

	resp = do(t, http.MethodPut, base+"/filter", map[string]any{"year_from": 2024, "year_to": 2024})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	filtered := decode[dashboard.Bundle](t, resp)
	assert.Equal(t, models.Summary{Income: 0, Expense: 50, Profit: -50}, filtered.Summary)

	resp = do(t, http.MethodGet, base+"/charts/"+dashboard.TargetExpensePie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pie := decode[chart.Chart](t, resp)
	assert.Equal(t, []string{"Vet"}, pie.Labels)

	resp = do(t, http.MethodGet, base+"/analytics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	again := decode[dashboard.Bundle](t, resp)
	assert.Equal(t, filtered.Summary, again.Summary)

	resp = do(t, http.MethodGet, base+"/charts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]string](t, resp), 5)
}

func TestSetFilterValidation(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/sessions/" + createSession(t, srv)

	resp := do(t, http.MethodPut, base+"/filter", map[string]any{"year_from": 2024, "year_to": 2023})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPut, base+"/filter", map[string]any{"category": "Feed"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReloadAndDelete(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)
	base := srv.URL + "/sessions/" + id

	resp := do(t, http.MethodPost, base+"/reload", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, base+"/cows", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
