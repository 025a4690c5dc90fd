package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/domain/models"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) FetchRows(ctx context.Context, location string) ([]models.RawRecord, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RawRecord), args.Error(1)
}

func TestRowsFromTable(t *testing.T) {
	table := [][]string{
		{"\ufeffCow ", " ID", "", "Breed"},
		{"Gauri", "C1", "ignored", "Gir"},
		{"", " ", "", ""},
		{"Lali", "C2"},
	}

	assert.Equal(t, []models.RawRecord{
		{"Cow": "Gauri", "ID": "C1", "Breed": "Gir"},
		{"Cow": "Lali", "ID": "C2"},
	}, RowsFromTable(table))

	assert.Nil(t, RowsFromTable(nil))
	assert.Empty(t, RowsFromTable([][]string{{"Cow", "ID"}}))
}

func TestNewCatalog_RejectsUnregisteredBackend(t *testing.T) {
	_, err := NewCatalog(map[models.DatasetKind]config.DatasetSource{
		models.DatasetProfiles: {Backend: "ftp", Location: "x"},
	}, map[string]RowSource{}, nil)

	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestCatalog_FetchRoutesByKind(t *testing.T) {
	csv := new(mockSource)
	rows := []models.RawRecord{{"Cow": "Gauri"}}
	csv.On("FetchRows", mock.Anything, "https://example.test/profiles.csv").Return(rows, nil).Once()
	csv.On("FetchRows", mock.Anything, "https://example.test/expenses.csv").Return(nil, errors.New("timeout")).Once()

	c, err := NewCatalog(map[models.DatasetKind]config.DatasetSource{
		models.DatasetProfiles: {Backend: "csv", Location: "https://example.test/profiles.csv"},
		models.DatasetExpenses: {Backend: "csv", Location: "https://example.test/expenses.csv"},
	}, map[string]RowSource{"csv": csv}, nil)
	require.NoError(t, err)

	got, err := c.Fetch(context.Background(), models.DatasetProfiles)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	_, err = c.Fetch(context.Background(), models.DatasetExpenses)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch expenses from csv")

	_, err = c.Fetch(context.Background(), models.DatasetProduction)
	assert.ErrorIs(t, err, ErrUnknownDataset)

	csv.AssertExpectations(t)
}
