package xlsx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"Start Date", "Total Milk Count", "Payment"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]string{"2023-01-01", "10", "200"}))

	_, err := f.NewSheet("Cows")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Cows", "A1", &[]string{"Cow", "ID"}))
	require.NoError(t, f.SetSheetRow("Cows", "A2", &[]string{"Gauri", "C1"}))

	path := filepath.Join(t.TempDir(), "farm.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestFetchRows(t *testing.T) {
	path := writeWorkbook(t)
	r := NewReader(nil)

	rows, err := r.FetchRows(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []models.RawRecord{{"Start Date": "2023-01-01", "Total Milk Count": "10", "Payment": "200"}}, rows)

	rows, err = r.FetchRows(context.Background(), path+"#Cows")
	require.NoError(t, err)
	assert.Equal(t, []models.RawRecord{{"Cow": "Gauri", "ID": "C1"}}, rows)

	_, err = r.FetchRows(context.Background(), path+"#Missing")
	assert.Error(t, err)
}

func TestFetchRows_Errors(t *testing.T) {
	r := NewReader(nil)

	_, err := r.FetchRows(context.Background(), "")
	assert.Error(t, err)

	_, err = r.FetchRows(context.Background(), filepath.Join(t.TempDir(), "none.xlsx"))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.FetchRows(ctx, writeWorkbook(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSplitLocation(t *testing.T) {
	path, sheet := splitLocation(" data/farm.xlsx # Expenses ")
	assert.Equal(t, "data/farm.xlsx", path)
	assert.Equal(t, "Expenses", sheet)
}
