package models

import "fmt"

// RawRecord is one spreadsheet row keyed by its cleaned header names.
type RawRecord map[string]string

// Get returns the field value, reporting whether the column was present at all.
func (r RawRecord) Get(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}

// DatasetKind enumerates the three spreadsheets the dashboard reads.
type DatasetKind string

const (
	DatasetProfiles   DatasetKind = "profiles"
	DatasetExpenses   DatasetKind = "expenses"
	DatasetProduction DatasetKind = "production"
)

// DatasetKinds lists every kind in landing-view order.
var DatasetKinds = []DatasetKind{DatasetProfiles, DatasetExpenses, DatasetProduction}

// ParseDatasetKind validates a user or config supplied dataset name.
func ParseDatasetKind(v string) (DatasetKind, error) {
	for _, k := range DatasetKinds {
		if string(k) == v {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown dataset %q", v)
}
