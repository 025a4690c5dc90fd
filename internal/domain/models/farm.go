package models

import (
	"time"

	"github.com/mamadbah2/dairy/internal/fields"
)

// Column names as they appear in the farm spreadsheets.
const (
	FieldCowName   = "Cow"
	FieldCowID     = "ID"
	FieldBreed     = "Breed"
	FieldAge       = "Age"
	FieldStatus    = "Status"
	FieldDOB       = "DOB"
	FieldDisease   = "Disease"
	FieldRate      = "Rate"
	FieldLastHeat  = "Heat"
	FieldAIDate    = "AI Date"
	FieldLactation = "Lactation"
	FieldTotalMilk = "Total Milk"
	FieldMaxMilk   = "Max"
	FieldMinMilk   = "Min"

	FieldTimestamp = "Timestamp"
	FieldCategory  = "Category"
	FieldRs        = "Rs"

	FieldStartDate = "Start Date"
	FieldMilkCount = "Total Milk Count"
	FieldPayment   = "Payment"
)

// Profile captures a cow profile card. Display fields are kept verbatim.
type Profile struct {
	Name      string
	ID        string
	Breed     string
	Age       string
	Status    string
	DOB       string
	Disease   string
	Rate      string
	LastHeat  time.Time // zero when absent
	AIDate    time.Time // zero when absent
	Lactation string
	TotalMilk string
	MaxMilk   string
	MinMilk   string
}

// ExpenseRecord captures one expense form submission.
type ExpenseRecord struct {
	Date     time.Time
	HasDate  bool
	Category string // raw value, empty when the cell is missing
	Amount   float64
}

// ProductionRecord captures a milk delivery with its payment.
type ProductionRecord struct {
	Date    time.Time
	HasDate bool
	Yield   float64
	Payment float64
}

// NewProfile maps a raw profile row.
func NewProfile(r RawRecord) Profile {
	p := Profile{
		Name:      r[FieldCowName],
		ID:        r[FieldCowID],
		Breed:     r[FieldBreed],
		Age:       r[FieldAge],
		Status:    r[FieldStatus],
		DOB:       r[FieldDOB],
		Disease:   r[FieldDisease],
		Rate:      r[FieldRate],
		Lactation: r[FieldLactation],
		TotalMilk: r[FieldTotalMilk],
		MaxMilk:   r[FieldMaxMilk],
		MinMilk:   r[FieldMinMilk],
	}
	if d, ok := fields.ParseDate(r[FieldLastHeat]); ok {
		p.LastHeat = d
	}
	if d, ok := fields.ParseDate(r[FieldAIDate]); ok {
		p.AIDate = d
	}
	return p
}

// NewExpenseRecord maps a raw expense row.
func NewExpenseRecord(r RawRecord) ExpenseRecord {
	d, ok := fields.ParseDate(r[FieldTimestamp])
	return ExpenseRecord{
		Date:     d,
		HasDate:  ok,
		Category: r[FieldCategory],
		Amount:   fields.ParseAmount(r[FieldRs]),
	}
}

// NewProductionRecord maps a raw milk production row.
func NewProductionRecord(r RawRecord) ProductionRecord {
	d, ok := fields.ParseDate(r[FieldStartDate])
	return ProductionRecord{
		Date:    d,
		HasDate: ok,
		Yield:   fields.ParseAmount(r[FieldMilkCount]),
		Payment: fields.ParseAmount(r[FieldPayment]),
	}
}
