package item

import (
	"errors"
	"time"

	"github.com/nairaplan/nairaplan/pkg/currency"
)

var ErrItemNotFound = errors.New("item not found")

// Item is a single budget line: amounts in the original currency plus their
// naira conversion as of the last write. Currency and Time are fixed at
// creation; updates only recompute the converted amounts from the stored
// currency.
type Item struct {
	ID       string
	Text     string
	Budgeted float64
	Spent    float64
	Currency currency.Code
	Time     time.Time
	// ConvertedBudgetedNGN and ConvertedSpentNGN are derived at write time
	// as amount * currency.Rate(Currency).
	ConvertedBudgetedNGN float64
	ConvertedSpentNGN    float64
	Completed            bool
}

// Totals aggregates the converted amounts of a set of items.
type Totals struct {
	Budgeted float64
	Spent    float64
	Variance float64
}

// Summarize sums the converted budgeted and spent amounts over items.
// Variance is budgeted minus spent.
func Summarize(items []Item) Totals {
	totals := Totals{}
	for _, item := range items {
		totals.Budgeted += item.ConvertedBudgetedNGN
		totals.Spent += item.ConvertedSpentNGN
	}
	totals.Variance = totals.Budgeted - totals.Spent
	return totals
}
