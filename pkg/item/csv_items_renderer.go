package item

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type ItemsRenderer interface {
	RenderItems(items []Item) (string, error)
}

type CsvItemsRendererImpl struct {
}

func NewCsvItemsRenderer() *CsvItemsRendererImpl {
	return &CsvItemsRendererImpl{}
}

// RenderItems renders items as CSV with a fixed 7-column header, amounts in
// the original currency followed by their naira conversion.
func (t *CsvItemsRendererImpl) RenderItems(items []Item) (string, error) {

	data := make([][]string, 0, len(items)+1)
	data = append(data, []string{"Item", "Budgeted", "Spent", "Currency", "Budgeted_NGN", "Spent_NGN", "Time"})
	for _, item := range items {
		data = append(data, []string{
			item.Text,
			amountToString(item.Budgeted),
			amountToString(item.Spent),
			string(item.Currency),
			amountToString(item.ConvertedBudgetedNGN),
			amountToString(item.ConvertedSpentNGN),
			item.Time.Format("02/01/2006 15:04:05"),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func amountToString(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
