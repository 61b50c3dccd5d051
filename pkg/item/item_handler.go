package item

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/nairaplan/nairaplan/internal/rest"
	"github.com/nairaplan/nairaplan/pkg/currency"
	log "github.com/sirupsen/logrus"
)

type ItemDTO struct {
	ID                   string    `json:"id"`
	Text                 string    `json:"text"`
	Budgeted             float64   `json:"budgeted"`
	Spent                float64   `json:"spent"`
	Currency             string    `json:"currency"`
	Time                 time.Time `json:"time"`
	ConvertedBudgetedNGN float64   `json:"convertedBudgetedNGN"`
	ConvertedSpentNGN    float64   `json:"convertedSpentNGN"`
	Completed            bool      `json:"completed"`
}

// UpdateItemDTO deliberately has no currency or time field: neither can be
// changed after creation.
type UpdateItemDTO struct {
	Text     string  `json:"text"`
	Budgeted float64 `json:"budgeted"`
	Spent    float64 `json:"spent"`
}

type TotalsDTO struct {
	Budgeted float64 `json:"budgeted"`
	Spent    float64 `json:"spent"`
	Variance float64 `json:"variance"`
}

type ItemHandler struct {
	itemService      ItemService
	csvItemsRenderer ItemsRenderer
}

func NewItemHandler(itemService ItemService, csvItemsRenderer ItemsRenderer) *ItemHandler {
	return &ItemHandler{itemService, csvItemsRenderer}
}

func (handler *ItemHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	items, err := handler.itemService.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	handler.writeItems(w, r, items)
}

func (handler *ItemHandler) GetRange(w http.ResponseWriter, r *http.Request) {
	fromString := r.URL.Query().Get("from")
	toString := r.URL.Query().Get("to")
	if fromString == "" || toString == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Provide from & to dates",
			Details: "from and to query parameters are required",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	from, errFrom := parseRangeDate(fromString)
	to, errTo := parseRangeDate(toString)
	if errFrom != nil || errTo != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "dates must be in RFC3339 or YYYY-MM-DD format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	items, err := handler.itemService.ListRange(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	handler.writeItems(w, r, items)
}

func (handler *ItemHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fromString := r.URL.Query().Get("from")
	toString := r.URL.Query().Get("to")

	var items []Item
	var err error
	switch {
	case fromString == "" && toString == "":
		items, err = handler.itemService.List(r.Context())
	case fromString != "" && toString != "":
		from, errFrom := parseRangeDate(fromString)
		to, errTo := parseRangeDate(toString)
		if errFrom != nil || errTo != nil {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid date format",
				Details: "dates must be in RFC3339 or YYYY-MM-DD format",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		items, err = handler.itemService.ListRange(r.Context(), from, to)
	default:
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Provide from & to dates",
			Details: "from and to query parameters must be used together",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	totals := Summarize(items)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(TotalsDTO{
		Budgeted: totals.Budgeted,
		Spent:    totals.Spent,
		Variance: totals.Variance,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new budget item")
	w.Header().Set("Content-Type", "application/json")

	var itemDTO ItemDTO
	if err := json.NewDecoder(r.Body).Decode(&itemDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Missing body fields keep their zero values: text "", amounts 0. An
	// empty currency defaults to NGN in the service.
	item := Item{
		Text:     itemDTO.Text,
		Budgeted: itemDTO.Budgeted,
		Spent:    itemDTO.Spent,
		Currency: currency.Code(itemDTO.Currency),
	}

	createdItem, err := handler.itemService.Create(r.Context(), item)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	createdItemDTO := ItemToDTO(createdItem)

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(createdItemDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	itemId := vars["id"]

	var updateDTO UpdateItemDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updatedItem, err := handler.itemService.Update(r.Context(), itemId, ItemUpdate{
		Text:     updateDTO.Text,
		Budgeted: updateDTO.Budgeted,
		Spent:    updateDTO.Spent,
	})
	if errors.Is(err, ErrItemNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ItemToDTO(updatedItem)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	itemId := vars["id"]

	// No existence check: deleting an unknown id succeeds.
	if err := handler.itemService.Delete(r.Context(), itemId); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *ItemHandler) writeItems(w http.ResponseWriter, r *http.Request, items []Item) {
	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvItemsRenderer.RenderItems(items)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	itemsDTO := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		itemsDTO = append(itemsDTO, ItemToDTO(item))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(itemsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// parseRangeDate accepts RFC3339 timestamps and plain dates.
func parseRangeDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func ItemToDTO(item Item) ItemDTO {
	return ItemDTO{
		ID:                   item.ID,
		Text:                 item.Text,
		Budgeted:             item.Budgeted,
		Spent:                item.Spent,
		Currency:             string(item.Currency),
		Time:                 item.Time,
		ConvertedBudgetedNGN: item.ConvertedBudgetedNGN,
		ConvertedSpentNGN:    item.ConvertedSpentNGN,
		Completed:            item.Completed,
	}
}
