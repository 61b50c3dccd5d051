package item

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/nairaplan/nairaplan/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test setup helper
func setupHandlerTest(t *testing.T) (*ItemHandler, *utils.MockClock) {
	repo := NewStubItemRepo()
	mockClock := &utils.MockClock{FixedNow: time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)}
	handlerService := NewItemServiceImpl(repo, mockClock)
	handler := NewItemHandler(handlerService, NewCsvItemsRenderer())
	return handler, mockClock
}

// Helper to add test items
func addTestItem(t *testing.T, handler *ItemHandler, dto ItemDTO) ItemDTO {
	body, err := json.Marshal(dto)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/todos", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.Create(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created ItemDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	return created
}

func TestCreate_ConvertsAmounts(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	created := addTestItem(t, handler, ItemDTO{Text: "Rent", Budgeted: 100, Spent: 50, Currency: "USD"})

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Rent", created.Text)
	assert.Equal(t, "USD", created.Currency)
	assert.Equal(t, float64(159500), created.ConvertedBudgetedNGN)
	assert.Equal(t, float64(79750), created.ConvertedSpentNGN)
	assert.False(t, created.Completed)
}

func TestCreate_AppliesDefaults(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var created ItemDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, "", created.Text)
	assert.Equal(t, float64(0), created.Budgeted)
	assert.Equal(t, float64(0), created.Spent)
	assert.Equal(t, "NGN", created.Currency)
	assert.Equal(t, float64(0), created.ConvertedBudgetedNGN)
}

func TestGetAll_EmptyStoreReturnsEmptyArray(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	w := httptest.NewRecorder()
	handler.GetAll(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestGetAll_ReturnsStoredItems(t *testing.T) {
	handler, _ := setupHandlerTest(t)
	addTestItem(t, handler, ItemDTO{Text: "Rent", Budgeted: 100, Currency: "USD"})
	addTestItem(t, handler, ItemDTO{Text: "Food", Budgeted: 250})

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	w := httptest.NewRecorder()
	handler.GetAll(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var items []ItemDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&items))
	require.Len(t, items, 2)
	assert.Equal(t, "Rent", items[0].Text)
	assert.Equal(t, "Food", items[1].Text)
}

func TestGetAll_RendersCsvWhenRequested(t *testing.T) {
	handler, _ := setupHandlerTest(t)
	addTestItem(t, handler, ItemDTO{Text: "Rent", Budgeted: 100, Spent: 50, Currency: "USD"})

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Accept", "text/csv")
	w := httptest.NewRecorder()
	handler.GetAll(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "Item,Budgeted,Spent,Currency,Budgeted_NGN,Spent_NGN,Time\n"))
	assert.Contains(t, w.Body.String(), "Rent,100,50,USD,159500,79750")
}

func TestGetRange_MissingParams(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	for _, query := range []string{"", "?from=2025-05-01", "?to=2025-05-31"} {
		req := httptest.NewRequest(http.MethodGet, "/api/todos/range"+query, nil)
		w := httptest.NewRecorder()
		handler.GetRange(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var errResponse struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
		assert.Equal(t, "Provide from & to dates", errResponse.Error)
	}
}

func TestGetRange_InvalidDateFormat(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/todos/range?from=not-a-date&to=2025-05-31", nil)
	w := httptest.NewRecorder()
	handler.GetRange(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	assert.Equal(t, "Invalid date format", errResponse.Error)
}

func TestGetRange_BoundsAreInclusive(t *testing.T) {
	handler, mockClock := setupHandlerTest(t)
	itemTime := time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)
	mockClock.SetNow(itemTime)
	created := addTestItem(t, handler, ItemDTO{Text: "Rent", Budgeted: 100})

	url := fmt.Sprintf("/api/todos/range?from=%s&to=%s",
		itemTime.Format(time.RFC3339), itemTime.Format(time.RFC3339))
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	handler.GetRange(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var items []ItemDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)
}

func TestGetRange_AcceptsPlainDates(t *testing.T) {
	handler, mockClock := setupHandlerTest(t)
	mockClock.SetNow(time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC))
	addTestItem(t, handler, ItemDTO{Text: "Rent"})

	req := httptest.NewRequest(http.MethodGet, "/api/todos/range?from=2025-05-10&to=2025-05-11", nil)
	w := httptest.NewRecorder()
	handler.GetRange(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var items []ItemDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&items))
	assert.Len(t, items, 1)
}

func TestUpdate_RecomputesWithStoredCurrency(t *testing.T) {
	handler, _ := setupHandlerTest(t)
	created := addTestItem(t, handler, ItemDTO{Text: "Rent", Budgeted: 100, Spent: 50, Currency: "USD"})

	body := `{"text":"Rent","budgeted":200,"spent":50}`
	req := httptest.NewRequest(http.MethodPut, "/api/todos/"+created.ID, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": created.ID})
	w := httptest.NewRecorder()
	handler.Update(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var updated ItemDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, float64(319000), updated.ConvertedBudgetedNGN)
	assert.Equal(t, "USD", updated.Currency)
	assert.Equal(t, created.Time, updated.Time)
}

func TestUpdate_UnknownIdReturnsNotFound(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	body := `{"text":"Ghost","budgeted":10,"spent":5}`
	req := httptest.NewRequest(http.MethodPut, "/api/todos/missing-id", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "missing-id"})
	w := httptest.NewRecorder()
	handler.Update(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	// the failed update must not have created a record
	listReq := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	listW := httptest.NewRecorder()
	handler.GetAll(listW, listReq)
	var items []ItemDTO
	require.NoError(t, json.NewDecoder(listW.Body).Decode(&items))
	assert.Len(t, items, 0)
}

func TestDelete_ReturnsNoContent(t *testing.T) {
	handler, _ := setupHandlerTest(t)
	created := addTestItem(t, handler, ItemDTO{Text: "Rent"})

	req := httptest.NewRequest(http.MethodDelete, "/api/todos/"+created.ID, nil)
	req = mux.SetURLVars(req, map[string]string{"id": created.ID})
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, w.Body.Len())
}

func TestDelete_UnknownIdStillSucceeds(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/todos/missing-id", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "missing-id"})
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetSummary_TotalsOverAllItems(t *testing.T) {
	handler, _ := setupHandlerTest(t)
	addTestItem(t, handler, ItemDTO{Text: "A", Budgeted: 100, Spent: 40})
	addTestItem(t, handler, ItemDTO{Text: "B", Budgeted: 200, Spent: 210})

	req := httptest.NewRequest(http.MethodGet, "/api/todos/summary", nil)
	w := httptest.NewRecorder()
	handler.GetSummary(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var totals TotalsDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&totals))
	assert.Equal(t, float64(300), totals.Budgeted)
	assert.Equal(t, float64(250), totals.Spent)
	assert.Equal(t, float64(50), totals.Variance)
}

func TestGetSummary_SingleRangeParamIsRejected(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/todos/summary?from=2025-05-01", nil)
	w := httptest.NewRecorder()
	handler.GetSummary(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
