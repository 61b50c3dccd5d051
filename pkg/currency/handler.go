package currency

import (
	"encoding/json"
	"net/http"
)

type CurrencyDTO struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}

type Handler struct {
}

func NewHandler() *Handler {
	return &Handler{}
}

func (handler *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	codes := Supported()
	currenciesDTO := make([]CurrencyDTO, 0, len(codes))
	for _, code := range codes {
		currenciesDTO = append(currenciesDTO, CurrencyDTO{
			Code: string(code),
			Rate: Rate(code),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(currenciesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
