package app

import (
	"github.com/gorilla/mux"
	"github.com/nairaplan/nairaplan/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Budget items
	r.HandleFunc("/api/todos", deps.ItemHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/todos", deps.ItemHandler.Create).Methods("POST")
	r.HandleFunc("/api/todos/range", deps.ItemHandler.GetRange).Methods("GET")
	r.HandleFunc("/api/todos/summary", deps.ItemHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/todos/{id}", deps.ItemHandler.Update).Methods("PUT")
	r.HandleFunc("/api/todos/{id}", deps.ItemHandler.Delete).Methods("DELETE")

	// Currencies
	r.HandleFunc("/api/currencies", deps.CurrencyHandler.ListCurrencies).Methods("GET")
}
