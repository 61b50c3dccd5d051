package app

import (
	"database/sql"

	"github.com/nairaplan/nairaplan/internal/config"
	"github.com/nairaplan/nairaplan/internal/utils"
	"github.com/nairaplan/nairaplan/pkg/currency"
	"github.com/nairaplan/nairaplan/pkg/item"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	ItemRepo         item.ItemRepo
	ItemService      *item.ItemServiceImpl
	CsvItemsRenderer *item.CsvItemsRendererImpl
	ItemHandler      *item.ItemHandler

	CurrencyHandler *currency.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.ItemRepo = item.NewItemRepo(db)
	deps.ItemService = item.NewItemServiceImpl(deps.ItemRepo, deps.Clock)
	deps.CsvItemsRenderer = item.NewCsvItemsRenderer()
	deps.ItemHandler = item.NewItemHandler(deps.ItemService, deps.CsvItemsRenderer)

	deps.CurrencyHandler = currency.NewHandler()

	return deps
}
