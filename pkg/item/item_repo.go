package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nairaplan/nairaplan/pkg/currency"
	log "github.com/sirupsen/logrus"
)

type ItemRepo interface {
	// Store stores a new Item and returns its generated id
	Store(ctx context.Context, item Item) (string, error)
	FindAll(ctx context.Context) ([]Item, error)
	FindById(ctx context.Context, id string) (Item, error)
	// FindByTimeRange returns items whose creation time falls within [from, to],
	// inclusive on both bounds.
	FindByTimeRange(ctx context.Context, from, to time.Time) ([]Item, error)
	Update(ctx context.Context, item Item) (bool, error)
	Delete(ctx context.Context, id string) error
}

type ItemRepoImpl struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepoImpl {
	return &ItemRepoImpl{db: db}
}

const itemColumns = `uid, text, budgeted, spent, currency, time, converted_budgeted_ngn, converted_spent_ngn, completed`

func (ri ItemRepoImpl) Store(ctx context.Context, item Item) (string, error) {

	query := `INSERT INTO budget_item (
                    uid,
                    text,
                    budgeted,
                    spent,
                    currency,
                    time,
                    converted_budgeted_ngn,
                    converted_spent_ngn,
                    completed
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := ri.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return "", err
	}
	defer stmt.Close()

	uid := uuid.New()
	_, err = stmt.ExecContext(ctx,
		uid.String(),
		item.Text,
		item.Budgeted,
		item.Spent,
		string(item.Currency),
		item.Time.UnixMilli(),
		item.ConvertedBudgetedNGN,
		item.ConvertedSpentNGN,
		item.Completed,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return "", err
	}

	return uid.String(), nil
}

func (ri ItemRepoImpl) FindAll(ctx context.Context) ([]Item, error) {
	query := fmt.Sprintf("SELECT %s FROM budget_item ORDER BY rowid", itemColumns)
	rows, err := ri.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func (ri ItemRepoImpl) FindById(ctx context.Context, id string) (Item, error) {
	query := fmt.Sprintf("SELECT %s FROM budget_item WHERE uid = ?", itemColumns)
	row := ri.db.QueryRowContext(ctx, query, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, ErrItemNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan item: %w", err)
		log.Error(err)
		return Item{}, err
	}
	return item, nil
}

func (ri ItemRepoImpl) FindByTimeRange(ctx context.Context, from, to time.Time) ([]Item, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM budget_item WHERE time >= ? AND time <= ? ORDER BY time`,
		itemColumns,
	)
	rows, err := ri.db.QueryContext(ctx, query, from.UnixMilli(), to.UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not query items by time range: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func (ri ItemRepoImpl) Update(ctx context.Context, item Item) (bool, error) {
	// Currency and time are frozen at creation and deliberately not part of
	// the update statement.
	query := `UPDATE budget_item SET
                  text = ?,
                  budgeted = ?,
                  spent = ?,
                  converted_budgeted_ngn = ?,
                  converted_spent_ngn = ?
              WHERE uid = ?`
	stmt, err := ri.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		item.Text,
		item.Budgeted,
		item.Spent,
		item.ConvertedBudgetedNGN,
		item.ConvertedSpentNGN,
		item.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
	}

	return rowsAffected == 1, nil
}

func (ri ItemRepoImpl) Delete(ctx context.Context, id string) error {
	// Deleting an id that does not exist is not an error.
	query := "DELETE FROM budget_item WHERE uid = ?"
	stmt, err := ri.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()
	_, err = stmt.ExecContext(ctx, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (Item, error) {
	var item Item
	var currencyCode string
	var timeMillis int64
	if err := row.Scan(
		&item.ID,
		&item.Text,
		&item.Budgeted,
		&item.Spent,
		&currencyCode,
		&timeMillis,
		&item.ConvertedBudgetedNGN,
		&item.ConvertedSpentNGN,
		&item.Completed,
	); err != nil {
		return Item{}, err
	}
	item.Currency = currency.Code(currencyCode)
	item.Time = time.UnixMilli(timeMillis)
	return item, nil
}

func scanItems(rows *sql.Rows) ([]Item, error) {
	items := make([]Item, 0, 10)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			err := fmt.Errorf("could not scan item: %w", err)
			log.Error(err)
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return items, nil
}
