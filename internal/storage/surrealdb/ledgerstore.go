package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/interfaces"
	"github.com/tallyhq/tally/internal/models"
)

type LedgerStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewLedgerStore(db *surrealdb.DB, logger *common.Logger) *LedgerStore {
	return &LedgerStore{
		db:     db,
		logger: logger,
	}
}

// Entry record ID format: entry:<userID>_<date>. One record per user
// per calendar day.
func entryID(userID, date string) string {
	return userID + "_" + date
}

func (s *LedgerStore) GetEntry(ctx context.Context, userID, date string) (*models.Entry, error) {
	entry, err := surrealdb.Select[models.Entry](ctx, s.db, surrealmodels.NewRecordID("entry", entryID(userID, date)))
	if err != nil {
		return nil, fmt.Errorf("failed to select entry: %w", err)
	}
	if entry == nil || entry.UserID == "" {
		return nil, fmt.Errorf("entry %s/%s: %w", userID, date, interfaces.ErrNotFound)
	}
	return entry, nil
}

func (s *LedgerStore) UpsertEntry(ctx context.Context, entry *models.Entry) error {
	sql := "UPSERT type::record('entry', $id) CONTENT $entry"
	vars := map[string]any{"id": entryID(entry.UserID, entry.Date), "entry": entry}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.Entry](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to upsert entry after retries: %w", err)
		}
	}
	return nil
}

func (s *LedgerStore) ListEntriesByMonth(ctx context.Context, userID, monthKey string) ([]*models.Entry, error) {
	sql := "SELECT * FROM entry WHERE user_id = $user_id AND month_key = $month_key ORDER BY date ASC"
	vars := map[string]any{"user_id": userID, "month_key": monthKey}

	results, err := surrealdb.Query[[]models.Entry](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries by month: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*models.Entry
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}

func (s *LedgerStore) ListEntries(ctx context.Context, userID string) ([]*models.Entry, error) {
	sql := "SELECT * FROM entry WHERE user_id = $user_id ORDER BY date ASC"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.Entry](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*models.Entry
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}

func (s *LedgerStore) Close() error {
	return nil
}

var _ interfaces.LedgerStore = (*LedgerStore)(nil)
