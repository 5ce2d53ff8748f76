package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/tomas/studydeck/internal/logger"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository implementation
func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Get(ctx context.Context, id int64) (*models.Item, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("getting item: id=%d", id)

	var it models.Item
	err := r.db.QueryRowContext(ctx, `
SELECT id, deck_id, kind, prompt, answer, created_at
FROM items
WHERE id = ?
`, id).Scan(&it.ID, &it.DeckID, &it.Kind, &it.Prompt, &it.Answer, &it.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("item not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get item: %v", err)
		return nil, err
	}
	return &it, nil
}

func (r *itemRepository) Insert(ctx context.Context, item models.Item) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("inserting item: deck_id=%d, kind=%s", item.DeckID, item.Kind)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO items (deck_id, kind, prompt, answer)
VALUES (?, ?, ?, ?)
`, item.DeckID, item.Kind, item.Prompt, item.Answer)
	if err != nil {
		log.Error("failed to insert item: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get item id: %v", err)
		return 0, err
	}
	log.Debug("item inserted: id=%d", id)
	return id, nil
}

func (r *itemRepository) InsertBatch(ctx context.Context, items []models.Item) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("inserting %d items", len(items))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return nil, err
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		res, err := tx.ExecContext(ctx, `
INSERT INTO items (deck_id, kind, prompt, answer)
VALUES (?, ?, ?, ?)
`, item.DeckID, item.Kind, item.Prompt, item.Answer)
		if err != nil {
			_ = tx.Rollback()
			log.Error("failed to insert item in batch: %v", err)
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit item batch: %v", err)
		return nil, err
	}
	log.Debug("item batch inserted: count=%d", len(ids))
	return ids, nil
}

func (r *itemRepository) List(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("listing items: deck_id=%d, kind=%s", filter.DeckID, filter.Kind)

	query := sqlBuilder.
		Select("id", "deck_id", "kind", "prompt", "answer", "created_at").
		From("items")

	if filter.DeckID != 0 {
		query = query.Where(squirrel.Eq{"deck_id": filter.DeckID})
	}
	if filter.Kind != "" {
		query = query.Where(squirrel.Eq{"kind": filter.Kind})
	}
	query = query.OrderBy("id ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list items: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.DeckID, &it.Kind, &it.Prompt, &it.Answer, &it.CreatedAt); err != nil {
			log.Error("failed to scan item row: %v", err)
			return nil, err
		}
		items = append(items, it)
	}
	log.Debug("found %d items", len(items))
	return items, rows.Err()
}

func (r *itemRepository) Count(ctx context.Context, deckID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE deck_id = ?`, deckID).Scan(&count)
	return count, err
}
