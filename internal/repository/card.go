package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/visiting-cards/internal/common"
	"github.com/joseph-ayodele/visiting-cards/internal/entity"
)

// searchColumns are matched case-insensitively by ListFilter.Search.
var searchColumns = []string{colName, colCompany, colCity, colEmail, colPhone}

// ListFilter selects which cards List returns.
type ListFilter struct {
	Deleted bool
	Search  string
}

// CardRepository defines the interface for card persistence operations.
type CardRepository interface {
	Create(ctx context.Context, fields entity.CardFields) (*entity.Card, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Card, error)
	List(ctx context.Context, filter ListFilter) ([]*entity.Card, error)
	Update(ctx context.Context, id uuid.UUID, fields entity.CardFields) (*entity.Card, error)
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error
	Counts(ctx context.Context) (entity.CardCounts, error)
}

type cardRepository struct {
	db     *DB
	logger *slog.Logger
	now    func() time.Time
}

// NewCardRepository creates a new card repository.
func NewCardRepository(db *DB, logger *slog.Logger) CardRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &cardRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *cardRepository) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.db.Dialect())
}

// Create inserts a new active card.
func (r *cardRepository) Create(ctx context.Context, fields entity.CardFields) (*entity.Card, error) {
	card := &entity.Card{
		ID:        uuid.New(),
		Name:      fields.Name,
		Company:   fields.Company,
		Phone:     fields.Phone,
		Email:     fields.Email,
		Website:   fields.Website,
		City:      fields.City,
		CreatedAt: r.now(),
	}

	b := r.builder()
	query, args := b.Insert(cardsTable).
		Columns(colID, colName, colCompany, colPhone, colEmail, colWebsite, colCity, colIsDeleted, colCreatedAt).
		Values(card.ID.String(), card.Name, card.Company, card.Phone, card.Email, card.Website, card.City, false, card.CreatedAt).
		Query()
	if _, err := r.db.SQL().ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("failed to create card", "error", err)
		return nil, dbError("failed to create card", err)
	}

	r.logger.Debug("created card", "id", card.ID)
	return card, nil
}

// Get retrieves a card by ID, deleted or not.
func (r *cardRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Card, error) {
	b := r.builder()
	t := b.Table(cardsTable)
	query, args := b.Select(t.Columns(cardColumns...)...).
		From(t).
		Where(entsql.EQ(t.C(colID), id.String())).
		Query()

	row := r.db.SQL().QueryRowContext(ctx, query, args...)
	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get card", "id", id, "error", err)
		return nil, dbError("failed to get card", err)
	}
	return card, nil
}

// List returns active or deleted cards, newest first, optionally filtered by a search term.
func (r *cardRepository) List(ctx context.Context, filter ListFilter) ([]*entity.Card, error) {
	b := r.builder()
	t := b.Table(cardsTable)
	preds := []*entsql.Predicate{entsql.EQ(t.C(colIsDeleted), filter.Deleted)}

	if term := strings.TrimSpace(filter.Search); term != "" {
		ors := make([]*entsql.Predicate, 0, len(searchColumns))
		for _, c := range searchColumns {
			ors = append(ors, entsql.ContainsFold(t.C(c), term))
		}
		preds = append(preds, entsql.Or(ors...))
	}

	order := entsql.Desc(t.C(colCreatedAt))
	if filter.Deleted {
		order = entsql.Desc(t.C(colUpdatedAt))
	}
	query, args := b.Select(t.Columns(cardColumns...)...).
		From(t).
		Where(entsql.And(preds...)).
		OrderBy(order, entsql.Desc(t.C(colCreatedAt))).
		Query()

	rows, err := r.db.SQL().QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list cards", "deleted", filter.Deleted, "error", err)
		return nil, dbError("failed to list cards", err)
	}
	defer rows.Close()

	cards := make([]*entity.Card, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, dbError("failed to scan card", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("failed to list cards", err)
	}

	r.logger.Debug("listed cards", "count", len(cards), "deleted", filter.Deleted)
	return cards, nil
}

// Update overwrites the contact fields of a card and stamps updated_at.
func (r *cardRepository) Update(ctx context.Context, id uuid.UUID, fields entity.CardFields) (*entity.Card, error) {
	b := r.builder()
	query, args := b.Update(cardsTable).
		Set(colName, fields.Name).
		Set(colCompany, fields.Company).
		Set(colPhone, fields.Phone).
		Set(colEmail, fields.Email).
		Set(colWebsite, fields.Website).
		Set(colCity, fields.City).
		Set(colUpdatedAt, r.now()).
		Where(entsql.EQ(colID, id.String())).
		Query()

	if err := r.execOne(ctx, "update", id, query, args); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// SetDeleted soft-deletes or restores a card.
func (r *cardRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	b := r.builder()
	query, args := b.Update(cardsTable).
		Set(colIsDeleted, deleted).
		Set(colUpdatedAt, r.now()).
		Where(entsql.EQ(colID, id.String())).
		Query()
	return r.execOne(ctx, "set deleted", id, query, args)
}

// Counts reports total, active and deleted card counts.
func (r *cardRepository) Counts(ctx context.Context) (entity.CardCounts, error) {
	b := r.builder()
	t := b.Table(cardsTable)
	query, args := b.Select(t.C(colIsDeleted), entsql.Count("*")).
		From(t).
		GroupBy(t.C(colIsDeleted)).
		Query()

	rows, err := r.db.SQL().QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to count cards", "error", err)
		return entity.CardCounts{}, dbError("failed to count cards", err)
	}
	defer rows.Close()

	var counts entity.CardCounts
	for rows.Next() {
		var (
			deleted bool
			n       int
		)
		if err := rows.Scan(&deleted, &n); err != nil {
			return entity.CardCounts{}, dbError("failed to scan counts", err)
		}
		if deleted {
			counts.Deleted = n
		} else {
			counts.Active = n
		}
	}
	if err := rows.Err(); err != nil {
		return entity.CardCounts{}, dbError("failed to count cards", err)
	}
	counts.Total = counts.Active + counts.Deleted
	return counts, nil
}

func (r *cardRepository) execOne(ctx context.Context, op string, id uuid.UUID, query string, args []any) error {
	res, err := r.db.SQL().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("card write failed", "op", op, "id", id, "error", err)
		return dbError("failed to "+op+" card", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dbError("failed to "+op+" card", err)
	}
	if n == 0 {
		return fmt.Errorf("card %s: %w", id, common.ErrNotFound)
	}
	r.logger.Debug("card write", "op", op, "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(s rowScanner) (*entity.Card, error) {
	var (
		card    entity.Card
		updated sql.NullTime
	)
	err := s.Scan(
		&card.ID, &card.Name, &card.Company, &card.Phone, &card.Email, &card.Website, &card.City,
		&card.IsDeleted, &card.CreatedAt, &updated,
	)
	if err != nil {
		return nil, err
	}
	if updated.Valid {
		t := updated.Time
		card.UpdatedAt = &t
	}
	return &card, nil
}

func dbError(message string, err error) error {
	return common.WrapError(fmt.Errorf("%w: %w", common.ErrDatabase, err), message)
}
