package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/repositories"
	"github.com/rentora/rentora-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
)

// ReviewAdapter implements review persistence in Postgres.
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter.
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a review record.
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	record := goqu.Record{
		"id":         review.ID,
		"user_name":  review.UserName,
		"rating":     review.Rating,
		"text":       review.Text,
		"location":   sql.NullString{String: review.Location, Valid: review.Location != ""},
		"created_at": review.CreatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}

	return nil
}

// List returns reviews, newest first.
func (a *ReviewAdapter) List(ctx context.Context, limit, offset int) ([]*entities.Review, error) {
	ds := a.db.Select("id", "user_name", "rating", "text", "location", "created_at").
		From("reviews").
		Order(goqu.I("created_at").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	if offset > 0 {
		ds = ds.Offset(uint(offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	var reviews []*entities.Review
	for rows.Next() {
		review := &entities.Review{}
		var location sql.NullString

		err := rows.Scan(
			&review.ID,
			&review.UserName,
			&review.Rating,
			&review.Text,
			&location,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}

		review.Location = location.String
		reviews = append(reviews, review)
	}

	return reviews, nil
}
