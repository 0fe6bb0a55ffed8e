package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/repositories"
	"github.com/rentora/rentora-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
	"github.com/rentora/rentora-backend/pkg/utils"
)

var propertyColumns = []interface{}{
	"id", "name", "description", "city", "location", "price",
	"bedrooms", "bathrooms", "area_sqft", "property_type",
	"amenities", "images",
	"owner_name", "owner_email", "owner_phone", "owner_avatar",
	"rating", "review_count", "is_premium", "is_featured",
	"available_from", "created_at", "updated_at",
}

// PropertyAdapter implements the PropertyRepository interface in Postgres.
// It holds only the dynamic (owner-managed) catalog; the built-in catalog is
// merged in a layer above.
type PropertyAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPropertyAdapter creates a new property adapter
func NewPropertyAdapter(client *postgres.Client) repositories.PropertyRepository {
	return &PropertyAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func propertyRecord(p *entities.Property) goqu.Record {
	return goqu.Record{
		"name":           p.Name,
		"description":    p.Description,
		"city":           p.City,
		"location":       p.Location,
		"price":          p.Price,
		"bedrooms":       p.Bedrooms,
		"bathrooms":      p.Bathrooms,
		"area_sqft":      p.AreaSqFt,
		"property_type":  p.PropertyType,
		"amenities":      pq.StringArray(p.Amenities),
		"images":         pq.StringArray(p.Images),
		"owner_name":     p.Owner.Name,
		"owner_email":    utils.NormalizeEmail(p.Owner.Email),
		"owner_phone":    p.Owner.Phone,
		"owner_avatar":   sql.NullString{String: p.Owner.Avatar, Valid: p.Owner.Avatar != ""},
		"rating":         p.Rating,
		"review_count":   p.ReviewCount,
		"is_premium":     p.IsPremium,
		"is_featured":    p.IsFeatured,
		"available_from": p.AvailableFrom,
		"updated_at":     p.UpdatedAt,
	}
}

// Upsert replaces the record in place when the id exists, otherwise inserts.
func (a *PropertyAdapter) Upsert(ctx context.Context, property *entities.Property) error {
	updateQuery, args, err := a.db.Update("properties").
		Set(propertyRecord(property)).
		Where(goqu.Ex{"id": property.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build property update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, updateQuery, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update property", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	record := propertyRecord(property)
	record["id"] = property.ID
	record["created_at"] = property.CreatedAt

	insertQuery, args, err := a.db.Insert("properties").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build property insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, insertQuery, args...); err != nil {
		return apperrors.NewInternalError("failed to insert property", err)
	}

	return nil
}

// GetByID retrieves a dynamic property by ID
func (a *PropertyAdapter) GetByID(ctx context.Context, id string) (*entities.Property, error) {
	query, args, err := a.db.Select(propertyColumns...).
		From("properties").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build property query", err)
	}

	property, err := scanProperty(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("property with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get property", err)
	}
	return property, nil
}

// Delete removes a property by ID. Deleting an absent id is a no-op.
func (a *PropertyAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("properties").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build property delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete property", err)
	}
	return nil
}

// List returns dynamic properties matching the filter, newest first. City,
// price, and bedroom constraints are pushed into SQL; amenity-subset and
// free-text matching reuse the shared filter predicate so the semantics
// stay identical to the built-in catalog path.
func (a *PropertyAdapter) List(ctx context.Context, filter repositories.PropertyFilter) ([]*entities.Property, error) {
	ds := a.db.Select(propertyColumns...).From("properties")

	if filter.City != "" {
		ds = ds.Where(goqu.L("lower(city)").Eq(strings.ToLower(filter.City)))
	}
	if filter.MinPrice != nil {
		ds = ds.Where(goqu.C("price").Gte(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		ds = ds.Where(goqu.C("price").Lte(*filter.MaxPrice))
	}
	if filter.Bedrooms != nil {
		ds = ds.Where(goqu.C("bedrooms").Gte(*filter.Bedrooms))
	}

	ds = ds.Order(goqu.I("created_at").Desc())

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build property list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list properties", err)
	}
	defer rows.Close()

	var properties []*entities.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan property", err)
		}
		if !filter.Matches(property) {
			continue
		}
		properties = append(properties, property)
	}

	return properties, nil
}

// ListIDs returns the ids of every dynamic property
func (a *PropertyAdapter) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := a.client.DB().QueryContext(ctx, "SELECT id FROM properties")
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list property ids", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan property id", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ListByOwner returns dynamic properties whose owner snapshot carries the
// given email
func (a *PropertyAdapter) ListByOwner(ctx context.Context, ownerEmail string) ([]*entities.Property, error) {
	query, args, err := a.db.Select(propertyColumns...).
		From("properties").
		Where(goqu.L("lower(owner_email)").Eq(utils.NormalizeEmail(ownerEmail))).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build owner properties query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list owner properties", err)
	}
	defer rows.Close()

	var properties []*entities.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan property", err)
		}
		properties = append(properties, property)
	}

	return properties, nil
}

func scanProperty(row rowScanner) (*entities.Property, error) {
	property := &entities.Property{}
	var amenities, images pq.StringArray
	var ownerAvatar sql.NullString

	err := row.Scan(
		&property.ID,
		&property.Name,
		&property.Description,
		&property.City,
		&property.Location,
		&property.Price,
		&property.Bedrooms,
		&property.Bathrooms,
		&property.AreaSqFt,
		&property.PropertyType,
		&amenities,
		&images,
		&property.Owner.Name,
		&property.Owner.Email,
		&property.Owner.Phone,
		&ownerAvatar,
		&property.Rating,
		&property.ReviewCount,
		&property.IsPremium,
		&property.IsFeatured,
		&property.AvailableFrom,
		&property.CreatedAt,
		&property.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	property.Amenities = amenities
	property.Images = images
	property.Owner.Avatar = ownerAvatar.String

	return property, nil
}
