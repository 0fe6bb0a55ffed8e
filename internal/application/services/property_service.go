package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rentora/rentora-backend/internal/catalog"
	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/providers"
	"github.com/rentora/rentora-backend/internal/domain/repositories"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
	"github.com/rentora/rentora-backend/pkg/utils"
)

// PropertyService serves the effective catalog: stored listings merged with
// the built-in ones, deduplicated by id with stored listings winning.
type PropertyService struct {
	repo     repositories.PropertyRepository
	eventBus providers.EventBus
}

// NewPropertyService creates a new property service
func NewPropertyService(repo repositories.PropertyRepository, eventBus providers.EventBus) *PropertyService {
	return &PropertyService{
		repo:     repo,
		eventBus: eventBus,
	}
}

// List returns the merged catalog, filtered. Stored listings come first,
// newest first; built-in listings follow in their fixed order. A built-in id
// that is overridden by a stored listing never surfaces, even when the stored
// version fails the filter.
func (s *PropertyService) List(ctx context.Context, filter repositories.PropertyFilter) ([]*entities.Property, error) {
	stored, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	storedIDs, err := s.repo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	overridden := make(map[string]struct{}, len(storedIDs))
	for _, id := range storedIDs {
		overridden[id] = struct{}{}
	}

	merged := stored
	for _, p := range catalog.All() {
		if _, ok := overridden[p.ID]; ok {
			continue
		}
		if filter.Matches(p) {
			merged = append(merged, p)
		}
	}

	return paginate(merged, filter.Offset, filter.Limit), nil
}

// GetByID resolves a property from the stored catalog first, falling back to
// the built-in catalog.
func (s *PropertyService) GetByID(ctx context.Context, id string) (*entities.Property, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return property, nil
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	if builtin := catalog.GetByID(id); builtin != nil {
		return builtin, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("property with id %s not found", id))
}

// ListByOwner returns the stored listings carrying the given owner email.
func (s *PropertyService) ListByOwner(ctx context.Context, ownerEmail string) ([]*entities.Property, error) {
	return s.repo.ListByOwner(ctx, ownerEmail)
}

// Save upserts a listing for the calling owner. An id that already exists is
// replaced in place; a new id is appended. Owners can only write their own
// listings.
func (s *PropertyService) Save(ctx context.Context, caller *entities.User, property *entities.Property) (*entities.Property, error) {
	if caller.Role != entities.RoleOwner {
		return nil, apperrors.NewForbiddenError("only owner accounts can manage listings")
	}

	if strings.TrimSpace(property.Name) == "" {
		return nil, apperrors.NewValidationError("property name is required")
	}
	if strings.TrimSpace(property.City) == "" {
		return nil, apperrors.NewValidationError("property city is required")
	}
	if property.Price <= 0 {
		return nil, apperrors.NewValidationError("property price must be positive")
	}
	if !entities.ValidPropertyType(property.PropertyType) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown property type %q", property.PropertyType))
	}

	// The owner snapshot always reflects the caller; listings cannot be
	// written on behalf of someone else.
	property.Owner = entities.Owner{
		Name:   caller.Name,
		Email:  utils.NormalizeEmail(caller.Email),
		Phone:  caller.Phone,
		Avatar: caller.Avatar,
	}

	now := time.Now().UTC()
	eventType := entities.ListingEventTypeCreated

	if property.ID == "" {
		property.ID = uuid.New().String()
		property.CreatedAt = now
	} else {
		existing, err := s.repo.GetByID(ctx, property.ID)
		switch {
		case err == nil:
			if existing.Owner.Email != property.Owner.Email {
				return nil, apperrors.NewForbiddenError("listing belongs to another owner")
			}
			property.CreatedAt = existing.CreatedAt
			eventType = entities.ListingEventTypeUpdated
		case apperrors.IsType(err, apperrors.ErrorTypeNotFound):
			property.CreatedAt = now
		default:
			return nil, err
		}
	}
	property.UpdatedAt = now
	if property.AvailableFrom.IsZero() {
		property.AvailableFrom = now
	}

	if err := s.repo.Upsert(ctx, property); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, property, eventType)
	return property, nil
}

// Delete removes a stored listing. Deleting an id that is not stored is a
// no-op; if the id is also built-in, the built-in version resurfaces.
func (s *PropertyService) Delete(ctx context.Context, caller *entities.User, id string) error {
	if caller.Role != entities.RoleOwner {
		return apperrors.NewForbiddenError("only owner accounts can manage listings")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil
		}
		return err
	}
	if existing.Owner.Email != utils.NormalizeEmail(caller.Email) {
		return apperrors.NewForbiddenError("listing belongs to another owner")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, existing, entities.ListingEventTypeDeleted)
	return nil
}

// publishEvent fans a listing change out on the catalog-wide channel and the
// per-property channel. Event delivery is best effort; a bus failure never
// fails the write.
func (s *PropertyService) publishEvent(ctx context.Context, property *entities.Property, eventType entities.ListingEventType) {
	if s.eventBus == nil {
		return
	}

	event := entities.NewListingEvent(property, eventType)
	for _, channel := range []string{
		providers.EventChannelListingUpdates,
		providers.GetListingChannel(property.ID),
	} {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			log.Warn().Err(err).
				Str("channel", channel).
				Str("property_id", property.ID).
				Msg("failed to publish listing event")
		}
	}
}

func paginate(items []*entities.Property, offset, limit int) []*entities.Property {
	if offset > 0 {
		if offset >= len(items) {
			return []*entities.Property{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
