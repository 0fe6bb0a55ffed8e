package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/repositories"
	"github.com/rentora/rentora-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
	"github.com/rentora/rentora-backend/pkg/utils"
)

const uniqueViolation = "23505"

var userColumns = []interface{}{
	"id", "name", "username", "email", "phone", "avatar", "location",
	"role", "active_plan", "is_first_month", "subscription_status",
	"password_hash", "created_at", "updated_at",
}

// UserAdapter implements the UserRepository interface in Postgres.
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new account. Duplicate emails surface as a conflict via
// the unique index on lower(email).
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	record := goqu.Record{
		"id":                  user.ID,
		"name":                user.Name,
		"username":            user.Username,
		"email":               utils.NormalizeEmail(user.Email),
		"phone":               user.Phone,
		"avatar":              sql.NullString{String: user.Avatar, Valid: user.Avatar != ""},
		"location":            user.Location,
		"role":                user.Role,
		"active_plan":         string(user.ActivePlan),
		"is_first_month":      user.IsFirstMonth,
		"subscription_status": string(user.SubscriptionStatus),
		"password_hash":       user.PasswordHash,
		"created_at":          user.CreatedAt,
		"updated_at":          user.UpdatedAt,
	}

	query, args, err := a.db.Insert("users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return apperrors.NewConflictError("email already registered")
		}
		return apperrors.NewInternalError("failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query, args, err := a.db.Select(userColumns...).
		From("users").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user query", err)
	}

	user, err := a.scanUser(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email, matched case-insensitively
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query, args, err := a.db.Select(userColumns...).
		From("users").
		Where(goqu.L("lower(email)").Eq(utils.NormalizeEmail(email))).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user query", err)
	}

	user, err := a.scanUser(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("account not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user by email", err)
	}
	return user, nil
}

// EmailExists reports whether the email is already registered
func (a *UserAdapter) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := a.client.DB().QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = $1)",
		utils.NormalizeEmail(email),
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewInternalError("failed to check email existence", err)
	}
	return exists, nil
}

// Update applies a shallow partial update and returns the stored record
func (a *UserAdapter) Update(ctx context.Context, id string, update entities.UserUpdate) (*entities.User, error) {
	record := goqu.Record{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		record["name"] = *update.Name
	}
	if update.Username != nil {
		record["username"] = *update.Username
	}
	if update.Phone != nil {
		record["phone"] = *update.Phone
	}
	if update.Avatar != nil {
		record["avatar"] = *update.Avatar
	}
	if update.Location != nil {
		record["location"] = *update.Location
	}
	if update.ActivePlan != nil {
		record["active_plan"] = string(*update.ActivePlan)
	}
	if update.IsFirstMonth != nil {
		record["is_first_month"] = *update.IsFirstMonth
	}
	if update.SubscriptionStatus != nil {
		record["subscription_status"] = string(*update.SubscriptionStatus)
	}

	query, args, err := a.db.Update("users").
		Set(record).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}

	return a.GetByID(ctx, id)
}

// List returns all accounts in registration order
func (a *UserAdapter) List(ctx context.Context) ([]*entities.User, error) {
	query, args, err := a.db.Select(userColumns...).
		From("users").
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := a.scanUser(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan user", err)
		}
		users = append(users, user)
	}

	return users, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *UserAdapter) scanUser(row rowScanner) (*entities.User, error) {
	user := &entities.User{}
	var avatar, location, activePlan, subscriptionStatus, passwordHash sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.Phone,
		&avatar,
		&location,
		&user.Role,
		&activePlan,
		&user.IsFirstMonth,
		&subscriptionStatus,
		&passwordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Avatar = avatar.String
	user.Location = location.String
	user.ActivePlan = entities.PlanID(activePlan.String)
	user.SubscriptionStatus = entities.SubscriptionStatus(subscriptionStatus.String)
	user.PasswordHash = passwordHash.String

	return user, nil
}
