//go:build integration

package integration

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/rentora/rentora-backend/internal/adapters/database"
	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/repositories"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
)

type UserAdapterIntegrationTestSuite struct {
	suite.Suite
	db      *sql.DB
	adapter repositories.UserRepository
	closers []func() error
}

func (suite *UserAdapterIntegrationTestSuite) SetupSuite() {
	client := newTestPostgresClient(suite.T())
	suite.closers = append(suite.closers, client.Close)
	suite.db = client.DB()
	suite.adapter = database.NewUserAdapter(client)
	runMigrations(suite.T(), suite.db)
}

func (suite *UserAdapterIntegrationTestSuite) TearDownSuite() {
	for _, close := range suite.closers {
		close()
	}
}

func (suite *UserAdapterIntegrationTestSuite) SetupTest() {
	_, err := suite.db.Exec(`DELETE FROM users WHERE email LIKE '%@adapter-test.example'`)
	require.NoError(suite.T(), err)
}

func (suite *UserAdapterIntegrationTestSuite) newAccount(email string) *entities.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &entities.User{
		ID:           uuid.New().String(),
		Name:         "Test Account",
		Email:        email,
		Role:         entities.RoleUser,
		IsFirstMonth: true,
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (suite *UserAdapterIntegrationTestSuite) TestCreateAndGetByEmailCaseInsensitive() {
	ctx := context.Background()

	user := suite.newAccount("Mira.Kapoor@adapter-test.example")
	require.NoError(suite.T(), suite.adapter.Create(ctx, user))

	found, err := suite.adapter.GetByEmail(ctx, "MIRA.KAPOOR@adapter-test.example")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, found.ID)
	assert.Equal(suite.T(), "mira.kapoor@adapter-test.example", found.Email)

	exists, err := suite.adapter.EmailExists(ctx, "mira.kapoor@adapter-test.example")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), exists)
}

func (suite *UserAdapterIntegrationTestSuite) TestDuplicateEmailConflicts() {
	ctx := context.Background()

	require.NoError(suite.T(), suite.adapter.Create(ctx, suite.newAccount("dup@adapter-test.example")))

	err := suite.adapter.Create(ctx, suite.newAccount("DUP@adapter-test.example"))
	require.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func (suite *UserAdapterIntegrationTestSuite) TestPartialUpdateLeavesOtherFields() {
	ctx := context.Background()

	user := suite.newAccount("update@adapter-test.example")
	user.Location = "Chennai"
	require.NoError(suite.T(), suite.adapter.Create(ctx, user))

	plan := entities.PlanPremium
	status := entities.SubscriptionFreeTrial
	updated, err := suite.adapter.Update(ctx, user.ID, entities.UserUpdate{
		ActivePlan:         &plan,
		SubscriptionStatus: &status,
	})
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), entities.PlanPremium, updated.ActivePlan)
	assert.Equal(suite.T(), entities.SubscriptionFreeTrial, updated.SubscriptionStatus)
	assert.Equal(suite.T(), "Chennai", updated.Location)
	assert.Equal(suite.T(), "Test Account", updated.Name)
}

func (suite *UserAdapterIntegrationTestSuite) TestGetByIDNotFound() {
	_, err := suite.adapter.GetByID(context.Background(), uuid.New().String())
	require.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestUserAdapterIntegration(t *testing.T) {
	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("Skipping integration test: TEST_DB_HOST not set")
	}
	suite.Run(t, new(UserAdapterIntegrationTestSuite))
}
