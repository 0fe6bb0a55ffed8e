package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rentora/rentora-backend/internal/application/services"
	"github.com/rentora/rentora-backend/internal/domain/entities"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
)

func TestReviewService_Create(t *testing.T) {
	t.Run("assigns id and timestamp", func(t *testing.T) {
		repo := new(MockReviewRepository)
		service := services.NewReviewService(repo)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Review) bool {
			return r.ID != "" && !r.CreatedAt.IsZero()
		})).Return(nil)

		created, err := service.Create(context.Background(), &entities.Review{
			UserName: "Asha",
			Rating:   5,
			Text:     "Lovely stay, spotless flat.",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects out-of-range ratings", func(t *testing.T) {
		repo := new(MockReviewRepository)
		service := services.NewReviewService(repo)

		for _, rating := range []int{0, 6, -1} {
			_, err := service.Create(context.Background(), &entities.Review{
				UserName: "Asha",
				Rating:   rating,
				Text:     "text",
			})
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "rating %d", rating)
		}
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects empty text", func(t *testing.T) {
		service := services.NewReviewService(new(MockReviewRepository))

		_, err := service.Create(context.Background(), &entities.Review{
			UserName: "Asha",
			Rating:   4,
			Text:     "   ",
		})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestReviewService_List(t *testing.T) {
	repo := new(MockReviewRepository)
	service := services.NewReviewService(repo)

	expected := []*entities.Review{{ID: "review-1"}}
	repo.On("List", mock.Anything, 20, 0).Return(expected, nil)

	result, err := service.List(context.Background(), 20, 0)

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}
