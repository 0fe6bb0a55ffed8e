package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rentora/rentora-backend/internal/api/handlers"
	"github.com/rentora/rentora-backend/internal/domain/entities"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
)

type stubReviewService struct {
	createErr error
	created   []*entities.Review
	list      []*entities.Review
}

func (s *stubReviewService) Create(ctx context.Context, review *entities.Review) (*entities.Review, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	review.ID = "review-1"
	s.created = append(s.created, review)
	return review, nil
}

func (s *stubReviewService) List(ctx context.Context, limit, offset int) ([]*entities.Review, error) {
	return s.list, nil
}

func TestReviewHandler_CreateReview(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		service := &stubReviewService{}
		handler := handlers.NewReviewHandler(service)

		body := `{"user_name":"Asha","rating":5,"text":"Lovely stay","location":"Mumbai"}`
		req := httptest.NewRequest("POST", "/api/reviews", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateReview(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Len(t, service.created, 1)
	})

	t.Run("rating out of range", func(t *testing.T) {
		service := &stubReviewService{createErr: apperrors.NewValidationError("rating must be between 1 and 5")}
		handler := handlers.NewReviewHandler(service)

		body := `{"user_name":"Asha","rating":6,"text":"Too good"}`
		req := httptest.NewRequest("POST", "/api/reviews", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateReview(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReviewHandler_ListReviews(t *testing.T) {
	service := &stubReviewService{list: []*entities.Review{{ID: "review-1"}, {ID: "review-2"}}}
	handler := handlers.NewReviewHandler(service)

	req := httptest.NewRequest("GET", "/api/reviews?limit=10", nil)
	w := httptest.NewRecorder()

	handler.ListReviews(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}
