package services

import (
	"context"

	"github.com/yoockh/bikeparts/internal/models"
	mongorepo "github.com/yoockh/bikeparts/internal/repositories/mongo"
	"github.com/yoockh/bikeparts/internal/utils"
)

type ReviewService interface {
	Create(ctx context.Context, author string, r models.Document) (*models.InsertResult, error)
	List(ctx context.Context, limit int64) ([]models.Document, error)
}

type reviewService struct {
	reviews mongorepo.ReviewRepository
}

func NewReviewService(reviews mongorepo.ReviewRepository) ReviewService {
	return &reviewService{reviews: reviews}
}

// Create rejects a body whose addedBy names someone other than the
// authenticated author.
func (s *reviewService) Create(ctx context.Context, author string, r models.Document) (*models.InsertResult, error) {
	const op = "ReviewService.Create"

	if author == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if claimed, ok := r[models.FieldAddedBy]; ok && claimed != author {
		return nil, utils.E(utils.CodeForbidden, op, "Forbidden Access", nil)
	}
	if err := requireFields(op, models.Without(r, models.FieldAddedBy, models.FieldID)); err != nil {
		return nil, err
	}

	doc := models.Without(r, models.FieldID)
	doc[models.FieldAddedBy] = author

	res, err := s.reviews.Insert(ctx, doc)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create review", err)
	}
	return res, nil
}

func (s *reviewService) List(ctx context.Context, limit int64) ([]models.Document, error) {
	const op = "ReviewService.List"

	out, err := s.reviews.List(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list reviews", err)
	}
	return out, nil
}
