package mongo

import (
	"context"

	"github.com/yoockh/bikeparts/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReviewRepository interface {
	Insert(ctx context.Context, r models.Document) (*models.InsertResult, error)
	List(ctx context.Context, limit int64) ([]models.Document, error)
}

type reviewRepo struct {
	docs documents
}

func NewReviewRepo(db *mongo.Database) ReviewRepository {
	return &reviewRepo{docs: documents{col: db.Collection("reviews")}}
}

func (r *reviewRepo) Insert(ctx context.Context, rv models.Document) (*models.InsertResult, error) {
	return r.docs.insert(ctx, rv)
}

func (r *reviewRepo) List(ctx context.Context, limit int64) ([]models.Document, error) {
	return r.docs.find(ctx, bson.M{}, limit)
}
