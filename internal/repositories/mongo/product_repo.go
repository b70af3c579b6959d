package mongo

import (
	"context"

	"github.com/yoockh/bikeparts/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductRepository interface {
	Insert(ctx context.Context, p models.Document) (*models.InsertResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Document, error)
	List(ctx context.Context, limit int64) ([]models.Document, error)
	Update(ctx context.Context, id primitive.ObjectID, set models.Document) (*models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error)
}

type productRepo struct {
	docs documents
}

func NewProductRepo(db *mongo.Database) ProductRepository {
	return &productRepo{docs: documents{col: db.Collection("products")}}
}

func (r *productRepo) Insert(ctx context.Context, p models.Document) (*models.InsertResult, error) {
	return r.docs.insert(ctx, p)
}

func (r *productRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	return r.docs.findByID(ctx, id)
}

func (r *productRepo) List(ctx context.Context, limit int64) ([]models.Document, error) {
	return r.docs.find(ctx, bson.M{}, limit)
}

func (r *productRepo) Update(ctx context.Context, id primitive.ObjectID, set models.Document) (*models.UpdateResult, error) {
	return r.docs.updateByID(ctx, id, set)
}

func (r *productRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	return r.docs.deleteByID(ctx, id)
}
