package mongo

import (
	"context"

	"github.com/yoockh/bikeparts/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrderRepository interface {
	Insert(ctx context.Context, o models.Document) (*models.InsertResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Document, error)
	List(ctx context.Context, limit int64) ([]models.Document, error)
	ListByOwner(ctx context.Context, email string) ([]models.Document, error)
	Update(ctx context.Context, id primitive.ObjectID, set models.Document) (*models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error)
}

type orderRepo struct {
	docs documents
}

func NewOrderRepo(db *mongo.Database) OrderRepository {
	return &orderRepo{docs: documents{col: db.Collection("orders")}}
}

func (r *orderRepo) Insert(ctx context.Context, o models.Document) (*models.InsertResult, error) {
	return r.docs.insert(ctx, o)
}

func (r *orderRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	return r.docs.findByID(ctx, id)
}

func (r *orderRepo) List(ctx context.Context, limit int64) ([]models.Document, error) {
	return r.docs.find(ctx, bson.M{}, limit)
}

func (r *orderRepo) ListByOwner(ctx context.Context, email string) ([]models.Document, error) {
	return r.docs.find(ctx, bson.M{models.FieldAddedBy: email}, 0)
}

func (r *orderRepo) Update(ctx context.Context, id primitive.ObjectID, set models.Document) (*models.UpdateResult, error) {
	return r.docs.updateByID(ctx, id, set)
}

func (r *orderRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	return r.docs.deleteByID(ctx, id)
}
