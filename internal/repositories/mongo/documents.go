package mongo

import (
	"context"
	"errors"

	"github.com/yoockh/bikeparts/internal/models"
	"github.com/yoockh/bikeparts/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// documents implements the id-keyed CRUD shared by products, orders and
// reviews.
type documents struct {
	col *mongo.Collection
}

func (d documents) insert(ctx context.Context, doc models.Document) (*models.InsertResult, error) {
	res, err := d.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return models.NewInsertResult(res), nil
}

func (d documents) findByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	var out models.Document
	err := d.col.FindOne(ctx, bson.M{models.FieldID: id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// find returns every match; limit <= 0 means unbounded.
func (d documents) find(ctx context.Context, filter bson.M, limit int64) ([]models.Document, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := d.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Document{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d documents) updateByID(ctx context.Context, id primitive.ObjectID, set models.Document) (*models.UpdateResult, error) {
	res, err := d.col.UpdateOne(ctx, bson.M{models.FieldID: id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	return models.NewUpdateResult(res), nil
}

func (d documents) deleteByID(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	res, err := d.col.DeleteOne(ctx, bson.M{models.FieldID: id})
	if err != nil {
		return nil, err
	}
	return models.NewDeleteResult(res), nil
}
