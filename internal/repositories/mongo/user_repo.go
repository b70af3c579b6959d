package mongo

import (
	"context"
	"errors"

	"github.com/yoockh/bikeparts/internal/models"
	"github.com/yoockh/bikeparts/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	Upsert(ctx context.Context, email string, fields models.Document) (*models.UpdateResult, error)
	Update(ctx context.Context, email string, fields models.Document) (*models.UpdateResult, error)
	SetRole(ctx context.Context, email string, role models.Role) (*models.UpdateResult, error)
	FindByEmail(ctx context.Context, email string) (models.Document, error)
	List(ctx context.Context) ([]models.Document, error)
}

type userRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepository {
	return &userRepo{col: db.Collection("users")}
}

// Upsert inserts the user if absent, else $sets the given top-level
// fields. Two concurrent first logins can race on the unique email index;
// the loser retries once, at which point the document exists and the
// write becomes a plain update.
func (r *userRepo) Upsert(ctx context.Context, email string, fields models.Document) (*models.UpdateResult, error) {
	filter := bson.M{models.FieldEmail: email}
	update := bson.M{"$set": withEmail(email, fields)}
	opts := options.Update().SetUpsert(true)

	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		res, err = r.col.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		return nil, err
	}
	return models.NewUpdateResult(res), nil
}

func (r *userRepo) Update(ctx context.Context, email string, fields models.Document) (*models.UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{models.FieldEmail: email},
		bson.M{"$set": withEmail(email, fields)},
	)
	if err != nil {
		return nil, err
	}
	return models.NewUpdateResult(res), nil
}

func (r *userRepo) SetRole(ctx context.Context, email string, role models.Role) (*models.UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{models.FieldEmail: email},
		bson.M{"$set": bson.M{models.FieldRole: string(role)}},
	)
	if err != nil {
		return nil, err
	}
	return models.NewUpdateResult(res), nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (models.Document, error) {
	var u models.Document
	err := r.col.FindOne(ctx, bson.M{models.FieldEmail: email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepo) List(ctx context.Context) ([]models.Document, error) {
	cur, err := r.col.Find(ctx, bson.M{})
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

// withEmail keeps $set non-empty so an empty profile body still upserts.
func withEmail(email string, fields models.Document) models.Document {
	set := models.Without(fields, models.FieldEmail)
	set[models.FieldEmail] = email
	return set
}
