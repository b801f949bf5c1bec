package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"charting/models"
)

type mongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: db.Collection("users")}
}

func (r *mongoUserRepository) Insert(ctx context.Context, u *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := r.coll.InsertOne(ctx, u)
	return errors.Wrap(err, "users.insert")
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	var u models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "users.findByEmail")
	}
	return &u, nil
}

func (r *mongoUserRepository) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	var u models.User
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "users.findByUserID")
	}
	return &u, nil
}

func (r *mongoUserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	count, err := r.coll.CountDocuments(ctx, bson.M{"email": email})
	return count, errors.Wrap(err, "users.countByEmail")
}

func (r *mongoUserRepository) UpdateTokens(ctx context.Context, userID, token, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "token", Value: token},
			{Key: "refresh_token", Value: refreshToken},
			{Key: "updated_at", Value: time.Now()},
		}},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	return errors.Wrap(err, "users.updateTokens")
}
