package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"charting/models"
)

type mongoTemplateRepository struct {
	coll *mongo.Collection
}

func NewMongoTemplateRepository(db *mongo.Database) TemplateRepository {
	return &mongoTemplateRepository{coll: db.Collection("templates")}
}

func (r *mongoTemplateRepository) Insert(ctx context.Context, t *models.FormTemplate) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := r.coll.InsertOne(ctx, t)
	return errors.Wrap(err, "templates.insert")
}

func (r *mongoTemplateRepository) Get(ctx context.Context, templateID string) (*models.FormTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	var t models.FormTemplate
	err := r.coll.FindOne(ctx, bson.M{"template_id": templateID}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "templates.get")
	}
	return &t, nil
}

func (r *mongoTemplateRepository) Replace(ctx context.Context, t *models.FormTemplate) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"template_id": t.TemplateID}, t)
	if err != nil {
		return errors.Wrap(err, "templates.replace")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTemplateRepository) Delete(ctx context.Context, templateID string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	res, err := r.coll.DeleteOne(ctx, bson.M{"template_id": templateID})
	if err != nil {
		return errors.Wrap(err, "templates.delete")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTemplateRepository) FindBySport(ctx context.Context, sport string, activeOnly bool) ([]models.FormTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	filter := bson.M{"sport": sport}
	if activeOnly {
		filter["is_active"] = true
		filter["is_archived"] = false
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "templates.findBySport")
	}
	defer cursor.Close(ctx)
	var out []models.FormTemplate
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "templates.findBySport")
	}
	return out, nil
}

func (r *mongoTemplateRepository) FindAll(ctx context.Context) ([]models.FormTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "templates.findAll")
	}
	defer cursor.Close(ctx)
	var out []models.FormTemplate
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "templates.findAll")
	}
	return out, nil
}

func (r *mongoTemplateRepository) IncrementUsage(ctx context.Context, templateID string, delta int) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"template_id": templateID},
		bson.M{
			"$inc": bson.M{"usage_count": delta},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return errors.Wrap(err, "templates.incrementUsage")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
