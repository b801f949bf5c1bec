package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"charting/models"
)

type mongoEntryRepository struct {
	coll *mongo.Collection
}

func NewMongoEntryRepository(db *mongo.Database) EntryRepository {
	return &mongoEntryRepository{coll: db.Collection("entries")}
}

func (r *mongoEntryRepository) Insert(ctx context.Context, e *models.ChartingEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := r.coll.InsertOne(ctx, e)
	return errors.Wrap(err, "entries.insert")
}

func (r *mongoEntryRepository) Get(ctx context.Context, entryID string) (*models.ChartingEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	var e models.ChartingEntry
	err := r.coll.FindOne(ctx, bson.M{"entry_id": entryID}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "entries.get")
	}
	return &e, nil
}

func (r *mongoEntryRepository) Replace(ctx context.Context, e *models.ChartingEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"entry_id": e.EntryID}, e)
	if err != nil {
		return errors.Wrap(err, "entries.replace")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoEntryRepository) Delete(ctx context.Context, entryID string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	res, err := r.coll.DeleteOne(ctx, bson.M{"entry_id": entryID})
	if err != nil {
		return errors.Wrap(err, "entries.delete")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Find applies equality filters only; callers sort in memory. Keeping the
// query single-field avoids composite index requirements on the collection.
func (r *mongoEntryRepository) Find(ctx context.Context, f EntryFilter) ([]models.ChartingEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	filter := bson.M{}
	if f.SubjectID != "" {
		filter["subject_id"] = f.SubjectID
	}
	if f.SessionID != "" {
		filter["session_id"] = f.SessionID
	}
	if f.FormTemplateID != "" {
		filter["form_template_id"] = f.FormTemplateID
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "entries.find")
	}
	defer cursor.Close(ctx)
	var out []models.ChartingEntry
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "entries.find")
	}
	return out, nil
}
