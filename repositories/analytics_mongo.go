package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"charting/models"
)

type mongoAnalyticsRepository struct {
	coll *mongo.Collection
}

func NewMongoAnalyticsRepository(db *mongo.Database) AnalyticsRepository {
	return &mongoAnalyticsRepository{coll: db.Collection("analytics_snapshots")}
}

func (r *mongoAnalyticsRepository) Upsert(ctx context.Context, snap *models.StudentAnalytics) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	filter := bson.M{
		"subject_id":       snap.SubjectID,
		"form_template_id": snap.FormTemplateID,
	}
	// last write wins; the snapshot is a pure function of the entry set
	update := bson.M{"$set": bson.M{
		"subject_id":                snap.SubjectID,
		"form_template_id":          snap.FormTemplateID,
		"session_stats":             snap.SessionStats,
		"streak":                    snap.Streak,
		"field_analytics":           snap.FieldAnalytics,
		"category_analytics":        snap.CategoryAnalytics,
		"overall_performance_score": snap.OverallPerformanceScore,
		"overall_trend":             snap.OverallTrend,
		"top_strengths":             snap.TopStrengths,
		"areas_for_improvement":     snap.AreasForImprovement,
		"last_calculated":           snap.LastCalculated,
		"calculation_version":       snap.CalculationVersion,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, filter, update, opts)
	return errors.Wrap(err, "analytics.upsert")
}

func (r *mongoAnalyticsRepository) Get(ctx context.Context, subjectID, templateID string) (*models.StudentAnalytics, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	var snap models.StudentAnalytics
	err := r.coll.FindOne(ctx, bson.M{
		"subject_id":       subjectID,
		"form_template_id": templateID,
	}).Decode(&snap)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "analytics.get")
	}
	return &snap, nil
}
