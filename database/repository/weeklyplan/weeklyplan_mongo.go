package planRepo

import (
	"context"
	"fmt"
	"time"

	"citaflow/database"
	"citaflow/models"
	"citaflow/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWeeklyPlanRepo implements WeeklyPlanRepository using MongoDB.
type MongoWeeklyPlanRepo struct {
	coll *mongo.Collection
}

// NewMongoWeeklyPlanRepo constructs a new instance of MongoWeeklyPlanRepo.
func NewMongoWeeklyPlanRepo() WeeklyPlanRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoWeeklyPlanRepo{coll: db.Collection("weekly_plans")}
}

func (repo *MongoWeeklyPlanRepo) Get(ctx context.Context, staffID int, week utils.ISOWeek) (*models.WeeklyPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var plan models.WeeklyPlan
	filter := bson.M{"staff_id": staffID, "iso_year": week.Year, "iso_week": week.Week}
	if err := repo.coll.FindOne(ctx, filter).Decode(&plan); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching weekly plan: %w", err)
	}
	return &plan, nil
}

func (repo *MongoWeeklyPlanRepo) GetForWeeks(ctx context.Context, staffIDs []int, weeks []utils.ISOWeek) ([]models.WeeklyPlan, error) {
	if len(staffIDs) == 0 || len(weeks) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	weekFilters := make([]bson.M, 0, len(weeks))
	for _, w := range weeks {
		weekFilters = append(weekFilters, bson.M{"iso_year": w.Year, "iso_week": w.Week})
	}
	filter := bson.M{
		"staff_id": bson.M{"$in": staffIDs},
		"$or":      weekFilters,
	}

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching weekly plans: %w", err)
	}
	defer cursor.Close(ctx)

	var plans []models.WeeklyPlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, fmt.Errorf("error decoding weekly plans: %w", err)
	}
	return plans, nil
}

func (repo *MongoWeeklyPlanRepo) UpsertAutoBlock(ctx context.Context, staffID int, week utils.ISOWeek, block models.PlanBlock) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	block.Origin = models.OriginAuto
	now := time.Now().UTC()
	filter := bson.M{"staff_id": staffID, "iso_year": week.Year, "iso_week": week.Week}

	// Drop any previous block occupying the same cell, then append ours.
	// Two updates, but the one-block-per-(day,hour) invariant holds after
	// each apply, and plan writes only ever race with the planning UI which
	// owns different (manual) cells.
	pull := bson.M{"$pull": bson.M{"blocks": bson.M{"day": block.Day, "hour": block.Hour}}}
	if _, err := repo.coll.UpdateOne(ctx, filter, pull); err != nil {
		return fmt.Errorf("error clearing plan cell: %w", err)
	}

	update := bson.M{
		"$push": bson.M{"blocks": block},
		"$set":  bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"id":       uuid.New().String(),
			"staff_id": staffID,
			"iso_year": week.Year,
			"iso_week": week.Week,
		},
	}
	if _, err := repo.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("error upserting auto plan block: %w", err)
	}
	return nil
}

func (repo *MongoWeeklyPlanRepo) RemoveAutoBlock(ctx context.Context, staffID int, appointmentID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"staff_id": staffID}
	update := bson.M{
		"$pull": bson.M{"blocks": bson.M{"origin": models.OriginAuto, "appointment_id": appointmentID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	if _, err := repo.coll.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("error removing auto plan block: %w", err)
	}
	return nil
}
