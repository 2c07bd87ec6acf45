package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"citaflow/database"
	"citaflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCalendarBusyRepo implements CalendarBusyRepository using MongoDB.
type MongoCalendarBusyRepo struct {
	coll *mongo.Collection
}

// NewMongoCalendarBusyRepo constructs a new instance of MongoCalendarBusyRepo.
func NewMongoCalendarBusyRepo() CalendarBusyRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoCalendarBusyRepo{coll: db.Collection("calendar_busy")}
}

func (repo *MongoCalendarBusyRepo) FindBusy(ctx context.Context, authIDs []string, from, to *time.Time) ([]models.CalendarBusy, error) {
	if len(authIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"auth_id": bson.M{"$in": authIDs}}
	if from != nil {
		filter["end"] = bson.M{"$gte": *from}
	}
	if to != nil {
		filter["start"] = bson.M{"$lte": *to}
	}

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching calendar busy rows: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.CalendarBusy
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding calendar busy rows: %w", err)
	}
	return rows, nil
}
