// File: database/repository/notification/indexes.go
package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the notifications collection.
func (repo *MongoNotificationRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "staff_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("staff_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "staff_id", Value: 1}, {Key: "read", Value: 1}},
			Options: options.Index().SetName("staff_read_idx"),
		},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create notification indexes: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique marker index backing at-most-once sends.
func (repo *MongoAchievementMarkerRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "agent_id", Value: 1}, {Key: "kind", Value: 1}, {Key: "period", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_agent_kind_period"),
	})
	if err != nil {
		return fmt.Errorf("failed to create achievement marker index: %w", err)
	}
	return nil
}
