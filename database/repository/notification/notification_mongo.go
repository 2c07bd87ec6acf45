package notificationRepo

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

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo constructs a new instance of MongoNotificationRepo.
func NewMongoNotificationRepo() NotificationRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoNotificationRepo{coll: db.Collection("notifications")}
}

func (repo *MongoNotificationRepo) Insert(ctx context.Context, n *models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("error inserting notification: %w", err)
	}
	return nil
}

func (repo *MongoNotificationRepo) List(ctx context.Context, staffID int, unreadOnly bool, limit int64) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"staff_id": staffID}
	if unreadOnly {
		filter["read"] = false
	}
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("error decoding notifications: %w", err)
	}
	return notifications, nil
}

func (repo *MongoNotificationRepo) CountUnread(ctx context.Context, staffID int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, bson.M{"staff_id": staffID, "read": false})
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

func (repo *MongoNotificationRepo) MarkAllRead(ctx context.Context, staffID int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateMany(ctx,
		bson.M{"staff_id": staffID, "read": false},
		bson.M{"$set": bson.M{"read": true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return res.ModifiedCount, nil
}

func (repo *MongoNotificationRepo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteMany(ctx, bson.M{"read": true, "created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("error cleaning notifications: %w", err)
	}
	return res.DeletedCount, nil
}

// MongoAchievementMarkerRepo implements AchievementMarkerRepository using MongoDB.
type MongoAchievementMarkerRepo struct {
	coll *mongo.Collection
}

// NewMongoAchievementMarkerRepo constructs a new instance of MongoAchievementMarkerRepo.
func NewMongoAchievementMarkerRepo() AchievementMarkerRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoAchievementMarkerRepo{coll: db.Collection("achievement_markers")}
}

// Claim upserts with $setOnInsert so exactly one concurrent caller observes
// the insert; everyone else sees an existing marker and backs off.
func (repo *MongoAchievementMarkerRepo) Claim(ctx context.Context, agentID int, kind, period string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"agent_id": agentID, "kind": kind, "period": period}
	update := bson.M{"$setOnInsert": bson.M{
		"agent_id":   agentID,
		"kind":       kind,
		"period":     period,
		"created_at": time.Now().UTC(),
	}}

	res, err := repo.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("error claiming achievement marker: %w", err)
	}
	return res.UpsertedCount > 0, nil
}
