package settingsRepo

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

// MongoMeetingSettingsRepo implements MeetingSettingsRepository using MongoDB.
type MongoMeetingSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoMeetingSettingsRepo constructs a new instance of MongoMeetingSettingsRepo.
func NewMongoMeetingSettingsRepo() MeetingSettingsRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoMeetingSettingsRepo{coll: db.Collection("meeting_settings")}
}

func (repo *MongoMeetingSettingsRepo) Get(ctx context.Context, staffID int, provider string) (*models.MeetingSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var settings models.MeetingSettings
	filter := bson.M{"staff_id": staffID, "provider": provider}
	if err := repo.coll.FindOne(ctx, filter).Decode(&settings); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching meeting settings: %w", err)
	}
	return &settings, nil
}

func (repo *MongoMeetingSettingsRepo) ListByStaff(ctx context.Context, staffIDs []int) ([]models.MeetingSettings, error) {
	if len(staffIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"staff_id": bson.M{"$in": staffIDs}})
	if err != nil {
		return nil, fmt.Errorf("error listing meeting settings: %w", err)
	}
	defer cursor.Close(ctx)

	var settings []models.MeetingSettings
	if err := cursor.All(ctx, &settings); err != nil {
		return nil, fmt.Errorf("error decoding meeting settings: %w", err)
	}
	return settings, nil
}

// MongoIntegrationTokenRepo implements IntegrationTokenRepository using MongoDB.
type MongoIntegrationTokenRepo struct {
	coll *mongo.Collection
}

// NewMongoIntegrationTokenRepo constructs a new instance of MongoIntegrationTokenRepo.
func NewMongoIntegrationTokenRepo() IntegrationTokenRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoIntegrationTokenRepo{coll: db.Collection("integration_tokens")}
}

func (repo *MongoIntegrationTokenRepo) Get(ctx context.Context, authID, provider string) (*models.IntegrationToken, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var token models.IntegrationToken
	filter := bson.M{"auth_id": authID, "provider": provider}
	if err := repo.coll.FindOne(ctx, filter).Decode(&token); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching integration token: %w", err)
	}
	return &token, nil
}

func (repo *MongoIntegrationTokenRepo) Upsert(ctx context.Context, token *models.IntegrationToken) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	token.UpdatedAt = time.Now().UTC()
	filter := bson.M{"auth_id": token.AuthID, "provider": token.Provider}
	update := bson.M{"$set": token}
	if _, err := repo.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("error upserting integration token: %w", err)
	}
	return nil
}

func (repo *MongoIntegrationTokenRepo) ListProviders(ctx context.Context, authIDs []string) (map[string][]string, error) {
	result := make(map[string][]string)
	if len(authIDs) == 0 {
		return result, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"auth_id": 1, "provider": 1})
	cursor, err := repo.coll.Find(ctx, bson.M{"auth_id": bson.M{"$in": authIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing integration tokens: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var row struct {
			AuthID   string `bson:"auth_id"`
			Provider string `bson:"provider"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("error decoding integration token: %w", err)
		}
		providers := result[row.AuthID]
		exists := false
		for _, p := range providers {
			if p == row.Provider {
				exists = true
				break
			}
		}
		if !exists {
			result[row.AuthID] = append(providers, row.Provider)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return result, nil
}
