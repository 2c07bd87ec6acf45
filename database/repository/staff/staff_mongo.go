package staffRepo

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

// MongoStaffRepo implements StaffRepository using MongoDB.
type MongoStaffRepo struct {
	coll *mongo.Collection
}

// NewMongoStaffRepo constructs a new instance of MongoStaffRepo.
func NewMongoStaffRepo() StaffRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoStaffRepo{coll: db.Collection("staff")}
}

func (repo *MongoStaffRepo) GetByID(ctx context.Context, id int) (*models.StaffMember, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var member models.StaffMember
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&member); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching staff member %d: %w", id, err)
	}
	return &member, nil
}

func (repo *MongoStaffRepo) GetByIDs(ctx context.Context, ids []int) ([]models.StaffMember, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("error fetching staff members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.StaffMember
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("error decoding staff members: %w", err)
	}
	return members, nil
}

func (repo *MongoStaffRepo) List(ctx context.Context, onlyDevelopers, onlyActive bool) ([]models.StaffMember, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if onlyDevelopers {
		filter["developer"] = true
	}
	if onlyActive {
		filter["active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "email", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing staff: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.StaffMember
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("error decoding staff list: %w", err)
	}
	return members, nil
}
