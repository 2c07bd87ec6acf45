package appointmentRepo

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

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoAppointmentRepo{coll: db.Collection("appointments")}
}

func (repo *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("error creating appointment: %w", err)
	}
	return nil
}

func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

// SetCancelled flips state only when the document is still confirmed, so the
// update itself decides idempotency instead of a read-then-write pair.
func (repo *MongoAppointmentRepo) SetCancelled(ctx context.Context, id string, reason *string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"state":      models.AppointmentCancelled,
		"updated_at": time.Now().UTC(),
	}}
	if reason != nil && *reason != "" {
		update["$set"].(bson.M)["cancel_reason"] = *reason
	}

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id, "state": models.AppointmentConfirmed}, update)
	if err != nil {
		return false, fmt.Errorf("error cancelling appointment %s: %w", id, err)
	}
	return res.ModifiedCount > 0, nil
}

func (repo *MongoAppointmentRepo) List(ctx context.Context, filter ListFilter) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.State != "" {
		query["state"] = filter.State
	}
	if filter.AgentID != 0 {
		query["agent_id"] = filter.AgentID
	}
	startRange := bson.M{}
	if filter.From != nil {
		startRange["$gte"] = *filter.From
	}
	if filter.To != nil {
		startRange["$lte"] = *filter.To
	}
	if len(startRange) > 0 {
		query["start"] = startRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	if filter.Limit > 0 {
		opts = opts.SetLimit(filter.Limit)
	}

	cursor, err := repo.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// FindConfirmedInvolving queries the collection twice, once per role, and
// merges both result sets by appointment id.
func (repo *MongoAppointmentRepo) FindConfirmedInvolving(ctx context.Context, authIDs []string, from, to *time.Time) ([]InvolvedAppointment, error) {
	if len(authIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	asAgent, err := repo.findConfirmedByRole(ctx, "agent_auth_id", authIDs, from, to)
	if err != nil {
		return nil, err
	}
	asSupervisor, err := repo.findConfirmedByRole(ctx, "supervisor_auth_id", authIDs, from, to)
	if err != nil {
		return nil, err
	}

	requested := make(map[string]struct{}, len(authIDs))
	for _, id := range authIDs {
		requested[id] = struct{}{}
	}

	merged := make(map[string]*InvolvedAppointment)
	var order []string
	add := func(appt models.Appointment, token string) {
		if _, ok := requested[token]; !ok {
			return
		}
		entry, ok := merged[appt.ID]
		if !ok {
			entry = &InvolvedAppointment{Appointment: appt}
			merged[appt.ID] = entry
			order = append(order, appt.ID)
		}
		for _, existing := range entry.InvolvedAuthIDs {
			if existing == token {
				return
			}
		}
		entry.InvolvedAuthIDs = append(entry.InvolvedAuthIDs, token)
	}

	for _, appt := range asAgent {
		add(appt, appt.AgentAuthID)
	}
	for _, appt := range asSupervisor {
		if appt.SupervisorAuthID != nil {
			add(appt, *appt.SupervisorAuthID)
		}
	}

	result := make([]InvolvedAppointment, 0, len(order))
	for _, id := range order {
		result = append(result, *merged[id])
	}
	return result, nil
}

func (repo *MongoAppointmentRepo) findConfirmedByRole(ctx context.Context, field string, authIDs []string, from, to *time.Time) ([]models.Appointment, error) {
	query := bson.M{
		"state": models.AppointmentConfirmed,
		field:   bson.M{"$in": authIDs},
	}
	// Exact overlap filter: the appointment intersects the window.
	if to != nil {
		query["start"] = bson.M{"$lt": *to}
	}
	if from != nil {
		query["end"] = bson.M{"$gt": *from}
	}

	cursor, err := repo.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments by %s: %w", field, err)
	}
	return appts, nil
}

func (repo *MongoAppointmentRepo) CountConfirmedStarting(ctx context.Context, agentAuthID string, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, bson.M{
		"state":         models.AppointmentConfirmed,
		"agent_auth_id": agentAuthID,
		"start":         bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return 0, fmt.Errorf("error counting appointments: %w", err)
	}
	return count, nil
}
