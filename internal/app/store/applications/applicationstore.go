package applicationstore

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/dalemusser/enrollhub/internal/app/system/normalize"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrNotFound is returned when no application matches the lookup.
	ErrNotFound  = errors.New("application not found")
	errBadStatus = errors.New(`status must be "pending"|"approved"|"rejected"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("applications")}
}

// newApplicationID builds a human-readable identifier of the form
// APP-493021-0042: the last six digits of the unix timestamp plus four
// random digits. Collisions are possible, so Create relies on the unique
// index and retries.
func newApplicationID() string {
	ts := time.Now().Unix() % 1000000
	return fmt.Sprintf("APP-%06d-%04d", ts, rand.Intn(10000))
}

// Create inserts a new application with a generated ApplicationID. The
// unique index guards against ID collisions; on a duplicate the ID is
// regenerated and the insert retried up to three times.
func (s *Store) Create(ctx context.Context, app models.Application) (models.Application, error) {
	now := time.Now().UTC()
	app.ID = primitive.NewObjectID()
	app.ApplicantName = normalize.Name(app.ApplicantName)
	app.Email = normalize.Email(app.Email)
	app.Phone = normalize.Phone(app.Phone)
	app.Status = models.StatusPending
	app.Notes = ""
	if app.Documents == nil {
		app.Documents = []models.Document{}
	}
	app.CreatedAt = now
	app.UpdatedAt = now

	var err error
	for attempt := 0; attempt < 3; attempt++ {
		app.ApplicationID = newApplicationID()
		_, err = s.c.InsertOne(ctx, app)
		if err == nil {
			return app, nil
		}
		if !wafflemongo.IsDup(err) {
			return models.Application{}, err
		}
	}
	return models.Application{}, fmt.Errorf("generate application id: %w", err)
}

// GetByID loads an application by ObjectID. Returns ErrNotFound when no
// document matches.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	var app models.Application
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// Filter narrows application listings. Zero-valued fields match everything.
type Filter struct {
	Email         string
	ApplicationID string
	Status        string
	InstitutionID primitive.ObjectID
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.Email != "" {
		q["email"] = normalize.Email(f.Email)
	}
	if f.ApplicationID != "" {
		q["application_id"] = f.ApplicationID
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if !f.InstitutionID.IsZero() {
		q["institution_id"] = f.InstitutionID
	}
	return q
}

// Find returns applications matching the filter, newest first.
func (s *Store) Find(ctx context.Context, f Filter) ([]models.Application, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, f.query(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var apps []models.Application
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// StatusLookup finds applications for the public status check. At least one
// of email or applicationID must be set; when both are present they are
// combined with AND. Newest first.
func (s *Store) StatusLookup(ctx context.Context, email, applicationID string) ([]models.Application, error) {
	q := bson.M{}
	if email != "" {
		q["email"] = normalize.Email(email)
	}
	if applicationID != "" {
		q["application_id"] = applicationID
	}
	if len(q) == 0 {
		return nil, errors.New("status lookup requires email or application id")
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var apps []models.Application
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateStatusNotes changes an application's review fields. Empty status
// leaves it unchanged; notes use a pointer so an empty string can clear
// them. Returns ErrNotFound when no document matches.
func (s *Store) UpdateStatusNotes(ctx context.Context, id primitive.ObjectID, status string, notes *string) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if status != "" {
		if !models.IsValidStatus(status) {
			return errBadStatus
		}
		set["status"] = status
	}
	if notes != nil {
		set["notes"] = *notes
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of applications.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// CountByStatus returns the number of applications per status. Statuses
// with no applications are present with a zero count.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := map[string]int64{
		models.StatusPending:  0,
		models.StatusApproved: 0,
		models.StatusRejected: 0,
	}
	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// TypeCount is one row of the per-institution-type breakdown.
type TypeCount struct {
	Type  string `bson:"_id" json:"type"`
	Count int64  `bson:"count" json:"count"`
}

// CountByInstitutionType joins each application to its institution and
// groups by institution type. Applications whose institution is missing
// are dropped by the unwind, which matches how orphaned rows should read
// in a summary.
func (s *Store) CountByInstitutionType(ctx context.Context) ([]TypeCount, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "institutions",
			"localField":   "institution_id",
			"foreignField": "_id",
			"as":           "institution",
		}}},
		{{Key: "$unwind", Value: "$institution"}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$institution.type",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []TypeCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DayCount is one row of the recent-activity breakdown: applications
// created on a given day with a given status.
type DayCount struct {
	Date   string `bson:"date" json:"date"` // YYYY-MM-DD
	Status string `bson:"status" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

// CountByDay groups applications created in the last 30 days by calendar
// day and status, oldest day first.
func (s *Store) CountByDay(ctx context.Context) ([]DayCount, error) {
	since := time.Now().UTC().AddDate(0, 0, -30)
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"created_at": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"date": bson.M{"$dateToString": bson.M{
					"format": "%Y-%m-%d",
					"date":   "$created_at",
				}},
				"status": "$status",
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.date", Value: 1}, {Key: "_id.status", Value: 1}}}},
		{{Key: "$project", Value: bson.M{
			"_id":    0,
			"date":   "$_id.date",
			"status": "$_id.status",
			"count":  1,
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []DayCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
