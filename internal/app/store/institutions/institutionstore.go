package institutionstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/enrollhub/internal/app/system/normalize"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrNotFound is returned when no institution matches the given ID.
	ErrNotFound = errors.New("institution not found")
	errBadType  = errors.New(`type must be "kindergarten"|"school"|"college"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("institutions")}
}

// Create inserts a new institution. New institutions start active unless
// the caller says otherwise.
func (s *Store) Create(ctx context.Context, inst models.Institution) (models.Institution, error) {
	if !models.IsValidInstitutionType(inst.Type) {
		return models.Institution{}, errBadType
	}
	now := time.Now().UTC()
	inst.ID = primitive.NewObjectID()
	inst.Name = normalize.Name(inst.Name)
	inst.NameCI = text.Fold(inst.Name)
	inst.ContactEmail = normalize.Email(inst.ContactEmail)
	inst.IsActive = true
	inst.CreatedAt = now
	inst.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, inst); err != nil {
		return models.Institution{}, err
	}
	return inst, nil
}

// GetByID loads an institution by ObjectID. Returns ErrNotFound when no
// document matches.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Institution, error) {
	var inst models.Institution
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&inst); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inst, nil
}

// Filter narrows institution listings.
type Filter struct {
	Type            string // kindergarten | school | college; empty for all
	IncludeInactive bool   // admin listings see deactivated rows too
}

// List returns institutions matching the filter sorted by folded name,
// ascending. Public listings exclude deactivated institutions.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Institution, error) {
	query := bson.M{}
	if !f.IncludeInactive {
		query["is_active"] = true
	}
	if f.Type != "" {
		query["type"] = f.Type
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var insts []models.Institution
	if err := cur.All(ctx, &insts); err != nil {
		return nil, err
	}
	return insts, nil
}

// Update modifies an institution's mutable fields and refreshes UpdatedAt.
// Zero-valued fields are left untouched; Capacity uses a pointer so zero is
// distinguishable from absent. Returns ErrNotFound when no document matches.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, inst models.Institution, capacity *int) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if inst.Name != "" {
		set["name"] = normalize.Name(inst.Name)
		set["name_ci"] = text.Fold(normalize.Name(inst.Name))
	}
	if inst.Type != "" {
		if !models.IsValidInstitutionType(inst.Type) {
			return errBadType
		}
		set["type"] = inst.Type
	}
	if inst.Address != "" {
		set["address"] = inst.Address
	}
	if inst.City != "" {
		set["city"] = inst.City
	}
	if inst.Region != "" {
		set["region"] = inst.Region
	}
	if inst.ContactPhone != "" {
		set["contact_phone"] = normalize.Phone(inst.ContactPhone)
	}
	if inst.ContactEmail != "" {
		set["contact_email"] = normalize.Email(inst.ContactEmail)
	}
	if inst.Description != "" {
		set["description"] = inst.Description
	}
	if capacity != nil {
		set["capacity"] = *capacity
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

// Deactivate soft-deletes an institution so existing applications keep a
// valid reference. Idempotent: deactivating twice succeeds. Returns
// ErrNotFound when no document matches.
func (s *Store) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"is_active":  false,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of institutions, active or not.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// CountActive returns the number of institutions still accepting
// applications. Deactivated institutions are excluded.
func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"is_active": true})
}
