package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// TestPassword is the plaintext password for every fixture user.
const TestPassword = "correct-password"

// CreateUser inserts a test user with the given role. The password hash is
// computed at minimum bcrypt cost to keep fixtures fast; login tests sign
// in with TestPassword.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin inserts a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleAdmin)
}

// CreateInstitution inserts an active test institution of the given type.
func (f *Fixtures) CreateInstitution(ctx context.Context, name, instType string) models.Institution {
	f.t.Helper()

	now := time.Now().UTC()
	inst := models.Institution{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Type:         instType,
		Address:      "12 Test Street",
		City:         "Testville",
		Region:       "Test Region",
		ContactPhone: "+1 555 0100",
		ContactEmail: "office@test.example",
		Description:  "A fixture institution for tests.",
		Capacity:     100,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("institutions").InsertOne(ctx, inst); err != nil {
		f.t.Fatalf("failed to create test institution: %v", err)
	}
	return inst
}

// DeactivateInstitution flips the fixture institution to inactive.
func (f *Fixtures) DeactivateInstitution(ctx context.Context, id primitive.ObjectID) {
	f.t.Helper()
	if _, err := f.db.Collection("institutions").UpdateByID(ctx, id,
		map[string]any{"$set": map[string]any{"is_active": false}}); err != nil {
		f.t.Fatalf("failed to deactivate test institution: %v", err)
	}
}

// CreateApplication inserts a pending test application for the given
// institution and applicant email.
func (f *Fixtures) CreateApplication(ctx context.Context, email string, instID primitive.ObjectID) models.Application {
	f.t.Helper()

	now := time.Now().UTC()
	app := models.Application{
		ID:            primitive.NewObjectID(),
		ApplicantName: "Test Applicant",
		BirthDate:     time.Date(2015, 4, 1, 0, 0, 0, 0, time.UTC),
		Email:         email,
		Phone:         "+1 555 0199",
		InstitutionID: instID,
		Documents:     []models.Document{},
		Status:        models.StatusPending,
		ApplicationID: "APP-" + primitive.NewObjectID().Hex()[:10],
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("applications").InsertOne(ctx, app); err != nil {
		f.t.Fatalf("failed to create test application: %v", err)
	}
	return app
}
