package institutionstore_test

import (
	"testing"

	institutionstore "github.com/dalemusser/enrollhub/internal/app/store/institutions"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/enrollhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := institutionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Institution{
		Name:         "  Sunny Meadows  ",
		Type:         models.InstitutionKindergarten,
		Address:      "1 Meadow Lane",
		City:         "Springfield",
		Region:       "Central",
		ContactPhone: "+1 555 0101",
		ContactEmail: "Office@Sunny.Example",
		Description:  "A small kindergarten.",
		Capacity:     40,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Name != "Sunny Meadows" {
		t.Errorf("expected trimmed name, got %q", created.Name)
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.ContactEmail != "office@sunny.example" {
		t.Errorf("expected lowercased contact email, got %q", created.ContactEmail)
	}
	if !created.IsActive {
		t.Error("expected new institution to be active")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_RejectsBadType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := institutionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Institution{
		Name: "Evening Academy",
		Type: "university",
	})
	if err == nil {
		t.Error("expected error for invalid type")
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := institutionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); err != institutionstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := institutionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateInstitution(ctx, "Willow School", models.InstitutionSchool)
	fx.CreateInstitution(ctx, "Acorn Kindergarten", models.InstitutionKindergarten)
	hidden := fx.CreateInstitution(ctx, "Closed College", models.InstitutionCollege)
	fx.DeactivateInstitution(ctx, hidden.ID)

	insts, err := store.List(ctx, institutionstore.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(insts) != 2 {
		t.Fatalf("expected 2 active institutions, got %d", len(insts))
	}
	// Sorted by folded name
	if insts[0].Name != "Acorn Kindergarten" || insts[1].Name != "Willow School" {
		t.Errorf("unexpected order: %q then %q", insts[0].Name, insts[1].Name)
	}

	schools, err := store.List(ctx, institutionstore.Filter{Type: models.InstitutionSchool})
	if err != nil {
		t.Fatalf("List by type failed: %v", err)
	}
	if len(schools) != 1 || schools[0].Name != "Willow School" {
		t.Errorf("expected only Willow School, got %+v", schools)
	}

	all, err := store.List(ctx, institutionstore.Filter{IncludeInactive: true})
	if err != nil {
		t.Fatalf("List with inactive failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 institutions including inactive, got %d", len(all))
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := institutionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	inst := fx.CreateInstitution(ctx, "Maple School", models.InstitutionSchool)

	capacity := 250
	err := store.Update(ctx, inst.ID, models.Institution{
		Name: "Maple Academy",
		City: "Rivertown",
	}, &capacity)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, inst.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Maple Academy" {
		t.Errorf("expected renamed institution, got %q", got.Name)
	}
	if got.City != "Rivertown" {
		t.Errorf("expected updated city, got %q", got.City)
	}
	if got.Capacity != 250 {
		t.Errorf("expected capacity 250, got %d", got.Capacity)
	}
	// Untouched fields survive a partial update
	if got.Region != inst.Region {
		t.Errorf("expected region unchanged, got %q", got.Region)
	}
	if !got.UpdatedAt.After(inst.UpdatedAt) {
		t.Error("expected UpdatedAt to advance")
	}

	if err := store.Update(ctx, primitive.NewObjectID(), models.Institution{Name: "Ghost"}, nil); err != institutionstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Deactivate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := institutionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	inst := fx.CreateInstitution(ctx, "Fading College", models.InstitutionCollege)

	if err := store.Deactivate(ctx, inst.ID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	got, err := store.GetByID(ctx, inst.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.IsActive {
		t.Error("expected institution to be inactive")
	}

	// Idempotent
	if err := store.Deactivate(ctx, inst.ID); err != nil {
		t.Errorf("second Deactivate failed: %v", err)
	}

	if err := store.Deactivate(ctx, primitive.NewObjectID()); err != institutionstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_CountActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := institutionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateInstitution(ctx, "Open Kindergarten", models.InstitutionKindergarten)
	closed := fx.CreateInstitution(ctx, "Closed School", models.InstitutionSchool)
	fx.DeactivateInstitution(ctx, closed.ID)

	total, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 institutions in total, got %d", total)
	}

	active, err := store.CountActive(ctx)
	if err != nil {
		t.Fatalf("CountActive failed: %v", err)
	}
	if active != 1 {
		t.Errorf("expected 1 active institution, got %d", active)
	}
}
