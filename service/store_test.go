package service

import (
	"testing"
	"time"

	"github.com/mwaldrep/salesdesk/backend/config"
	"github.com/mwaldrep/salesdesk/backend/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(&config.StoreConfig{InMemory: true})
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndGet(t *testing.T) {
	store := newTestStore(t)

	contact := model.Contact{
		ID:        "test-id-1",
		Tenant:    "tenant1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Stage:     model.StageLead,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if err := store.Contacts.Save(contact); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	retrieved, ok := store.Contacts.Get("test-id-1")
	if !ok {
		t.Fatal("Expected to retrieve contact")
	}
	if retrieved.FirstName != "Ada" {
		t.Errorf("Expected first name Ada, got %s", retrieved.FirstName)
	}

	if _, ok := store.Contacts.Get("non-existent"); ok {
		t.Error("Expected miss for non-existent contact")
	}
}

func TestStoreListByTenant(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	records := []model.Contact{
		{ID: "1", Tenant: "tenant1", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "2", Tenant: "tenant1", CreatedAt: base},
		{ID: "3", Tenant: "tenant2", CreatedAt: base.Add(time.Hour)},
	}
	for _, r := range records {
		if err := store.Contacts.Save(r); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	tenant1 := store.Contacts.ListByTenant("tenant1")
	if len(tenant1) != 2 {
		t.Fatalf("Expected 2 contacts for tenant1, got %d", len(tenant1))
	}
	// Ordered by creation time
	if tenant1[0].ID != "2" || tenant1[1].ID != "1" {
		t.Errorf("Expected order 2,1 by created_at, got %s,%s", tenant1[0].ID, tenant1[1].ID)
	}

	if got := store.Contacts.ListByTenant("tenant3"); len(got) != 0 {
		t.Errorf("Expected 0 contacts for tenant3, got %d", len(got))
	}
}

func TestStoreListOrderTiebreak(t *testing.T) {
	store := newTestStore(t)
	created := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	// Identical timestamps fall back to id order so listing stays
	// deterministic
	for _, id := range []string{"b", "a", "c"} {
		if err := store.Contacts.Save(model.Contact{ID: id, Tenant: "t", CreatedAt: created}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	got := store.Contacts.ListByTenant("t")
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Errorf("Expected a,b,c, got %s,%s,%s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)

	opp := model.Opportunity{ID: "delete-me", Tenant: "t", CreatedAt: time.Now()}
	if err := store.Opportunities.Save(opp); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Opportunities.Delete("delete-me"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := store.Opportunities.Get("delete-me"); ok {
		t.Error("Expected opportunity to be deleted")
	}

	// Deleting a missing id is a no-op
	if err := store.Opportunities.Delete("never-existed"); err != nil {
		t.Errorf("Delete of missing id errored: %v", err)
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	store := newTestStore(t)

	grade := model.JobGrade{ID: "g1", Tenant: "t", Key: "eng-1", Level: 1, CreatedAt: time.Now()}
	if err := store.Grades.Save(grade); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	grade.Level = 2
	if err := store.Grades.Save(grade); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	got, _ := store.Grades.Get("g1")
	if got.Level != 2 {
		t.Errorf("Expected level 2 after replace, got %d", got.Level)
	}
	if store.Grades.Count() != 1 {
		t.Errorf("Expected 1 grade, got %d", store.Grades.Count())
	}
}
