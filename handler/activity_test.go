package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwaldrep/salesdesk/backend/model"
)

func activityRouter(handler *ActivityHandler) *gin.Engine {
	router := gin.New()
	asTenant1 := func(fn gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("tenant", "tenant1")
			fn(c)
		}
	}
	router.GET("/activities", asTenant1(handler.List))
	router.POST("/activities", asTenant1(handler.Create))
	router.POST("/activities/:id/complete", asTenant1(handler.Complete))
	router.DELETE("/activities/:id", asTenant1(handler.Delete))
	return router
}

func TestActivityHandlerCreate(t *testing.T) {
	store := setupTestStore(t)
	router := activityRouter(NewActivityHandler(store))

	body, _ := json.Marshal(map[string]interface{}{
		"type":    "call",
		"subject": "Quarterly check-in",
		"owner":   "alice",
	})
	req := httptest.NewRequest("POST", "/activities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var created model.Activity
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if created.Type != model.ActivityCall {
		t.Errorf("Expected type call, got %s", created.Type)
	}
	if created.Completed {
		t.Error("Expected new activity to be open")
	}
}

func TestActivityHandlerCreateBadContactRef(t *testing.T) {
	store := setupTestStore(t)

	// The referenced contact belongs to another tenant
	other := model.Contact{ID: "c9", Tenant: "tenant2", IsActive: true, CreatedAt: time.Now()}
	if err := store.Contacts.Save(other); err != nil {
		t.Fatalf("Failed to seed contact: %v", err)
	}
	router := activityRouter(NewActivityHandler(store))

	body, _ := json.Marshal(map[string]interface{}{
		"type":       "email",
		"subject":    "Follow up",
		"owner":      "alice",
		"contact_id": "c9",
	})
	req := httptest.NewRequest("POST", "/activities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400 for cross-tenant contact reference, got %d", w.Code)
	}
	if store.Activities.Count() != 0 {
		t.Error("Expected no activity to be saved")
	}
}

func TestActivityHandlerComplete(t *testing.T) {
	store := setupTestStore(t)
	activity := model.Activity{
		ID:        "a1",
		Tenant:    "tenant1",
		Type:      model.ActivityTask,
		Subject:   "Send proposal",
		Owner:     "alice",
		CreatedAt: time.Now(),
	}
	if err := store.Activities.Save(activity); err != nil {
		t.Fatalf("Failed to seed activity: %v", err)
	}
	router := activityRouter(NewActivityHandler(store))

	req := httptest.NewRequest("POST", "/activities/a1/complete", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	done, _ := store.Activities.Get("a1")
	if !done.Completed {
		t.Error("Expected activity to be completed")
	}
}

func TestActivityHandlerListDoneFilter(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now()
	activities := []model.Activity{
		{ID: "a1", Tenant: "tenant1", Type: model.ActivityCall, Subject: "Open one", Owner: "alice", CreatedAt: now},
		{ID: "a2", Tenant: "tenant1", Type: model.ActivityCall, Subject: "Done one", Owner: "alice", Completed: true, CreatedAt: now},
	}
	for _, a := range activities {
		if err := store.Activities.Save(a); err != nil {
			t.Fatalf("Failed to seed activity: %v", err)
		}
	}
	router := activityRouter(NewActivityHandler(store))

	req := httptest.NewRequest("GET", "/activities?done=open", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response struct {
		Activities []model.Activity `json:"activities"`
		Filtered   int              `json:"filtered"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Filtered != 1 {
		t.Errorf("Expected 1 open activity, got %d", response.Filtered)
	}
	if len(response.Activities) != 1 || response.Activities[0].ID != "a1" {
		t.Errorf("Expected only a1, got %v", response.Activities)
	}
}
