package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwaldrep/salesdesk/backend/middleware"
	"github.com/mwaldrep/salesdesk/backend/model"
	"github.com/mwaldrep/salesdesk/backend/service"
)

type ActivityHandler struct {
	store *service.Store
}

func NewActivityHandler(store *service.Store) *ActivityHandler {
	return &ActivityHandler{store: store}
}

// List returns one page of the tenant's activities after filtering
func (h *ActivityHandler) List(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	now := time.Now()
	filter := model.ActivityFilter{
		Search: c.Query("search"),
		Type:   c.DefaultQuery("type", model.MatchAll),
		Owner:  c.DefaultQuery("owner", model.MatchAll),
		Done:   c.DefaultQuery("done", model.MatchAll),
		Due:    model.DateRange(c.DefaultQuery("range", model.MatchAll)),
	}

	all := h.store.Activities.ListByTenant(tenant)
	filtered := service.FilterRecords(all, func(a model.Activity) bool {
		return filter.Matches(a, now)
	})
	page := service.Paginate(filtered, service.DefaultPageSize, pageParam(c))

	c.JSON(http.StatusOK, gin.H{
		"activities":   page.Items,
		"current_page": page.CurrentPage,
		"total_pages":  page.TotalPages,
		"page_size":    page.PageSize,
		"has_prev":     page.HasPrev,
		"has_next":     page.HasNext,
		"filtered":     page.TotalItems,
		"total":        len(all),
	})
}

// Create validates the form and stores a new activity
func (h *ActivityHandler) Create(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	var in service.ActivityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if errs := service.ValidateActivity(in); !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	// An activity may reference a contact, but only one visible to the
	// same tenant
	if in.ContactID != "" {
		contact, ok := h.store.Contacts.Get(in.ContactID)
		if !ok || contact.Tenant != tenant {
			c.JSON(http.StatusBadRequest, gin.H{"errors": service.FieldErrors{"contact_id": "contact does not exist"}})
			return
		}
	}

	now := time.Now()
	activity := model.Activity{
		ID:        uuid.New().String(),
		Tenant:    tenant,
		Type:      model.ActivityType(in.Type),
		Subject:   in.Subject,
		ContactID: in.ContactID,
		Owner:     in.Owner,
		DueDate:   in.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.store.Activities.Save(activity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save activity"})
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// Complete marks an activity as done
func (h *ActivityHandler) Complete(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	activity, ok := h.store.Activities.Get(c.Param("id"))
	if !ok || activity.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	activity.Completed = true
	activity.UpdatedAt = time.Now()
	if err := h.store.Activities.Save(activity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save activity"})
		return
	}

	c.JSON(http.StatusOK, activity)
}

// Delete removes an activity
func (h *ActivityHandler) Delete(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	id := c.Param("id")

	activity, ok := h.store.Activities.Get(id)
	if !ok || activity.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	if err := h.store.Activities.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activity deleted"})
}
