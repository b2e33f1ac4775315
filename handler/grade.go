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

type GradeHandler struct {
	store *service.Store
}

func NewGradeHandler(store *service.Store) *GradeHandler {
	return &GradeHandler{store: store}
}

// existingKeys collects every grade key in use for the tenant, minus
// the grade being edited (a grade may keep its own key).
func (h *GradeHandler) existingKeys(tenant, excludeID string) map[string]bool {
	keys := make(map[string]bool)
	for _, g := range h.store.Grades.ListByTenant(tenant) {
		if g.ID == excludeID {
			continue
		}
		keys[g.Key] = true
	}
	return keys
}

// List returns one page of the tenant's job grades after filtering
func (h *GradeHandler) List(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	filter := model.GradeFilter{
		Search: c.Query("search"),
		Parent: c.DefaultQuery("parent", model.MatchAll),
	}

	all := h.store.Grades.ListByTenant(tenant)
	filtered := service.FilterRecords(all, filter.Matches)
	page := service.Paginate(filtered, service.DefaultPageSize, pageParam(c))

	c.JSON(http.StatusOK, gin.H{
		"grades":       page.Items,
		"current_page": page.CurrentPage,
		"total_pages":  page.TotalPages,
		"page_size":    page.PageSize,
		"has_prev":     page.HasPrev,
		"has_next":     page.HasNext,
		"filtered":     page.TotalItems,
		"total":        len(all),
	})
}

// Create validates the grade form, including key uniqueness, and stores
// a new grade.
func (h *GradeHandler) Create(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	var in service.GradeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if errs := service.ValidateGrade(in, h.existingKeys(tenant, "")); !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	now := time.Now()
	grade := model.JobGrade{
		ID:        uuid.New().String(),
		Tenant:    tenant,
		Key:       in.Key,
		Name:      in.Name,
		Level:     in.Level,
		MinSalary: in.MinSalary,
		MaxSalary: in.MaxSalary,
		IsChild:   in.IsChild,
		ParentKey: in.ParentKey,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.store.Grades.Save(grade); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save grade"})
		return
	}

	c.JSON(http.StatusCreated, grade)
}

// Get returns a single grade
func (h *GradeHandler) Get(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	grade, ok := h.store.Grades.Get(c.Param("id"))
	if !ok || grade.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grade not found"})
		return
	}

	c.JSON(http.StatusOK, grade)
}

// Update replaces the editable fields of a grade
func (h *GradeHandler) Update(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	grade, ok := h.store.Grades.Get(c.Param("id"))
	if !ok || grade.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grade not found"})
		return
	}

	var in service.GradeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if errs := service.ValidateGrade(in, h.existingKeys(tenant, grade.ID)); !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	grade.Key = in.Key
	grade.Name = in.Name
	grade.Level = in.Level
	grade.MinSalary = in.MinSalary
	grade.MaxSalary = in.MaxSalary
	grade.IsChild = in.IsChild
	grade.ParentKey = in.ParentKey
	grade.UpdatedAt = time.Now()

	if err := h.store.Grades.Save(grade); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save grade"})
		return
	}

	c.JSON(http.StatusOK, grade)
}

// Delete removes a grade. Grades are reference data, so they are hard
// deleted.
func (h *GradeHandler) Delete(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	id := c.Param("id")

	grade, ok := h.store.Grades.Get(id)
	if !ok || grade.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grade not found"})
		return
	}

	if err := h.store.Grades.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete grade"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Grade deleted"})
}
