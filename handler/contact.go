package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwaldrep/salesdesk/backend/middleware"
	"github.com/mwaldrep/salesdesk/backend/model"
	"github.com/mwaldrep/salesdesk/backend/service"
)

type ContactHandler struct {
	store    *service.Store
	exporter *service.Exporter
}

func NewContactHandler(store *service.Store, exporter *service.Exporter) *ContactHandler {
	return &ContactHandler{
		store:    store,
		exporter: exporter,
	}
}

func contactFilterFromQuery(c *gin.Context) model.ContactFilter {
	return model.ContactFilter{
		Search:  c.Query("search"),
		Stage:   c.DefaultQuery("stage", model.MatchAll),
		Owner:   c.DefaultQuery("owner", model.MatchAll),
		Company: c.DefaultQuery("company", model.MatchAll),
		Tags:    c.QueryArray("tag"),
		Active:  model.ActiveFilter(c.DefaultQuery("active", model.MatchAll)),
		Created: model.DateRange(c.DefaultQuery("range", model.MatchAll)),
	}
}

// List returns one page of the tenant's contacts after filtering
func (h *ContactHandler) List(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	now := time.Now()
	filter := contactFilterFromQuery(c)

	all := h.store.Contacts.ListByTenant(tenant)
	filtered := service.FilterRecords(all, func(ct model.Contact) bool {
		return filter.Matches(ct, now)
	})
	page := service.Paginate(filtered, service.DefaultPageSize, pageParam(c))

	c.JSON(http.StatusOK, gin.H{
		"contacts":     page.Items,
		"current_page": page.CurrentPage,
		"total_pages":  page.TotalPages,
		"page_size":    page.PageSize,
		"has_prev":     page.HasPrev,
		"has_next":     page.HasNext,
		"filtered":     page.TotalItems,
		"total":        len(all),
	})
}

// Create validates the form and stores a new contact
func (h *ContactHandler) Create(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	var in service.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if errs := service.ValidateContact(in); !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	now := time.Now()
	contact := model.Contact{
		ID:        uuid.New().String(),
		Tenant:    tenant,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		JobTitle:  in.JobTitle,
		Owner:     in.Owner,
		Stage:     model.ContactStage(in.Stage),
		Tags:      in.Tags,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.store.Contacts.Save(contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save contact"})
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// Get returns a single contact
func (h *ContactHandler) Get(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	contact, ok := h.store.Contacts.Get(c.Param("id"))
	if !ok || contact.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	c.JSON(http.StatusOK, contact)
}

// contactUpdate carries a partial edit; nil fields are left unchanged.
type contactUpdate struct {
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Company   *string   `json:"company"`
	JobTitle  *string   `json:"job_title"`
	Owner     *string   `json:"owner"`
	Stage     *string   `json:"stage"`
	Tags      *[]string `json:"tags"`
}

// Update merges a partial edit into the contact, revalidates the merged
// record and appends one history entry per changed field.
func (h *ContactHandler) Update(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	username := middleware.GetUsername(c)

	contact, ok := h.store.Contacts.Get(c.Param("id"))
	if !ok || contact.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	var in contactUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	now := time.Now()
	var changes []model.HistoryEntry
	track := func(field, oldVal, newVal string) {
		if oldVal == newVal {
			return
		}
		changes = append(changes, model.HistoryEntry{
			ID:        uuid.New().String(),
			Tenant:    tenant,
			EntityID:  contact.ID,
			Field:     field,
			OldValue:  oldVal,
			NewValue:  newVal,
			ChangedBy: username,
			CreatedAt: now,
		})
	}

	if in.FirstName != nil {
		track("first_name", contact.FirstName, *in.FirstName)
		contact.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		track("last_name", contact.LastName, *in.LastName)
		contact.LastName = *in.LastName
	}
	if in.Email != nil {
		track("email", contact.Email, *in.Email)
		contact.Email = *in.Email
	}
	if in.Phone != nil {
		track("phone", contact.Phone, *in.Phone)
		contact.Phone = *in.Phone
	}
	if in.Company != nil {
		track("company", contact.Company, *in.Company)
		contact.Company = *in.Company
	}
	if in.JobTitle != nil {
		track("job_title", contact.JobTitle, *in.JobTitle)
		contact.JobTitle = *in.JobTitle
	}
	if in.Owner != nil {
		track("owner", contact.Owner, *in.Owner)
		contact.Owner = *in.Owner
	}
	if in.Stage != nil {
		track("stage", string(contact.Stage), *in.Stage)
		contact.Stage = model.ContactStage(*in.Stage)
	}
	if in.Tags != nil {
		contact.Tags = *in.Tags
	}

	merged := service.ContactInput{
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Company:   contact.Company,
		JobTitle:  contact.JobTitle,
		Owner:     contact.Owner,
		Stage:     string(contact.Stage),
		Tags:      contact.Tags,
	}
	if errs := service.ValidateContact(merged); !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	contact.UpdatedAt = now
	if err := h.store.Contacts.Save(contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save contact"})
		return
	}
	for _, entry := range changes {
		if err := h.store.History.Save(entry); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record history"})
			return
		}
	}

	c.JSON(http.StatusOK, contact)
}

// Delete archives a contact. Contacts are never removed from the
// collection.
func (h *ContactHandler) Delete(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	contact, ok := h.store.Contacts.Get(c.Param("id"))
	if !ok || contact.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	contact.IsActive = false
	contact.UpdatedAt = time.Now()
	if err := h.store.Contacts.Save(contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive contact"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact archived"})
}

// History lists the change history for one contact, oldest first.
func (h *ContactHandler) History(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	id := c.Param("id")

	contact, ok := h.store.Contacts.Get(id)
	if !ok || contact.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	entries := service.FilterRecords(h.store.History.ListByTenant(tenant), func(e model.HistoryEntry) bool {
		return e.EntityID == id
	})

	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// Bulk applies a named action to a set of contact ids. Export uploads a
// CSV of the targeted contacts instead of changing the collection.
func (h *ContactHandler) Bulk(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	now := time.Now()
	records := h.store.Contacts.ListByTenant(tenant)
	updated, err := service.ApplyBulkContactAction(records, req.Action, req.IDs, now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targets := make(map[string]bool, len(req.IDs))
	for _, id := range req.IDs {
		targets[id] = true
	}

	if req.Action == service.ActionExport {
		selected := service.FilterRecords(records, func(ct model.Contact) bool {
			return targets[ct.ID]
		})
		url, err := h.exporter.ExportContacts(c.Request.Context(), tenant, selected)
		if errors.Is(err, service.ErrExportUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Export storage is not configured"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export contacts"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url, "count": len(selected)})
		return
	}

	applied := 0
	for _, rec := range updated {
		if !targets[rec.ID] {
			continue
		}
		if err := h.store.Contacts.Save(rec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save contacts"})
			return
		}
		applied++
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bulk action applied", "count": applied})
}
