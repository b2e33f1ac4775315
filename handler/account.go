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

type AccountHandler struct {
	store *service.Store
}

func NewAccountHandler(store *service.Store) *AccountHandler {
	return &AccountHandler{store: store}
}

func accountFilterFromQuery(c *gin.Context) model.AccountFilter {
	return model.AccountFilter{
		Search:   c.Query("search"),
		Type:     c.DefaultQuery("type", model.MatchAll),
		Industry: c.DefaultQuery("industry", model.MatchAll),
		Owner:    c.DefaultQuery("owner", model.MatchAll),
		Tags:     c.QueryArray("tag"),
		Active:   model.ActiveFilter(c.DefaultQuery("active", model.MatchAll)),
		Created:  model.DateRange(c.DefaultQuery("range", model.MatchAll)),
	}
}

// List returns one page of the tenant's accounts after filtering
func (h *AccountHandler) List(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	now := time.Now()
	filter := accountFilterFromQuery(c)

	all := h.store.Accounts.ListByTenant(tenant)
	filtered := service.FilterRecords(all, func(a model.Account) bool {
		return filter.Matches(a, now)
	})
	page := service.Paginate(filtered, service.DefaultPageSize, pageParam(c))

	c.JSON(http.StatusOK, gin.H{
		"accounts":     page.Items,
		"current_page": page.CurrentPage,
		"total_pages":  page.TotalPages,
		"page_size":    page.PageSize,
		"has_prev":     page.HasPrev,
		"has_next":     page.HasNext,
		"filtered":     page.TotalItems,
		"total":        len(all),
	})
}

// Create validates the form and stores a new account
func (h *AccountHandler) Create(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	var in service.AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if errs := service.ValidateAccount(in); !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	now := time.Now()
	account := model.Account{
		ID:        uuid.New().String(),
		Tenant:    tenant,
		Name:      in.Name,
		Type:      model.AccountType(in.Type),
		Industry:  in.Industry,
		Website:   in.Website,
		Owner:     in.Owner,
		Tags:      in.Tags,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.store.Accounts.Save(account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save account"})
		return
	}

	c.JSON(http.StatusCreated, account)
}

// Get returns a single account
func (h *AccountHandler) Get(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	account, ok := h.store.Accounts.Get(c.Param("id"))
	if !ok || account.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// Update replaces the editable fields of an account
func (h *AccountHandler) Update(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	account, ok := h.store.Accounts.Get(c.Param("id"))
	if !ok || account.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	var in service.AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if errs := service.ValidateAccount(in); !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	account.Name = in.Name
	account.Type = model.AccountType(in.Type)
	account.Industry = in.Industry
	account.Website = in.Website
	account.Owner = in.Owner
	account.Tags = in.Tags
	account.UpdatedAt = time.Now()

	if err := h.store.Accounts.Save(account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save account"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// Delete archives an account. Accounts follow the contact policy and
// are never removed.
func (h *AccountHandler) Delete(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	account, ok := h.store.Accounts.Get(c.Param("id"))
	if !ok || account.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	account.IsActive = false
	account.UpdatedAt = time.Now()
	if err := h.store.Accounts.Save(account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account archived"})
}
