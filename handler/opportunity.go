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

type OpportunityHandler struct {
	store    *service.Store
	exporter *service.Exporter
}

func NewOpportunityHandler(store *service.Store, exporter *service.Exporter) *OpportunityHandler {
	return &OpportunityHandler{
		store:    store,
		exporter: exporter,
	}
}

// opportunityView adds the derived financial fields to API responses.
// They are computed here on every read, never stored.
type opportunityView struct {
	model.Opportunity
	WeightedAmount   float64                `json:"weighted_amount"`
	ForecastCategory model.ForecastCategory `json:"forecast_category"`
}

func viewOf(o model.Opportunity) opportunityView {
	return opportunityView{
		Opportunity:      o,
		WeightedAmount:   o.WeightedAmount(),
		ForecastCategory: o.ForecastCategory(),
	}
}

func viewsOf(opps []model.Opportunity) []opportunityView {
	views := make([]opportunityView, len(opps))
	for i, o := range opps {
		views[i] = viewOf(o)
	}
	return views
}

func opportunityFilterFromQuery(c *gin.Context) model.OpportunityFilter {
	return model.OpportunityFilter{
		Search:  c.Query("search"),
		Stage:   c.DefaultQuery("stage", model.MatchAll),
		Owner:   c.DefaultQuery("owner", model.MatchAll),
		Company: c.DefaultQuery("company", model.MatchAll),
		Tags:    c.QueryArray("tag"),
		Created: model.DateRange(c.DefaultQuery("range", model.MatchAll)),
	}
}

// List returns one page of the tenant's opportunities after filtering
func (h *OpportunityHandler) List(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	now := time.Now()
	filter := opportunityFilterFromQuery(c)

	all := h.store.Opportunities.ListByTenant(tenant)
	filtered := service.FilterRecords(all, func(o model.Opportunity) bool {
		return filter.Matches(o, now)
	})
	page := service.Paginate(filtered, service.DefaultPageSize, pageParam(c))

	c.JSON(http.StatusOK, gin.H{
		"opportunities": viewsOf(page.Items),
		"current_page":  page.CurrentPage,
		"total_pages":   page.TotalPages,
		"page_size":     page.PageSize,
		"has_prev":      page.HasPrev,
		"has_next":      page.HasNext,
		"filtered":      page.TotalItems,
		"total":         len(all),
	})
}

// Create validates the form and stores a new opportunity
func (h *OpportunityHandler) Create(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	var in service.OpportunityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if errs := service.ValidateOpportunity(in); !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	now := time.Now()
	opp := model.Opportunity{
		ID:                uuid.New().String(),
		Tenant:            tenant,
		Name:              in.Name,
		Company:           in.Company,
		Owner:             in.Owner,
		Stage:             model.OpportunityStage(in.Stage),
		Amount:            in.Amount,
		Probability:       in.Probability,
		ExpectedCloseDate: in.ExpectedCloseDate,
		Tags:              in.Tags,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := h.store.Opportunities.Save(opp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save opportunity"})
		return
	}

	c.JSON(http.StatusCreated, viewOf(opp))
}

// Get returns a single opportunity with derived fields
func (h *OpportunityHandler) Get(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	opp, ok := h.store.Opportunities.Get(c.Param("id"))
	if !ok || opp.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Opportunity not found"})
		return
	}

	c.JSON(http.StatusOK, viewOf(opp))
}

// Update replaces the editable fields of an opportunity. The weighted
// amount follows automatically since it is derived on read.
func (h *OpportunityHandler) Update(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	opp, ok := h.store.Opportunities.Get(c.Param("id"))
	if !ok || opp.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Opportunity not found"})
		return
	}

	var in service.OpportunityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if errs := service.ValidateOpportunity(in); !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	opp.Name = in.Name
	opp.Company = in.Company
	opp.Owner = in.Owner
	opp.Stage = model.OpportunityStage(in.Stage)
	opp.Amount = in.Amount
	opp.Probability = in.Probability
	opp.ExpectedCloseDate = in.ExpectedCloseDate
	opp.Tags = in.Tags
	opp.UpdatedAt = time.Now()

	if err := h.store.Opportunities.Save(opp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save opportunity"})
		return
	}

	c.JSON(http.StatusOK, viewOf(opp))
}

// Delete removes an opportunity. Unlike contacts, opportunities are
// hard deleted.
func (h *OpportunityHandler) Delete(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	id := c.Param("id")

	opp, ok := h.store.Opportunities.Get(id)
	if !ok || opp.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Opportunity not found"})
		return
	}

	if err := h.store.Opportunities.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete opportunity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Opportunity deleted"})
}

// Forecast returns the deals expected to close in the calendar period
// containing now.
func (h *OpportunityHandler) Forecast(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	period := c.DefaultQuery("period", string(service.PeriodQuarter))
	if !service.ValidPeriod(period) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Period must be month, quarter or year"})
		return
	}

	now := time.Now()
	start, end := service.PeriodBounds(now, service.Period(period))
	deals := service.CloseForecast(h.store.Opportunities.ListByTenant(tenant), service.Period(period), now)

	c.JSON(http.StatusOK, gin.H{
		"period":          period,
		"start":           start.Format(time.RFC3339),
		"end":             end.Format(time.RFC3339),
		"count":           len(deals),
		"total_amount":    service.SumAmount(deals),
		"weighted_amount": service.PipelineValue(deals),
		"opportunities":   viewsOf(deals),
	})
}

// Bulk applies a named action to a set of opportunity ids.
func (h *OpportunityHandler) Bulk(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	now := time.Now()
	records := h.store.Opportunities.ListByTenant(tenant)
	updated, err := service.ApplyBulkOpportunityAction(records, req.Action, req.IDs, now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targets := make(map[string]bool, len(req.IDs))
	for _, id := range req.IDs {
		targets[id] = true
	}

	if req.Action == service.ActionExport {
		selected := service.FilterRecords(records, func(o model.Opportunity) bool {
			return targets[o.ID]
		})
		url, err := h.exporter.ExportOpportunities(c.Request.Context(), tenant, selected)
		if errors.Is(err, service.ErrExportUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Export storage is not configured"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export opportunities"})
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
		if err := h.store.Opportunities.Save(rec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save opportunities"})
			return
		}
		applied++
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bulk action applied", "count": applied})
}
