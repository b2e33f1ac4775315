package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwaldrep/salesdesk/backend/middleware"
	"github.com/mwaldrep/salesdesk/backend/model"
	"github.com/mwaldrep/salesdesk/backend/service"
)

type DashboardHandler struct {
	store *service.Store
}

func NewDashboardHandler(store *service.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// Sales returns the full sales dashboard rollup for the tenant. Every
// metric is recomputed from the live collections on each call.
func (h *DashboardHandler) Sales(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	opps := h.store.Opportunities.ListByTenant(tenant)
	metrics := service.ComputeSalesMetrics(opps)

	contacts := h.store.Contacts.ListByTenant(tenant)
	stageCounts := make(map[model.ContactStage]int, len(model.ContactStages))
	active := 0
	for _, ct := range contacts {
		stageCounts[ct.Stage]++
		if ct.IsActive {
			active++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"sales": metrics,
		"contacts": gin.H{
			"total":    len(contacts),
			"active":   active,
			"by_stage": stageCounts,
		},
		"generated_at": time.Now().Format(time.RFC3339),
	})
}
