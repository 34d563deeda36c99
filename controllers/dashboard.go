package controllers

import (
	"net/http"

	"invoices-dashboard/services"
	"invoices-dashboard/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Queries *services.QueryService
}

func (dc *DashboardController) GetRevenue(c *gin.Context) {
	revenue, err := dc.Queries.FetchRevenue(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch revenue data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"revenue": revenue})
}

func (dc *DashboardController) GetLatestInvoices(c *gin.Context) {
	invoices, err := dc.Queries.FetchLatestInvoices(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch the latest invoices")
		return
	}
	c.JSON(http.StatusOK, gin.H{"latestInvoices": invoices})
}

// GetCardData returns the customer and invoice counts plus the paid and pending totals
func (dc *DashboardController) GetCardData(c *gin.Context) {
	cards, err := dc.Queries.FetchCardData(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch card data")
		return
	}
	c.JSON(http.StatusOK, cards)
}
