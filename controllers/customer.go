package controllers

import (
	"net/http"

	"invoices-dashboard/services"
	"invoices-dashboard/utils"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	Queries *services.QueryService
}

// GetCustomers returns every customer's id and name for the invoice form select
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	customers, err := cc.Queries.FetchCustomers(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch all customers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// GetCustomerTable returns per-customer invoice totals filtered by ?query=
func (cc *CustomerController) GetCustomerTable(c *gin.Context) {
	customers, err := cc.Queries.FetchFilteredCustomers(c.Request.Context(), c.Query("query"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch customer table")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}
