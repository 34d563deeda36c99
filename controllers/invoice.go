// controllers/invoice.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"invoices-dashboard/services"
	"invoices-dashboard/utils"

	"github.com/gin-gonic/gin"
)

// InvoiceController serves the invoice listing and the invoice forms.
type InvoiceController struct {
	Queries *services.QueryService
	Actions *services.ActionService
}

// GetInvoices returns one page of invoices matching ?query= along with the page count
func (ic *InvoiceController) GetInvoices(c *gin.Context) {
	query := c.Query("query")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	invoices, err := ic.Queries.FetchFilteredInvoices(c.Request.Context(), query, page)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch invoices")
		return
	}
	totalPages, err := ic.Queries.FetchInvoicesPages(c.Request.Context(), query)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch total number of invoices")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices":    invoices,
		"currentPage": page,
		"totalPages":  totalPages,
	})
}

func (ic *InvoiceController) GetInvoicePages(c *gin.Context) {
	totalPages, err := ic.Queries.FetchInvoicesPages(c.Request.Context(), c.Query("query"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch total number of invoices")
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalPages": totalPages})
}

// GetInvoice returns the edit form values for one invoice
func (ic *InvoiceController) GetInvoice(c *gin.Context) {
	invoice, err := ic.Queries.FetchInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch invoice")
		return
	}
	if invoice == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (ic *InvoiceController) CreateInvoice(c *gin.Context) {
	var input services.InvoiceInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := ic.Actions.CreateInvoice(c.Request.Context(), input)
	respondWithAction(c, result, err)
}

func (ic *InvoiceController) UpdateInvoice(c *gin.Context) {
	var input services.InvoiceInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := ic.Actions.UpdateInvoice(c.Request.Context(), c.Param("id"), input)
	respondWithAction(c, result, err)
}

func (ic *InvoiceController) DeleteInvoice(c *gin.Context) {
	result := ic.Actions.DeleteInvoice(c.Request.Context(), c.Param("id"))
	respondWithAction(c, result, nil)
}

// respondWithAction maps a mutation outcome onto the response: 422 for bad
// input, 500 with the store message, 303 to the listing, or 200 with the message.
func respondWithAction(c *gin.Context, result *services.ActionResult, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": verr.Message,
			"errors":  verr.Errors,
		})
	case err != nil:
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	case result.Failed():
		c.JSON(http.StatusInternalServerError, gin.H{"message": result.Message})
	case result.Redirect != "":
		c.Redirect(http.StatusSeeOther, result.Redirect)
	default:
		c.JSON(http.StatusOK, gin.H{"message": result.Message})
	}
}
