package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	financeapp "github.com/rentops/backend/internal/application/finance"
)

// FinanceHandler handles the expense and revenue ledger, payment
// methods, tax rates and the financial summary
type FinanceHandler struct {
	BaseHandler
	recordService   *financeapp.RecordService
	settingsService *financeapp.FinanceSettingsService
	summaryService  *financeapp.SummaryService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(
	recordService *financeapp.RecordService,
	settingsService *financeapp.FinanceSettingsService,
	summaryService *financeapp.SummaryService,
) *FinanceHandler {
	return &FinanceHandler{
		recordService:   recordService,
		settingsService: settingsService,
		summaryService:  summaryService,
	}
}

// SummaryPeriodRequest holds the optional reporting period. When both
// bounds are absent the current month is reported.
type SummaryPeriodRequest struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// CreateExpense records an operating expense
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req financeapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.recordService.CreateExpense(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListExpenses returns a page of expenses within an optional period
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var filter financeapp.RecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.recordService.ListExpenses(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// DeleteExpense removes an expense record
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.recordService.DeleteExpense(c.Request.Context(), tenantID, expenseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateRevenue records income outside the invoice flow
func (h *FinanceHandler) CreateRevenue(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req financeapp.CreateRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.recordService.CreateRevenue(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListRevenues returns a page of revenue records within an optional
// period
func (h *FinanceHandler) ListRevenues(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var filter financeapp.RecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.recordService.ListRevenues(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// DeleteRevenue removes a revenue record
func (h *FinanceHandler) DeleteRevenue(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	revenueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid revenue ID")
		return
	}

	if err := h.recordService.DeleteRevenue(c.Request.Context(), tenantID, revenueID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreatePaymentMethod adds a way customers can pay
func (h *FinanceHandler) CreatePaymentMethod(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req financeapp.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.settingsService.CreatePaymentMethod(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListPaymentMethods returns all payment methods of the tenant
func (h *FinanceHandler) ListPaymentMethods(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	resp, err := h.settingsService.ListPaymentMethods(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ActivatePaymentMethod re-enables a payment method
func (h *FinanceHandler) ActivatePaymentMethod(c *gin.Context) {
	h.setPaymentMethodActive(c, true)
}

// DeactivatePaymentMethod disables a payment method
func (h *FinanceHandler) DeactivatePaymentMethod(c *gin.Context) {
	h.setPaymentMethodActive(c, false)
}

func (h *FinanceHandler) setPaymentMethodActive(c *gin.Context, active bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID")
		return
	}

	if err := h.settingsService.SetPaymentMethodActive(c.Request.Context(), tenantID, methodID, active); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeletePaymentMethod removes a payment method
func (h *FinanceHandler) DeletePaymentMethod(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID")
		return
	}

	if err := h.settingsService.DeletePaymentMethod(c.Request.Context(), tenantID, methodID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateTaxRate adds a tax rate
func (h *FinanceHandler) CreateTaxRate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req financeapp.CreateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.settingsService.CreateTaxRate(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListTaxRates returns all tax rates of the tenant
func (h *FinanceHandler) ListTaxRates(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	resp, err := h.settingsService.ListTaxRates(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetDefaultTaxRate marks a tax rate as the tenant default
func (h *FinanceHandler) SetDefaultTaxRate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	rateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tax rate ID")
		return
	}

	if err := h.settingsService.SetDefaultTaxRate(c.Request.Context(), tenantID, rateID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteTaxRate removes a tax rate
func (h *FinanceHandler) DeleteTaxRate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	rateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tax rate ID")
		return
	}

	if err := h.settingsService.DeleteTaxRate(c.Request.Context(), tenantID, rateID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Summary aggregates income and spend for a period. Without period
// bounds it reports the current month.
func (h *FinanceHandler) Summary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var period SummaryPeriodRequest
	if err := c.ShouldBindQuery(&period); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var resp *financeapp.FinancialSummaryResponse
	if period.From != nil && period.To != nil {
		resp, err = h.summaryService.ForPeriod(c.Request.Context(), tenantID, *period.From, *period.To)
	} else if period.From == nil && period.To == nil {
		resp, err = h.summaryService.CurrentMonth(c.Request.Context(), tenantID, time.Now())
	} else {
		h.BadRequest(c, "Both from and to are required for a custom period")
		return
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.CreateExpense)
		expenses.GET("", h.ListExpenses)
		expenses.DELETE("/:id", h.DeleteExpense)
	}

	revenues := rg.Group("/revenues")
	{
		revenues.POST("", h.CreateRevenue)
		revenues.GET("", h.ListRevenues)
		revenues.DELETE("/:id", h.DeleteRevenue)
	}

	methods := rg.Group("/payment-methods")
	{
		methods.POST("", h.CreatePaymentMethod)
		methods.GET("", h.ListPaymentMethods)
		methods.POST("/:id/activate", h.ActivatePaymentMethod)
		methods.POST("/:id/deactivate", h.DeactivatePaymentMethod)
		methods.DELETE("/:id", h.DeletePaymentMethod)
	}

	rates := rg.Group("/tax-rates")
	{
		rates.POST("", h.CreateTaxRate)
		rates.GET("", h.ListTaxRates)
		rates.POST("/:id/default", h.SetDefaultTaxRate)
		rates.DELETE("/:id", h.DeleteTaxRate)
	}

	rg.GET("/finance/summary", h.Summary)
}
