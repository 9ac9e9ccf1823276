// Package api contains the HTTP handlers and routing for the payments service.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/itmedia/expresspay-payments/internal/billing"
	"github.com/itmedia/expresspay-payments/internal/expresspay"
)

// Handler contains the HTTP handlers for the billing API.
type Handler struct {
	service *billing.Service
	logger  *zap.Logger
}

// NewHandler creates an API handler.
func NewHandler(service *billing.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
}

// CreateInvoiceRequest is the JSON body for POST /api/v1/invoices.
type CreateInvoiceRequest struct {
	AccountNo  string  `json:"account_no" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Currency   int     `json:"currency"`
	Info       string  `json:"info"`
	Expiration string  `json:"expiration"` // YYYY-MM-DD
}

// CreateInvoiceResponse is the response for POST /api/v1/invoices.
type CreateInvoiceResponse struct {
	Success   bool  `json:"success"`
	InvoiceNo int64 `json:"invoice_no"`
}

// CreateInvoice handles POST /api/v1/invoices.
func (h *Handler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	opts := &expresspay.InvoiceOptions{}
	if req.Info != "" {
		opts.Info = &req.Info
	}
	if req.Expiration != "" {
		expiration, err := time.Parse("2006-01-02", req.Expiration)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid expiration date: " + req.Expiration})
			return
		}
		opts.Expiration = &expiration
	}

	number, err := h.service.CreateInvoice(c.Request.Context(), billing.CreateInvoiceInput{
		AccountNo: req.AccountNo,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Options:   opts,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateInvoiceResponse{Success: true, InvoiceNo: number})
}

// CreateCardPaymentRequest is the JSON body for POST /api/v1/cardinvoices.
type CreateCardPaymentRequest struct {
	AccountNo string  `json:"account_no" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Info      string  `json:"info" binding:"required"`
	Currency  int     `json:"currency"`
	Language  string  `json:"language"`
}

// CreateCardPaymentResponse is the response for POST /api/v1/cardinvoices.
type CreateCardPaymentResponse struct {
	Success       bool   `json:"success"`
	CardInvoiceNo int64  `json:"card_invoice_no"`
	FormURL       string `json:"form_url"`
}

// CreateCardPayment handles POST /api/v1/cardinvoices.
func (h *Handler) CreateCardPayment(c *gin.Context) {
	var req CreateCardPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	opts := &expresspay.CardInvoiceOptions{}
	if req.Language != "" {
		opts.Language = &req.Language
	}

	payment, err := h.service.CreateCardPayment(c.Request.Context(), billing.CreateCardPaymentInput{
		AccountNo: req.AccountNo,
		Amount:    req.Amount,
		Info:      req.Info,
		Currency:  req.Currency,
		Options:   opts,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateCardPaymentResponse{
		Success:       true,
		CardInvoiceNo: payment.CardInvoiceNo,
		FormURL:       payment.FormURL,
	})
}

// ListInvoices handles GET /api/v1/invoices.
func (h *Handler) ListInvoices(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	invoices, err := h.service.ListInvoices(c.Request.Context(), *filter)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": invoices})
}

// InvoiceDetails handles GET /api/v1/invoices/:id.
func (h *Handler) InvoiceDetails(c *gin.Context) {
	number, ok := invoiceNumber(c)
	if !ok {
		return
	}

	invoice, err := h.service.InvoiceDetails(c.Request.Context(), number)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "invoice": invoice})
}

// InvoiceStatus handles GET /api/v1/invoices/:id/status.
func (h *Handler) InvoiceStatus(c *gin.Context) {
	number, ok := invoiceNumber(c)
	if !ok {
		return
	}

	status, err := h.service.InvoiceStatus(c.Request.Context(), number)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

// CancelInvoice handles DELETE /api/v1/invoices/:id.
func (h *Handler) CancelInvoice(c *gin.Context) {
	number, ok := invoiceNumber(c)
	if !ok {
		return
	}

	if err := h.service.CancelInvoice(c.Request.Context(), number); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CardInvoiceStatus handles GET /api/v1/cardinvoices/:id/status.
func (h *Handler) CardInvoiceStatus(c *gin.Context) {
	number, ok := invoiceNumber(c)
	if !ok {
		return
	}

	status, err := h.service.CardInvoiceStatus(c.Request.Context(), number, c.Query("language"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

// ReverseCardInvoice handles POST /api/v1/cardinvoices/:id/reverse.
func (h *Handler) ReverseCardInvoice(c *gin.Context) {
	number, ok := invoiceNumber(c)
	if !ok {
		return
	}

	if err := h.service.ReverseCardInvoice(c.Request.Context(), number); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListPayments handles GET /api/v1/payments.
func (h *Handler) ListPayments(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	payments, err := h.service.ListPayments(c.Request.Context(), expresspay.ListPaymentsFilter{
		From:      filter.From,
		To:        filter.To,
		AccountNo: filter.AccountNo,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": payments})
}

// PaymentDetails handles GET /api/v1/payments/:id.
func (h *Handler) PaymentDetails(c *gin.Context) {
	number, ok := invoiceNumber(c)
	if !ok {
		return
	}

	payment, err := h.service.PaymentDetails(c.Request.Context(), number)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payment": payment})
}

// HandleNotification handles POST /notification. The gateway delivers the
// raw payload and its signature as form fields Data and Signature.
func (h *Handler) HandleNotification(c *gin.Context) {
	data := c.PostForm("Data")
	signature := c.PostForm("Signature")
	if data == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Data form field is required"})
		return
	}

	notification, err := h.service.HandleNotification([]byte(data), signature)
	if err != nil {
		if errors.Is(err, expresspay.ErrSignatureMismatch) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "signature mismatch"})
			return
		}
		h.logger.Error("notification processing failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notification payload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cmd_type": notification.CmdType})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "expresspay-payments",
	})
}

// invoiceNumber parses the :id path parameter, writing the error response
// itself when the value is not a number.
func invoiceNumber(c *gin.Context) (int64, bool) {
	number, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice number: " + c.Param("id")})
		return 0, false
	}
	return number, true
}

// parseListFilter reads the shared from/to/account_no/status query params.
func parseListFilter(c *gin.Context) (*expresspay.ListInvoicesFilter, error) {
	filter := &expresspay.ListInvoicesFilter{}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, errors.New("invalid from date: " + raw)
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, errors.New("invalid to date: " + raw)
		}
		filter.To = &to
	}
	if raw := c.Query("account_no"); raw != "" {
		filter.AccountNo = &raw
	}
	if raw := c.Query("status"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("invalid status: " + raw)
		}
		filter.Status = &status
	}
	return filter, nil
}

// handleServiceError maps the billing and gateway error taxonomy to HTTP
// responses.
func (h *Handler) handleServiceError(c *gin.Context, err error) {
	var gwErr *expresspay.GatewayError
	var transportErr *expresspay.TransportError
	var protoErr *expresspay.ProtocolError

	switch {
	case errors.Is(err, billing.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &gwErr):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: gwErr.Message, Code: gwErr.Code})
	case errors.As(err, &transportErr):
		h.logger.Error("gateway unreachable", zap.Error(err))
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "payment gateway unreachable"})
	case errors.As(err, &protoErr):
		h.logger.Error("gateway protocol error", zap.Error(err), zap.Int("status", protoErr.StatusCode))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "unexpected gateway response"})
	default:
		h.logger.Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
