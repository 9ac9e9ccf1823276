// Package billing implements the business logic on top of the Express Pay
// gateway client: creating invoices and card payments, status lookups, and
// handling inbound gateway notifications.
package billing

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/itmedia/expresspay-payments/internal/expresspay"
)

// ErrInvalidInput is returned when a request fails validation before any
// gateway call is made.
var ErrInvalidInput = errors.New("invalid input")

// Gateway is the slice of the Express Pay client the billing service uses.
// *expresspay.Client satisfies it.
type Gateway interface {
	ListInvoices(ctx context.Context, filter expresspay.ListInvoicesFilter) ([]expresspay.Invoice, error)
	AddInvoice(ctx context.Context, accountNo string, amount float64, currency int, opts *expresspay.InvoiceOptions) (int64, error)
	AddInvoiceByCard(ctx context.Context, accountNo string, amount float64, info string, currency int, opts *expresspay.CardInvoiceOptions) (int64, error)
	InvoiceDetails(ctx context.Context, number int64) (*expresspay.Invoice, error)
	InvoiceStatus(ctx context.Context, number int64) (int, error)
	CardInvoiceStatus(ctx context.Context, number int64, language string) (int, error)
	CancelInvoice(ctx context.Context, number int64) error
	ReverseCardInvoice(ctx context.Context, number int64) error
	ListPayments(ctx context.Context, filter expresspay.ListPaymentsFilter) ([]expresspay.Payment, error)
	PaymentDetails(ctx context.Context, number int64) (*expresspay.Payment, error)
	CardPaymentFormURL(ctx context.Context, number int64) (string, error)
	ReceiveNotification(raw []byte, claimedSignature string) (*expresspay.Notification, error)
}

// Service orchestrates gateway calls for the API layer.
type Service struct {
	gateway Gateway
	logger  *zap.Logger
}

// NewService creates a billing service.
func NewService(gateway Gateway, logger *zap.Logger) *Service {
	return &Service{
		gateway: gateway,
		logger:  logger,
	}
}

// CreateInvoiceInput carries the fields for a new invoice.
type CreateInvoiceInput struct {
	AccountNo string
	Amount    float64
	Currency  int
	Options   *expresspay.InvoiceOptions
}

// CreateInvoice validates the input and creates an invoice at the gateway.
func (s *Service) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (int64, error) {
	if input.AccountNo == "" {
		return 0, fmt.Errorf("%w: account number is required", ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be greater than 0", ErrInvalidInput)
	}

	number, err := s.gateway.AddInvoice(ctx, input.AccountNo, input.Amount, input.Currency, input.Options)
	if err != nil {
		return 0, err
	}

	s.logger.Info("invoice created",
		zap.Int64("invoice_no", number),
		zap.String("account_no", input.AccountNo),
		zap.Float64("amount", input.Amount))
	return number, nil
}

// CreateCardPaymentInput carries the fields for a new card payment.
type CreateCardPaymentInput struct {
	AccountNo string
	Amount    float64
	Info      string
	Currency  int
	Options   *expresspay.CardInvoiceOptions
}

// CardPayment is the result of CreateCardPayment: the card invoice number
// and the hosted form URL the payer is redirected to.
type CardPayment struct {
	CardInvoiceNo int64
	FormURL       string
}

// CreateCardPayment creates a card invoice and fetches its payment form URL.
func (s *Service) CreateCardPayment(ctx context.Context, input CreateCardPaymentInput) (*CardPayment, error) {
	if input.AccountNo == "" {
		return nil, fmt.Errorf("%w: account number is required", ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0", ErrInvalidInput)
	}
	if input.Info == "" {
		return nil, fmt.Errorf("%w: payment info is required", ErrInvalidInput)
	}

	number, err := s.gateway.AddInvoiceByCard(ctx, input.AccountNo, input.Amount, input.Info, input.Currency, input.Options)
	if err != nil {
		return nil, err
	}

	formURL, err := s.gateway.CardPaymentFormURL(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("card invoice %d created but form lookup failed: %w", number, err)
	}

	s.logger.Info("card payment created",
		zap.Int64("card_invoice_no", number),
		zap.String("account_no", input.AccountNo),
		zap.Float64("amount", input.Amount))
	return &CardPayment{CardInvoiceNo: number, FormURL: formURL}, nil
}

// ListInvoices returns invoices matching the filter.
func (s *Service) ListInvoices(ctx context.Context, filter expresspay.ListInvoicesFilter) ([]expresspay.Invoice, error) {
	return s.gateway.ListInvoices(ctx, filter)
}

// InvoiceDetails returns the full invoice record.
func (s *Service) InvoiceDetails(ctx context.Context, number int64) (*expresspay.Invoice, error) {
	return s.gateway.InvoiceDetails(ctx, number)
}

// InvoiceStatus returns the invoice status code.
func (s *Service) InvoiceStatus(ctx context.Context, number int64) (int, error) {
	return s.gateway.InvoiceStatus(ctx, number)
}

// CardInvoiceStatus returns the card invoice status code.
func (s *Service) CardInvoiceStatus(ctx context.Context, number int64, language string) (int, error) {
	return s.gateway.CardInvoiceStatus(ctx, number, language)
}

// CancelInvoice cancels an invoice.
func (s *Service) CancelInvoice(ctx context.Context, number int64) error {
	if err := s.gateway.CancelInvoice(ctx, number); err != nil {
		return err
	}
	s.logger.Info("invoice cancelled", zap.Int64("invoice_no", number))
	return nil
}

// ReverseCardInvoice reverses a card invoice.
func (s *Service) ReverseCardInvoice(ctx context.Context, number int64) error {
	if err := s.gateway.ReverseCardInvoice(ctx, number); err != nil {
		return err
	}
	s.logger.Info("card invoice reversed", zap.Int64("card_invoice_no", number))
	return nil
}

// ListPayments returns payments matching the filter.
func (s *Service) ListPayments(ctx context.Context, filter expresspay.ListPaymentsFilter) ([]expresspay.Payment, error) {
	return s.gateway.ListPayments(ctx, filter)
}

// PaymentDetails returns the full payment record.
func (s *Service) PaymentDetails(ctx context.Context, number int64) (*expresspay.Payment, error) {
	return s.gateway.PaymentDetails(ctx, number)
}

// HandleNotification verifies an inbound gateway notification and returns
// its payload. Verification failures surface as
// expresspay.ErrSignatureMismatch.
func (s *Service) HandleNotification(raw []byte, claimedSignature string) (*expresspay.Notification, error) {
	notification, err := s.gateway.ReceiveNotification(raw, claimedSignature)
	if err != nil {
		if errors.Is(err, expresspay.ErrSignatureMismatch) {
			s.logger.Warn("notification rejected: signature mismatch")
		}
		return nil, err
	}

	switch notification.CmdType {
	case expresspay.NotificationNewPayment:
		s.logger.Info("notification: new payment",
			zap.String("account_no", notification.AccountNo),
			zap.String("amount", notification.Amount))
	case expresspay.NotificationPaymentCancelled:
		s.logger.Info("notification: payment cancelled",
			zap.String("account_no", notification.AccountNo))
	case expresspay.NotificationInvoiceChanged:
		s.logger.Info("notification: invoice changed",
			zap.Int64("invoice_no", notification.InvoiceNo))
	default:
		s.logger.Warn("notification: unknown command type",
			zap.Int("cmd_type", notification.CmdType))
	}
	return notification, nil
}
