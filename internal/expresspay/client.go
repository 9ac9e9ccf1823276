package expresspay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production gateway endpoint, version included.
const DefaultBaseURL = "https://api.express-pay.by/v1/"

// Client talks to the Express Pay gateway. Every public method performs one
// synchronous HTTP round trip: assemble parameters, sign, filter what goes
// on the wire, transmit, and classify the response.
//
// The client holds no mutable per-call state and is safe for concurrent use.
type Client struct {
	signer     *SignatureProvider
	token      string
	baseURL    string
	version    string
	returnURL  string
	failURL    string
	httpClient *http.Client
}

// NewClient creates a gateway client. returnURL and failURL are the redirect
// targets for card payments; they are required only for card invoice
// operations.
func NewClient(signer *SignatureProvider, token, baseURL, version, returnURL, failURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		signer:    signer,
		token:     token,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		version:   version,
		returnURL: returnURL,
		failURL:   failURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// ListInvoices returns invoices matching the filter. Unset date bounds are
// omitted from the request; the gateway then defaults to the last 30 days.
func (c *Client) ListInvoices(ctx context.Context, filter ListInvoicesFilter) ([]Invoice, error) {
	ps := NewParameterSet()
	ps.Set("token", c.token)
	if filter.From != nil {
		ps.Set("From", FormatDate(*filter.From))
	}
	if filter.To != nil {
		ps.Set("To", FormatDate(*filter.To))
	}
	if filter.AccountNo != nil {
		ps.Set("AccountNo", *filter.AccountNo)
	}
	if filter.Status != nil {
		ps.Set("Status", strconv.Itoa(*filter.Status))
	}
	c.addSignature(OpListInvoices, ps)

	var out struct {
		Items []Invoice `json:"Items"`
	}
	if err := c.call(ctx, http.MethodGet, "invoices", ps.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// AddInvoice creates an invoice and returns its number. Passing currency 0
// selects CurrencyBYN; a nil opts means no optional fields.
func (c *Client) AddInvoice(ctx context.Context, accountNo string, amount float64, currency int, opts *InvoiceOptions) (int64, error) {
	if currency == 0 {
		currency = CurrencyBYN
	}
	if opts == nil {
		opts = &InvoiceOptions{}
	}

	ps := NewParameterSet()
	ps.Set("token", c.token)
	ps.Set("AccountNo", accountNo)
	ps.Set("Amount", FormatAmount(amount))
	ps.Set("Currency", strconv.Itoa(currency))
	if opts.Expiration != nil {
		ps.Set("Expiration", FormatDate(*opts.Expiration))
	}
	setOptString(ps, "Info", opts.Info)
	setOptString(ps, "Surname", opts.Surname)
	setOptString(ps, "FirstName", opts.FirstName)
	setOptString(ps, "Patronymic", opts.Patronymic)
	setOptString(ps, "City", opts.City)
	setOptString(ps, "Street", opts.Street)
	setOptString(ps, "House", opts.House)
	setOptString(ps, "Building", opts.Building)
	setOptString(ps, "Apartment", opts.Apartment)
	setOptBool(ps, "IsNameEditable", opts.IsNameEditable)
	setOptBool(ps, "IsAddressEditable", opts.IsAddressEditable)
	setOptBool(ps, "IsAmountEditable", opts.IsAmountEditable)
	setOptString(ps, "EmailNotification", opts.EmailNotification)

	// The signature covers the full set including token; the form body
	// carries everything except it.
	query := c.tokenQuery(OpAddInvoice, ps)
	form := ps.FormValues("token")

	var out struct {
		InvoiceNo int64 `json:"InvoiceNo"`
	}
	if err := c.call(ctx, http.MethodPost, "invoices", query, form, &out); err != nil {
		return 0, err
	}
	return out.InvoiceNo, nil
}

// AddInvoiceByCard creates a card invoice and returns its number. The
// configured return and fail URLs are always included. Passing currency 0
// selects CurrencyBYN; a nil opts means no optional fields.
func (c *Client) AddInvoiceByCard(ctx context.Context, accountNo string, amount float64, info string, currency int, opts *CardInvoiceOptions) (int64, error) {
	if currency == 0 {
		currency = CurrencyBYN
	}
	if opts == nil {
		opts = &CardInvoiceOptions{}
	}

	ps := NewParameterSet()
	ps.Set("token", c.token)
	ps.Set("AccountNo", accountNo)
	ps.Set("Amount", FormatAmount(amount))
	ps.Set("Currency", strconv.Itoa(currency))
	ps.Set("Info", info)
	ps.Set("ReturnUrl", c.returnURL)
	ps.Set("FailUrl", c.failURL)
	if opts.Expiration != nil {
		ps.Set("Expiration", FormatDate(*opts.Expiration))
	}
	setOptString(ps, "Language", opts.Language)
	setOptString(ps, "PageView", opts.PageView)
	if opts.SessionTimeoutSecs != nil {
		ps.Set("SessionTimeoutSecs", strconv.Itoa(*opts.SessionTimeoutSecs))
	}
	if opts.ExpirationDate != nil {
		ps.Set("ExpirationDate", FormatDateTime(*opts.ExpirationDate))
	}

	query := c.tokenQuery(OpAddCardInvoice, ps)
	form := ps.FormValues("token")

	var out struct {
		CardInvoiceNo int64 `json:"CardInvoiceNo"`
	}
	if err := c.call(ctx, http.MethodPost, "cardinvoices", query, form, &out); err != nil {
		return 0, err
	}
	return out.CardInvoiceNo, nil
}

// InvoiceDetails returns the full record for an invoice.
func (c *Client) InvoiceDetails(ctx context.Context, number int64) (*Invoice, error) {
	ps := c.identifiedParams("Id", number)
	query := c.tokenQuery(OpInvoiceDetails, ps)

	var out Invoice
	if err := c.call(ctx, http.MethodGet, "invoices/"+strconv.FormatInt(number, 10), query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InvoiceStatus returns the invoice status, one of the Status* constants.
func (c *Client) InvoiceStatus(ctx context.Context, number int64) (int, error) {
	ps := c.identifiedParams("Id", number)
	query := c.tokenQuery(OpInvoiceStatus, ps)

	var out struct {
		Status int `json:"Status"`
	}
	if err := c.call(ctx, http.MethodGet, "invoices/"+strconv.FormatInt(number, 10)+"/status", query, nil, &out); err != nil {
		return 0, err
	}
	return out.Status, nil
}

// CardInvoiceStatus returns the card invoice status, one of the CardStatus*
// constants. language is an ISO 639-1 code; the empty string means "ru".
func (c *Client) CardInvoiceStatus(ctx context.Context, number int64, language string) (int, error) {
	if language == "" {
		language = "ru"
	}
	ps := c.identifiedParams("Id", number)
	ps.Set("Language", language)

	// Language rides along in the query even though this is a read.
	query := c.tokenQuery(OpCardInvoiceStatus, ps)
	query.Set("Language", language)

	var out struct {
		CardInvoiceStatus int `json:"CardInvoiceStatus"`
	}
	if err := c.call(ctx, http.MethodGet, "cardinvoices/"+strconv.FormatInt(number, 10)+"/status", query, nil, &out); err != nil {
		return 0, err
	}
	return out.CardInvoiceStatus, nil
}

// CancelInvoice cancels an invoice.
func (c *Client) CancelInvoice(ctx context.Context, number int64) error {
	ps := c.identifiedParams("Id", number)
	query := c.tokenQuery(OpCancelInvoice, ps)
	return c.call(ctx, http.MethodDelete, "invoices/"+strconv.FormatInt(number, 10), query, nil, nil)
}

// ReverseCardInvoice reverses a card invoice.
func (c *Client) ReverseCardInvoice(ctx context.Context, number int64) error {
	ps := c.identifiedParams("CardInvoiceNo", number)
	query := c.tokenQuery(OpReverseCardInvoice, ps)
	return c.call(ctx, http.MethodPost, "cardinvoices/"+strconv.FormatInt(number, 10)+"/reverse", query, nil, nil)
}

// ListPayments returns payments matching the filter.
func (c *Client) ListPayments(ctx context.Context, filter ListPaymentsFilter) ([]Payment, error) {
	ps := NewParameterSet()
	ps.Set("token", c.token)
	if filter.From != nil {
		ps.Set("From", FormatDate(*filter.From))
	}
	if filter.To != nil {
		ps.Set("To", FormatDate(*filter.To))
	}
	if filter.AccountNo != nil {
		ps.Set("AccountNo", *filter.AccountNo)
	}
	c.addSignature(OpListPayments, ps)

	var out struct {
		Items []Payment `json:"Items"`
	}
	if err := c.call(ctx, http.MethodGet, "payments", ps.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// PaymentDetails returns the full record for a payment.
func (c *Client) PaymentDetails(ctx context.Context, number int64) (*Payment, error) {
	ps := c.identifiedParams("Id", number)
	query := c.tokenQuery(OpPaymentDetails, ps)

	var out Payment
	if err := c.call(ctx, http.MethodGet, "payments/"+strconv.FormatInt(number, 10), query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CardPaymentFormURL returns the hosted payment form URL for a card invoice.
func (c *Client) CardPaymentFormURL(ctx context.Context, number int64) (string, error) {
	ps := c.identifiedParams("Id", number)
	query := c.tokenQuery(OpCardInvoiceForm, ps)

	var out struct {
		FormURL string `json:"FormUrl"`
	}
	if err := c.call(ctx, http.MethodGet, "cardinvoices/"+strconv.FormatInt(number, 10)+"/payment", query, nil, &out); err != nil {
		return "", err
	}
	return out.FormURL, nil
}

// identifiedParams builds the token + identifier set shared by the
// detail, status, cancel, reverse and form operations.
func (c *Client) identifiedParams(idField string, number int64) *ParameterSet {
	ps := NewParameterSet()
	ps.Set("token", c.token)
	ps.Set(idField, strconv.FormatInt(number, 10))
	return ps
}

// addSignature signs the set in place for operations that transmit every
// assembled field.
func (c *Client) addSignature(op Operation, ps *ParameterSet) {
	if sig := c.signer.ComputeRequestSignature(op, ps); sig != "" {
		ps.Set("signature", sig)
	}
}

// tokenQuery computes the signature over the full set and returns the
// trimmed query string the filtered operations transmit: token plus
// signature, nothing else.
func (c *Client) tokenQuery(op Operation, ps *ParameterSet) url.Values {
	query := url.Values{}
	query.Set("token", c.token)
	if sig := c.signer.ComputeRequestSignature(op, ps); sig != "" {
		query.Set("signature", sig)
	}
	return query
}

// call performs one round trip and decodes the success payload into out,
// which may be nil for operations without a result.
func (c *Client) call(ctx context.Context, method, path string, query, form url.Values, out interface{}) error {
	endpoint := c.baseURL + "/" + path
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	payload, err := classifyResponse(raw, resp.StatusCode)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &ProtocolError{StatusCode: resp.StatusCode, Body: raw, Err: err}
	}
	return nil
}

func setOptString(ps *ParameterSet, name string, value *string) {
	if value != nil {
		ps.Set(name, *value)
	}
}

func setOptBool(ps *ParameterSet, name string, value *bool) {
	if value != nil {
		ps.Set(name, formatBool(*value))
	}
}
