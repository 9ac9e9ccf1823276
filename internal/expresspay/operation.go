// Package expresspay is a client for the Express Pay invoicing and payment
// gateway (https://express-pay.by). It builds HMAC-signed HTTP requests,
// sends them, and normalizes both success and error responses into typed
// results. The signing rules are method-specific: each operation signs a
// fixed, ordered subset of its request fields.
package expresspay

// Operation identifies one gateway call. The set is closed: every operation
// the client exposes has an entry in the signing table below.
type Operation int

const (
	OpListInvoices Operation = iota
	OpAddInvoice
	OpInvoiceDetails
	OpInvoiceStatus
	OpCancelInvoice
	OpListPayments
	OpPaymentDetails
	OpAddCardInvoice
	OpCardInvoiceStatus
	OpReverseCardInvoice
	OpCardInvoiceForm

	numOperations // sentinel, keep last
)

var operationNames = [numOperations]string{
	OpListInvoices:       "get-list-invoices",
	OpAddInvoice:         "add-invoice",
	OpInvoiceDetails:     "get-details-invoice",
	OpInvoiceStatus:      "status-invoice",
	OpCancelInvoice:      "cancel-invoice",
	OpListPayments:       "get-list-payments",
	OpPaymentDetails:     "get-details-payment",
	OpAddCardInvoice:     "add-card-invoice",
	OpCardInvoiceStatus:  "status-card-invoice",
	OpReverseCardInvoice: "reverse-card-invoice",
	OpCardInvoiceForm:    "card-invoice-form",
}

// String returns the gateway's name for the operation.
func (op Operation) String() string {
	if op < 0 || op >= numOperations {
		return "unknown-operation"
	}
	return operationNames[op]
}

// signingFields maps each operation to the ordered, lower-cased field names
// whose values are concatenated (no delimiter) to form the signature input.
// The order is fixed by the gateway; changing it invalidates every signature.
var signingFields = [numOperations][]string{
	OpListInvoices: {"token", "from", "to", "accountno", "status"},
	OpAddInvoice: {
		"token",
		"accountno",
		"amount",
		"currency",
		"expiration",
		"info",
		"surname",
		"firstname",
		"patronymic",
		"city",
		"street",
		"house",
		"building",
		"apartment",
		"isnameeditable",
		"isaddresseditable",
		"isamounteditable",
		"emailnotification",
	},
	OpInvoiceDetails: {"token", "id"},
	OpInvoiceStatus:  {"token", "id"},
	OpCancelInvoice:  {"token", "id"},
	OpListPayments:   {"token", "from", "to", "accountno"},
	OpPaymentDetails: {"token", "id"},
	OpAddCardInvoice: {
		"token",
		"accountno",
		"expiration",
		"amount",
		"currency",
		"info",
		"returnurl",
		"failurl",
		"language",
		"pageview",
		"sessiontimeoutsecs",
		"expirationdate",
	},
	OpCardInvoiceStatus:  {"token", "id", "language"},
	OpReverseCardInvoice: {"token", "cardinvoiceno"},
	OpCardInvoiceForm:    {"token", "id"},
}
