package expresspay

import "time"

// CurrencyBYN is the gateway's default currency code.
const CurrencyBYN = 933

// Invoice statuses.
const (
	StatusPending  = 1
	StatusExpired  = 2
	StatusPaid     = 3
	StatusPaidPart = 4
	StatusCanceled = 5
)

// Card invoice statuses.
const (
	CardStatusPending      = 0
	CardStatusHold         = 1
	CardStatusAuthorized   = 2
	CardStatusCancelled    = 3
	CardStatusRefunded     = 4
	CardStatusAuthorizeACS = 5
	CardStatusRejected     = 6
)

// Page view types for card payment forms.
const (
	PageViewMobile  = "MOBILE"
	PageViewDesktop = "DESKTOP"
)

// Notification command types.
const (
	NotificationNewPayment       = 1
	NotificationPaymentCancelled = 2
	NotificationInvoiceChanged   = 3
)

// Invoice is a gateway invoice record. The client treats it as opaque
// beyond the envelope: fields are returned as the gateway sends them.
type Invoice struct {
	InvoiceNo  int64  `json:"InvoiceNo"`
	AccountNo  string `json:"AccountNo"`
	Amount     string `json:"Amount"`
	Currency   int    `json:"Currency"`
	Status     int    `json:"Status"`
	Created    string `json:"Created"`
	Expiration string `json:"Expiration"`
	Info       string `json:"Info"`
}

// Payment is a gateway payment record.
type Payment struct {
	PaymentNo int64  `json:"PaymentNo"`
	AccountNo string `json:"AccountNo"`
	Amount    string `json:"Amount"`
	Created   string `json:"Created"`
	Service   string `json:"Service"`
}

// Notification is the payload of a gateway-initiated push describing an
// invoice or payment state change. CmdType is one of the Notification*
// constants.
type Notification struct {
	CmdType   int    `json:"CmdType"`
	AccountNo string `json:"AccountNo"`
	InvoiceNo int64  `json:"InvoiceNo"`
	Amount    string `json:"Amount"`
	Created   string `json:"Created"`
}

// InvoiceOptions are the optional fields of AddInvoice. Nil members are
// neither signed as values nor transmitted.
type InvoiceOptions struct {
	Expiration        *time.Time
	Info              *string
	Surname           *string
	FirstName         *string
	Patronymic        *string
	City              *string
	Street            *string
	House             *string
	Building          *string
	Apartment         *string
	IsNameEditable    *bool
	IsAddressEditable *bool
	IsAmountEditable  *bool
	EmailNotification *string
}

// CardInvoiceOptions are the optional fields of AddInvoiceByCard.
type CardInvoiceOptions struct {
	Expiration         *time.Time
	Language           *string
	PageView           *string
	SessionTimeoutSecs *int
	ExpirationDate     *time.Time
}

// ListInvoicesFilter narrows ListInvoices. With From and To unset the
// gateway defaults to the last 30 days.
type ListInvoicesFilter struct {
	From      *time.Time
	To        *time.Time
	AccountNo *string
	Status    *int
}

// ListPaymentsFilter narrows ListPayments. With From and To unset the
// gateway defaults to the last 30 days.
type ListPaymentsFilter struct {
	From      *time.Time
	To        *time.Time
	AccountNo *string
}
