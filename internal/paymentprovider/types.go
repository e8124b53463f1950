package paymentprovider

// Provider-side payment states.
const (
	StatusPending           = "pending"
	StatusWaitingForCapture = "waiting_for_capture"
	StatusSucceeded         = "succeeded"
	StatusCanceled          = "canceled"
)

// Amount is a money value in the provider's wire form.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// PaymentMethodData names how the tenant pays.
type PaymentMethodData struct {
	Type string `json:"type"`
}

// CreatePaymentRequest is the body of POST /payments.
type CreatePaymentRequest struct {
	Amount            Amount            `json:"amount"`
	Capture           bool              `json:"capture"`
	PaymentMethodData PaymentMethodData `json:"payment_method_data"`
	Description       string            `json:"description,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// CreatePaymentResponse is the provider's view of a payment.
type CreatePaymentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
