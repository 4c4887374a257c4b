package response

type CheckoutResponse struct {
	RedirectURL string `json:"redirect_url"`
}

type WebhookResponse struct {
	Outcome string `json:"outcome"`
}

// PaymentReturnResponse answers the browser redirect pages. It reports what
// the gateway said; the booking itself only changes through the webhook.
type PaymentReturnResponse struct {
	Result  string `json:"result"`
	TranID  string `json:"tran_id,omitempty"`
	Message string `json:"message"`
}
