package request

import "localscout-booking/internal/usecase/commands"

// PaymentWebhookForm is the SSLCommerz IPN body. tran_id may also arrive in
// the query string, which is where Mercado Pago notifications carry it.
type PaymentWebhookForm struct {
	TranID string `form:"tran_id"`
	ValID  string `form:"val_id"`
	Status string `form:"status"`
}

// MercadoPagoNotification is the JSON body of a Mercado Pago webhook.
type MercadoPagoNotification struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (f PaymentWebhookForm) ToPayload() commands.WebhookPayload {
	return commands.WebhookPayload{TranID: f.TranID, ValID: f.ValID, Status: f.Status}
}
