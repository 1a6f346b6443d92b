package dto

// GatewayWebhookEvent is the envelope the payment gateway posts to the
// webhook endpoint. Only the fields the reconciliation path reads are
// modelled; the rest of the envelope is ignored.
type GatewayWebhookEvent struct {
	Event   string         `json:"event"`
	Payload WebhookPayload `json:"payload"`
}

// WebhookPayload nests the payment entity the way the gateway ships it.
type WebhookPayload struct {
	Payment WebhookPaymentWrapper `json:"payment"`
}

// WebhookPaymentWrapper wraps the payment entity.
type WebhookPaymentWrapper struct {
	Entity WebhookPaymentEntity `json:"entity"`
}

// WebhookPaymentEntity carries the gateway payment and its owning order.
type WebhookPaymentEntity struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// WebhookAckResponse is the body returned to the gateway on receipt.
type WebhookAckResponse struct {
	Status string `json:"status"`
}
