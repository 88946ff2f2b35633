package payment

// Collection holds saved payment records
const Collection = "Payments"

// Field names of a payment record
const (
	FieldTransactionID = "transactionId"
	FieldOrderID       = "orderId"
)

type (
	// IntentRequest is the /create-payment-intent body
	IntentRequest struct {
		TotalPrice float64 `json:"totalPrice"`
	}

	// IntentResponse carries the secret the browser confirms the card with
	IntentResponse struct {
		ClientSecret string `json:"clientSecret"`
	}

	// Record links a settled transaction to its order
	Record struct {
		TransactionID string `json:"transactionId"`
		OrderID       string `json:"orderId"`
	}
)

// RecordFrom reads the string transactionId and orderId out of a /payment body
func RecordFrom(body map[string]any) Record {
	r := Record{}
	r.TransactionID, _ = body[FieldTransactionID].(string)
	r.OrderID, _ = body[FieldOrderID].(string)
	return r
}
