package order

// Collection holds one document per purchaser, keyed on email and username
const Collection = "Orders"

// Field names of an order document
const (
	FieldEmail         = "email"
	FieldUsername      = "username"
	FieldItems         = "orders"
	FieldPaid          = "paid"
	FieldTransactionID = "transactionId"
)

// SplitPurchase separates a /purchase body into the purchaser key and the
// order item appended to FieldItems. Absent key fields stay nil in the key.
func SplitPurchase(body map[string]any) (key map[string]any, item map[string]any) {
	key = map[string]any{
		FieldEmail:    body[FieldEmail],
		FieldUsername: body[FieldUsername],
	}
	item = make(map[string]any, len(body))
	for k, v := range body {
		if k == FieldEmail || k == FieldUsername {
			continue
		}
		item[k] = v
	}
	return key, item
}
