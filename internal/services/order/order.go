package order

import (
	"context"
	"errors"
	"fmt"

	orderEntity "github.com/benedict-erwin/manufacture-online/internal/entities/order"
	"github.com/benedict-erwin/manufacture-online/internal/store"
)

// ErrNotFound is returned when no order matches the id
var ErrNotFound = errors.New("order not found")

// MarkPaid flags the order as paid by transactionID
func MarkPaid(ctx context.Context, st store.Store, orderID, transactionID string) error {
	filter, err := store.IDFilter(orderID)
	if err != nil {
		return fmt.Errorf("mark order %q paid: %w", orderID, err)
	}

	matched, err := st.SetFields(ctx, orderEntity.Collection, filter, store.Document{
		orderEntity.FieldPaid:          true,
		orderEntity.FieldTransactionID: transactionID,
	})
	if err != nil {
		return fmt.Errorf("mark order %q paid: %w", orderID, err)
	}
	if !matched {
		return fmt.Errorf("mark order %q paid: %w", orderID, ErrNotFound)
	}
	return nil
}
