package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
)

// Dispatcher sends the customer confirmation and the operator alert for a
// submitted order. It runs strictly after the order transaction commits and
// its failures never reach the submission path: the poller logs them and
// leaves the outbox event for the next tick.
type Dispatcher struct {
	sender Sender
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Notify dispatches both messages. The returned error exists only so the
// outbox poller can retry; both sends are attempted regardless.
func (d *Dispatcher) Notify(ctx context.Context, order *domain.Order) error {
	var firstErr error

	if err := d.sender.Send(ctx,
		order.ProfileID,
		fmt.Sprintf("Order Confirmation - %s", order.OrderNumber),
		customerBody(order),
	); err != nil {
		log.Printf("customer notification failed for order %s: %v", order.OrderNumber, err)
		firstErr = err
	}

	if err := d.sender.Send(ctx,
		OperatorRecipient,
		fmt.Sprintf("New Order - %s", order.OrderNumber),
		operatorBody(order),
	); err != nil {
		log.Printf("operator notification failed for order %s: %v", order.OrderNumber, err)
		if firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func customerBody(order *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order!\n\nOrder #%s\n\n", order.OrderNumber)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%d x %s (%s)\n", item.Quantity, item.BeerName, domain.ContainerSizeDisplay(item.ContainerSize))
	}
	fmt.Fprintf(&b, "\nTotal: $%s\n\nWe'll notify you when your order is ready.", order.TotalAmount.StringFixed(2))
	return b.String()
}

func operatorBody(order *domain.Order) string {
	return fmt.Sprintf(
		"New order received.\n\nOrder #%s\nCustomer: %s\nTotal: $%s\nItems: %d",
		order.OrderNumber,
		order.ProfileID,
		order.TotalAmount.StringFixed(2),
		len(order.Items),
	)
}
