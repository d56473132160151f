package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	Recipient string
	Subject   string
	Body      string
}

type mockSender struct {
	Sent []sentMessage

	FailRecipients map[string]error
}

func (m *mockSender) Send(_ context.Context, recipient, subject, body string) error {
	if err, ok := m.FailRecipients[recipient]; ok {
		return err
	}
	m.Sent = append(m.Sent, sentMessage{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

var _ Sender = (*mockSender)(nil)

func testOrder() *domain.Order {
	return &domain.Order{
		ID:          uuid.New(),
		OrderNumber: "BB-TEST01-AB12",
		ProfileID:   "profile-123",
		Status:      domain.OrderStatusPending,
		Subtotal:    decimal.RequireFromString("380.00"),
		TaxAmount:   decimal.RequireFromString("19.00"),
		TotalAmount: decimal.RequireFromString("399.00"),
		Items: []domain.OrderItem{
			{BeerName: "West Coast IPA", ContainerSize: "50L", Quantity: 2},
			{BeerName: "Czech Pilsner", ContainerSize: "flat", Quantity: 2},
		},
	}
}

func TestNotify_SendsCustomerAndOperatorMessages(t *testing.T) {
	sender := &mockSender{}
	dispatcher := NewDispatcher(sender)

	require.NoError(t, dispatcher.Notify(context.Background(), testOrder()))
	require.Len(t, sender.Sent, 2)

	customer := sender.Sent[0]
	assert.Equal(t, "profile-123", customer.Recipient)
	assert.Equal(t, "Order Confirmation - BB-TEST01-AB12", customer.Subject)
	assert.Contains(t, customer.Body, "BB-TEST01-AB12")
	assert.Contains(t, customer.Body, "$399.00")
	assert.Contains(t, customer.Body, "2 x West Coast IPA (50L Keg)")
	assert.Contains(t, customer.Body, "2 x Czech Pilsner (24-Pack Flat)")

	operator := sender.Sent[1]
	assert.Equal(t, OperatorRecipient, operator.Recipient)
	assert.Equal(t, "New Order - BB-TEST01-AB12", operator.Subject)
	assert.Contains(t, operator.Body, "Customer: profile-123")
	assert.Contains(t, operator.Body, "Items: 2")
}

func TestNotify_CustomerFailureStillAlertsOperator(t *testing.T) {
	sendErr := errors.New("broker unavailable")
	sender := &mockSender{FailRecipients: map[string]error{"profile-123": sendErr}}
	dispatcher := NewDispatcher(sender)

	err := dispatcher.Notify(context.Background(), testOrder())
	assert.ErrorIs(t, err, sendErr)

	require.Len(t, sender.Sent, 1)
	assert.Equal(t, OperatorRecipient, sender.Sent[0].Recipient)
}

func TestNotify_OperatorFailureReturnsError(t *testing.T) {
	sendErr := errors.New("broker unavailable")
	sender := &mockSender{FailRecipients: map[string]error{OperatorRecipient: sendErr}}
	dispatcher := NewDispatcher(sender)

	err := dispatcher.Notify(context.Background(), testOrder())
	assert.ErrorIs(t, err, sendErr)

	require.Len(t, sender.Sent, 1)
	assert.Equal(t, "profile-123", sender.Sent[0].Recipient)
}
