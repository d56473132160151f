package notify

import "context"

// OperatorRecipient routes a message to the brewery staff inbox instead of
// a customer profile.
const OperatorRecipient = "operator"

// Sender delivers one message. Recipients are profile identities (or
// OperatorRecipient); the downstream mailer owns address resolution.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
