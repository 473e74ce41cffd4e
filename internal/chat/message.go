package chat

import (
	"crypto/rand"
	"encoding/hex"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// PendingAction is the single outstanding question the assistant is waiting
// on. It gates which resolver call is valid: a resolver invoked while its
// action is not live must be a no-op.
type PendingAction string

const (
	PendingNone               PendingAction = ""
	AwaitingShopChoice        PendingAction = "shopChoice"
	AwaitingBedtimeChoice     PendingAction = "bedtimeChoice"
	AwaitingOutingChoice      PendingAction = "outingChoice"
	AwaitingDialChoice        PendingAction = "dialChoice"
	AwaitingMedicineAck       PendingAction = "medicineAck"
	AwaitingHomeCheck         PendingAction = "homeCheck"
	AwaitingReminderChoice    PendingAction = "reminderChoice"
	AwaitingOutingConfirmation PendingAction = "outingConfirmation"
	AwaitingInstructions      PendingAction = "instructions"
)

// Message is one transcript entry. Content is fixed when the message is
// created; the presentation layer may reveal it progressively and flips
// Completed once fully shown, but that never feeds back into dispatch.
type Message struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Role      Role          `json:"role"`
	Pending   PendingAction `json:"pending,omitempty"`
	Completed bool          `json:"completed"`
}

func newMessage(content string, role Role, pending PendingAction) Message {
	return Message{
		ID:      newMessageID(),
		Content: content,
		Role:    role,
		Pending: pending,
	}
}

func newMessageID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
