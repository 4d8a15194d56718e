package rosterhandlers

import (
	"github.com/ThreeDotsLabs/watermill/message"
)

// Handlers interface defines the methods that a set of roster handlers should implement.
type Handlers interface {
	HandleRosterImportRequested(msg *message.Message) ([]*message.Message, error)
}
