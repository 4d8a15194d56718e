package awardhandlers

import (
	"github.com/ThreeDotsLabs/watermill/message"
)

// Handlers interface defines the methods that a set of award handlers should implement.
type Handlers interface {
	HandleAwardAllocationRequested(msg *message.Message) ([]*message.Message, error)
	HandleAwardFinalizeRequested(msg *message.Message) ([]*message.Message, error)
}
