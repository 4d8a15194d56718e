package rulesethandlers

import (
	"github.com/ThreeDotsLabs/watermill/message"
)

// Handlers interface defines the methods that a set of ruleset handlers should implement.
type Handlers interface {
	HandleRulesetUpsertRequested(msg *message.Message) ([]*message.Message, error)
	HandleCategoriesSaveRequested(msg *message.Message) ([]*message.Message, error)
	HandleGroupsSaveRequested(msg *message.Message) ([]*message.Message, error)
}
