package institutionhandlers

import (
	"github.com/ThreeDotsLabs/watermill/message"
)

// Handlers interface defines the methods that a set of institution handlers should implement.
type Handlers interface {
	HandleInstitutionAllocationRequested(msg *message.Message) ([]*message.Message, error)
	HandleInstitutionFinalizeRequested(msg *message.Message) ([]*message.Message, error)
}
