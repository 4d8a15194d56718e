package utils

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
)

// CommonMetadataMiddleware stamps every handled message with the module
// that received it and guarantees a correlation ID is present before the
// handler runs.
func CommonMetadataMiddleware(module string) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			correlationID := middleware.MessageCorrelationID(msg)
			if correlationID == "" {
				correlationID = watermill.NewUUID()
				middleware.SetCorrelationID(correlationID, msg)
			}

			msg.Metadata.Set("handled_by", module)
			if msg.Metadata.Get("received_at") == "" {
				msg.Metadata.Set("received_at", time.Now().UTC().Format(time.RFC3339Nano))
			}

			msg.SetContext(attr.WithCorrelationID(msg.Context(), correlationID))

			producedMsgs, err := h(msg)
			if err != nil {
				return nil, err
			}

			for _, produced := range producedMsgs {
				if middleware.MessageCorrelationID(produced) == "" {
					middleware.SetCorrelationID(correlationID, produced)
				}
			}

			return producedMsgs, nil
		}
	}
}
