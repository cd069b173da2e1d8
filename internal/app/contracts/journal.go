package contracts

import (
	"context"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/models"
)

// MessageJournal keeps a copy of every inbound HL7 v2 message and its ACK.
type MessageJournal interface {
	Record(ctx context.Context, entry *models.HL7Message) error
	FindByControlID(ctx context.Context, controlID string) ([]models.HL7Message, error)
}
