package interfaces

import (
	"context"

	"smsgate/internal/models"
)

// TransportInterface is the external collaborator that talks to the modem.
// Implementations handle the login handshake and payload parsing; the core
// never performs network I/O itself.
type TransportInterface interface {
	FetchMessages(ctx context.Context) ([]*models.Message, error)
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

type SchedulerInterface interface {
	Init()
	Stop()
}
