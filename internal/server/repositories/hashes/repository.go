package hashes

import (
	"context"

	"github.com/shastore/shastore/internal/server/models"
)

// DefaultListLimit caps ListRecent when the caller does not supply a limit.
const DefaultListLimit = 50

type Repository interface {
	Insert(ctx context.Context, record *models.HashRecord) error
	ListRecent(ctx context.Context, limit int64) ([]models.HashRecord, error)
}
