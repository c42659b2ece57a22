package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/vua-solutions/vua/internal/models"
)

// DataStore defines the interface for persistent storage of users and
// conversations. Both PostgresStore and SQLiteStore implement this
// interface.
type DataStore interface {
	// Connection management
	Close()
	Ping(ctx context.Context) error

	// User operations
	GetOrCreateUser(ctx context.Context, phoneNumber string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id uuid.UUID, profile models.Profile) error

	// Conversation operations
	LatestConversation(ctx context.Context, userID uuid.UUID) (*models.Conversation, error)
	CreateConversation(ctx context.Context, userID uuid.UUID) (*models.Conversation, error)
	SetConversationSummary(ctx context.Context, id uuid.UUID, summary string) error
	SaveMessages(ctx context.Context, id uuid.UUID, messages []models.Message) error
}
