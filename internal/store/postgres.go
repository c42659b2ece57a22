package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vua-solutions/vua/internal/models"
)

// PostgresStore handles PostgreSQL database operations.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL store with a connection pool.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// RunMigrations creates the schema if it does not exist.
func RunMigrations(ctx context.Context, databaseURL string) error {
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		phone_number TEXT UNIQUE NOT NULL,
		profile JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS conversations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id),
		messages JSONB NOT NULL DEFAULT '[]',
		summary TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);

	CREATE INDEX IF NOT EXISTS idx_users_phone_number ON users(phone_number);
	CREATE INDEX IF NOT EXISTS idx_conversations_user_created
		ON conversations(user_id, created_at DESC);
	`

	_, err = conn.Exec(ctx, schema)
	return err
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// GetOrCreateUser looks a user up by phone number, creating one with an
// empty profile on first contact. The upsert makes repeated calls for
// the same number return the same row.
func (s *PostgresStore) GetOrCreateUser(ctx context.Context, phoneNumber string) (*models.User, error) {
	user := &models.User{}
	var profile []byte
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (phone_number)
		VALUES ($1)
		ON CONFLICT (phone_number) DO UPDATE SET phone_number = EXCLUDED.phone_number
		RETURNING id, phone_number, profile, created_at
	`, phoneNumber).Scan(
		&user.ID,
		&user.PhoneNumber,
		&profile,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(profile, &user.Profile); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByPhone retrieves a user by phone number. Returns nil if the
// user does not exist.
func (s *PostgresStore) GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	user := &models.User{}
	var profile []byte
	err := s.pool.QueryRow(ctx, `
		SELECT id, phone_number, profile, created_at
		FROM users WHERE phone_number = $1
	`, phoneNumber).Scan(
		&user.ID,
		&user.PhoneNumber,
		&profile,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(profile, &user.Profile); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserProfile persists the full merged profile for a user.
func (s *PostgresStore) UpdateUserProfile(ctx context.Context, id uuid.UUID, profile models.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		UPDATE users SET profile = $2 WHERE id = $1
	`, id, data)
	return err
}

// LatestConversation retrieves the most recent conversation for a user,
// by creation time descending. Returns nil if the user has none.
func (s *PostgresStore) LatestConversation(ctx context.Context, userID uuid.UUID) (*models.Conversation, error) {
	conv := &models.Conversation{}
	var messages []byte
	var summary *string
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, messages, summary, created_at, updated_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID).Scan(
		&conv.ID,
		&conv.UserID,
		&messages,
		&summary,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(messages, &conv.Messages); err != nil {
		return nil, err
	}
	if summary != nil {
		conv.Summary = *summary
	}
	return conv, nil
}

// CreateConversation creates a new empty conversation for a user.
func (s *PostgresStore) CreateConversation(ctx context.Context, userID uuid.UUID) (*models.Conversation, error) {
	conv := &models.Conversation{Messages: []models.Message{}}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO conversations (user_id)
		VALUES ($1)
		RETURNING id, user_id, created_at
	`, userID).Scan(
		&conv.ID,
		&conv.UserID,
		&conv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// SetConversationSummary caches a computed summary on a conversation.
func (s *PostgresStore) SetConversationSummary(ctx context.Context, id uuid.UUID, summary string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE conversations SET summary = $2, updated_at = NOW() WHERE id = $1
	`, id, summary)
	return err
}

// SaveMessages writes a conversation's full transcript in a single
// statement, so a turn's user and assistant messages land together or
// not at all.
func (s *PostgresStore) SaveMessages(ctx context.Context, id uuid.UUID, messages []models.Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		UPDATE conversations SET messages = $2, updated_at = NOW() WHERE id = $1
	`, id, data)
	return err
}
