package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vua-solutions/vua/internal/models"
)

// SQLiteStore handles SQLite database operations. It is the default
// store when no DATABASE_URL is configured.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
// If dbPath is empty, defaults to "./data/vua.db".
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = "./data/vua.db"
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

// initSchema creates tables if they don't exist.
func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		phone_number TEXT UNIQUE NOT NULL,
		profile TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		messages TEXT NOT NULL DEFAULT '[]',
		summary TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_users_phone_number ON users(phone_number);
	CREATE INDEX IF NOT EXISTS idx_conversations_user_created
		ON conversations(user_id, created_at);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() {
	s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetOrCreateUser looks a user up by phone number, creating one with an
// empty profile on first contact.
func (s *SQLiteStore) GetOrCreateUser(ctx context.Context, phoneNumber string) (*models.User, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO users (id, phone_number, created_at)
		VALUES (?, ?, ?)
	`, uuid.New().String(), phoneNumber, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return s.GetUserByPhone(ctx, phoneNumber)
}

// GetUserByPhone retrieves a user by phone number. Returns nil if the
// user does not exist.
func (s *SQLiteStore) GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	user := &models.User{}
	var idStr, profile string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, phone_number, profile, created_at
		FROM users WHERE phone_number = ?
	`, phoneNumber).Scan(
		&idStr,
		&user.PhoneNumber,
		&profile,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	user.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(profile), &user.Profile); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserProfile persists the full merged profile for a user.
func (s *SQLiteStore) UpdateUserProfile(ctx context.Context, id uuid.UUID, profile models.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE users SET profile = ? WHERE id = ?
	`, string(data), id.String())
	return err
}

// LatestConversation retrieves the most recent conversation for a user,
// by creation time descending. Returns nil if the user has none.
func (s *SQLiteStore) LatestConversation(ctx context.Context, userID uuid.UUID) (*models.Conversation, error) {
	conv := &models.Conversation{}
	var idStr, uidStr, messages string
	var summary sql.NullString
	var updatedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, messages, summary, created_at, updated_at
		FROM conversations
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, userID.String()).Scan(
		&idStr,
		&uidStr,
		&messages,
		&summary,
		&conv.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if conv.ID, err = uuid.Parse(idStr); err != nil {
		return nil, err
	}
	if conv.UserID, err = uuid.Parse(uidStr); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(messages), &conv.Messages); err != nil {
		return nil, err
	}
	if summary.Valid {
		conv.Summary = summary.String
	}
	if updatedAt.Valid {
		conv.UpdatedAt = &updatedAt.Time
	}
	return conv, nil
}

// CreateConversation creates a new empty conversation for a user.
func (s *SQLiteStore) CreateConversation(ctx context.Context, userID uuid.UUID) (*models.Conversation, error) {
	id := uuid.New()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, user_id, created_at)
		VALUES (?, ?, ?)
	`, id.String(), userID.String(), now)
	if err != nil {
		return nil, err
	}
	return &models.Conversation{
		ID:        id,
		UserID:    userID,
		Messages:  []models.Message{},
		CreatedAt: now,
	}, nil
}

// SetConversationSummary caches a computed summary on a conversation.
func (s *SQLiteStore) SetConversationSummary(ctx context.Context, id uuid.UUID, summary string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE conversations SET summary = ?, updated_at = ? WHERE id = ?
	`, summary, time.Now().UTC(), id.String())
	return err
}

// SaveMessages writes a conversation's full transcript in a single
// statement, so a turn's user and assistant messages land together or
// not at all.
func (s *SQLiteStore) SaveMessages(ctx context.Context, id uuid.UUID, messages []models.Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE conversations SET messages = ?, updated_at = ? WHERE id = ?
	`, string(data), time.Now().UTC(), id.String())
	return err
}
