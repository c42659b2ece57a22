// Package chat owns the turn pipeline: load user state, retrieve
// context, resolve the conversation summary, build the prompt, generate
// a reply and persist the updated transcript.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/vua-solutions/vua/internal/metrics"
	"github.com/vua-solutions/vua/internal/models"
	"github.com/vua-solutions/vua/internal/prompt"
	"github.com/vua-solutions/vua/internal/retrieval"
	"github.com/vua-solutions/vua/internal/store"
)

const retrievalTopK = 3

// Channel labels for inbound transports.
const (
	ChannelAPI = "api"
	ChannelSMS = "sms"
)

// Generator produces a reply for an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Summarizer condenses a transcript into one short summary string.
type Summarizer interface {
	Summarize(ctx context.Context, messages []models.Message) (string, error)
}

// Service wires the stores and external collaborators into the
// end-to-end turn pipeline.
type Service struct {
	store      store.DataStore
	retriever  retrieval.Retriever
	generator  Generator
	summarizer Summarizer
	logger     zerolog.Logger

	// One lock per phone number so concurrent turns for the same user
	// cannot interleave the transcript read-modify-write. Turns for
	// different users run in parallel.
	mu    sync.Mutex
	locks map[string]*userLock
}

// userLock is a refcounted mutex; the map entry is dropped once no turn
// holds or waits for it, so the map stays bounded by concurrent users
// rather than every number ever seen.
type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewService creates a chat service.
func NewService(ds store.DataStore, r retrieval.Retriever, g Generator, s Summarizer, logger zerolog.Logger) *Service {
	return &Service{
		store:      ds,
		retriever:  r,
		generator:  g,
		summarizer: s,
		logger:     logger,
		locks:      make(map[string]*userLock),
	}
}

// lockUser serializes processing for one phone number and returns the
// matching unlock.
func (s *Service) lockUser(phoneNumber string) func() {
	s.mu.Lock()
	l, ok := s.locks[phoneNumber]
	if !ok {
		l = &userLock{}
		s.locks[phoneNumber] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, phoneNumber)
		}
		s.mu.Unlock()
	}
}

// Respond runs one full turn for a user message and returns the reply
// text. The channel label is only used for metrics.
func (s *Service) Respond(ctx context.Context, phoneNumber, message, channel string) (string, error) {
	unlock := s.lockUser(phoneNumber)
	defer unlock()

	user, err := s.store.GetOrCreateUser(ctx, phoneNumber)
	if err != nil {
		return "", fmt.Errorf("resolve user: %w", err)
	}

	conv, err := s.store.LatestConversation(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("load conversation: %w", err)
	}
	if conv == nil {
		conv, err = s.store.CreateConversation(ctx, user.ID)
		if err != nil {
			return "", fmt.Errorf("create conversation: %w", err)
		}
	}

	// Append in memory; nothing is persisted until the reply exists.
	conv.Messages = append(conv.Messages, newMessage(models.RoleUser, message))

	contextText, err := s.retrieveContext(ctx, message, user.Profile)
	if err != nil {
		return "", err
	}

	summary, err := s.resolveSummary(ctx, conv)
	if err != nil {
		return "", err
	}

	p := prompt.Build(contextText, user.Profile.JSON(), summary, message)

	genStart := time.Now()
	reply, err := s.generator.Generate(ctx, p)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	metrics.GenerationLatency.Observe(time.Since(genStart).Seconds())

	conv.Messages = append(conv.Messages, newMessage(models.RoleAssistant, reply))
	if err := s.store.SaveMessages(ctx, conv.ID, conv.Messages); err != nil {
		return "", fmt.Errorf("persist transcript: %w", err)
	}

	metrics.TurnsTotal.WithLabelValues(channel).Inc()
	s.logger.Info().
		Str("phone", phoneNumber).
		Str("conversation", conv.ID.String()).
		Int("transcript_len", len(conv.Messages)).
		Msg("turn completed")

	return reply, nil
}

// UpdateProfile merges partial attributes into a user's profile: new
// keys are added, existing keys overwritten, nothing is removed.
func (s *Service) UpdateProfile(ctx context.Context, phoneNumber string, partial models.Profile) error {
	unlock := s.lockUser(phoneNumber)
	defer unlock()

	user, err := s.store.GetOrCreateUser(ctx, phoneNumber)
	if err != nil {
		return fmt.Errorf("resolve user: %w", err)
	}

	if user.Profile == nil {
		user.Profile = models.Profile{}
	}
	for k, v := range partial {
		user.Profile[k] = v
	}

	if err := s.store.UpdateUserProfile(ctx, user.ID, user.Profile); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}
	return nil
}

// retrieveContext runs the personalized similarity search and keeps
// only passages above the relevance threshold.
func (s *Service) retrieveContext(ctx context.Context, message string, profile models.Profile) (string, error) {
	query := retrieval.BuildQuery(message, profile)

	start := time.Now()
	passages, err := s.retriever.Retrieve(ctx, query, retrievalTopK)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}
	metrics.RetrievalLatency.Observe(time.Since(start).Seconds())

	kept := 0
	for _, p := range passages {
		if p.Score > retrieval.RelevanceThreshold {
			kept++
		}
	}
	metrics.PassagesKept.Observe(float64(kept))

	return retrieval.JoinContext(passages, retrieval.RelevanceThreshold), nil
}

// resolveSummary returns the conversation's cached summary, computing
// and persisting it first if it has never been computed. The cache is
// monotonic: once set it is reused unchanged for every later turn.
func (s *Service) resolveSummary(ctx context.Context, conv *models.Conversation) (string, error) {
	if conv.Summary != "" {
		return conv.Summary, nil
	}

	summary, err := s.summarizer.Summarize(ctx, conv.Messages)
	if err != nil {
		return "", fmt.Errorf("summarize conversation: %w", err)
	}

	if err := s.store.SetConversationSummary(ctx, conv.ID, summary); err != nil {
		return "", fmt.Errorf("persist summary: %w", err)
	}
	conv.Summary = summary
	metrics.SummariesComputed.Inc()

	return summary, nil
}

func newMessage(role, content string) models.Message {
	return models.Message{
		ID:        ulid.Make().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
	}
}
