package history

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/krishigpt/server/internal/advisor/model"
	"github.com/krishigpt/server/internal/metrics"
	logx "github.com/krishigpt/server/pkg/logger"
	"github.com/cloudwego/eino/schema"
)

// MaxTurns caps stored history at the most recent 20 turns (10 exchanges).
const MaxTurns = 20

// Backend is the durable side of the store. Any error from any operation
// marks the backend unavailable for the remainder of the process.
type Backend interface {
	Load(ctx context.Context, userID string) ([]*schema.Message, bool, error)
	Save(ctx context.Context, userID string, msgs []*schema.Message) error
	Delete(ctx context.Context, userID string) error
}

// Store keeps per-user conversation turns in a durable backend, falling
// back permanently to process memory on the first backend failure. The
// trade is availability over durability: conversations keep working, but
// degraded history is lost on restart and not shared across instances.
//
// There is no per-user serialization. Two concurrent Appends for the same
// user race read-modify-write and the last write wins; the mutex below
// only guards map integrity.
type Store struct {
	backend  Backend
	maxTurns int

	once     sync.Once
	degraded atomic.Bool

	mu  sync.Mutex
	mem map[string][]*schema.Message
}

func New(backend Backend, maxTurns int) *Store {
	if maxTurns <= 0 {
		maxTurns = MaxTurns
	}
	s := &Store{
		backend:  backend,
		maxTurns: maxTurns,
		mem:      make(map[string][]*schema.Message),
	}
	if backend == nil {
		s.downgrade(nil)
	}
	return s
}

// Degraded reports whether the durable backend has been abandoned.
func (s *Store) Degraded() bool {
	return s.degraded.Load()
}

// downgrade switches the store to memory-only mode. One-way and
// idempotent: concurrent failures all funnel through the same Once.
func (s *Store) downgrade(err error) {
	s.once.Do(func() {
		s.degraded.Store(true)
		metrics.HistoryDegraded.Set(1)
		if err != nil {
			logx.Warn().Err(err).Msg("conversation backend unavailable, degrading history to in-process memory")
		} else {
			logx.Warn().Msg("no conversation backend configured, history held in process memory only")
		}
	})
}

// History returns the user's stored turns, oldest first. Backend failures
// degrade the store and yield whatever memory holds (initially nothing).
func (s *Store) History(ctx context.Context, userID string) []*schema.Message {
	if !s.degraded.Load() {
		msgs, ok, err := s.backend.Load(ctx, userID)
		if err == nil {
			if !ok {
				return nil
			}
			return msgs
		}
		s.downgrade(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.mem[userID]
	out := make([]*schema.Message, len(stored))
	copy(out, stored)
	return out
}

// Append stores new turns for the user, trimming to the most recent
// maxTurns before persisting. On backend failure the trimmed history,
// including the turns being appended, moves to memory so the in-flight
// conversation survives the transition.
func (s *Store) Append(ctx context.Context, userID string, turns ...*schema.Message) {
	if len(turns) == 0 {
		return
	}

	current := s.History(ctx, userID)
	merged := trimTail(append(current, turns...), s.maxTurns)

	if !s.degraded.Load() {
		err := s.backend.Save(ctx, userID, merged)
		if err == nil {
			return
		}
		s.downgrade(err)
	}

	s.mu.Lock()
	s.mem[userID] = merged
	s.mu.Unlock()
}

// Clear removes all history for the user on whichever side is active.
func (s *Store) Clear(ctx context.Context, userID string) {
	if !s.degraded.Load() {
		if err := s.backend.Delete(ctx, userID); err != nil {
			s.downgrade(err)
		}
	}

	s.mu.Lock()
	delete(s.mem, userID)
	s.mu.Unlock()
}

func trimTail(msgs []*schema.Message, max int) []*schema.Message {
	if len(msgs) <= max {
		result := make([]*schema.Message, len(msgs))
		copy(result, msgs)
		return result
	}
	source := msgs[len(msgs)-max:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}

var _ model.ConversationStore = (*Store)(nil)
