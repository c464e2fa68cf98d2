package repository

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/okian/arcade/internal/domain/model"
	"github.com/okian/arcade/pkg/metrics"
)

// Issued ids are the prefix followed by six digits in [idMin, idMin+idSpan).
const (
	idMin              = 100_000
	idSpan             = 900_000
	defaultIDPrefix    = "P"
	defaultMaxAttempts = 64
)

// MemoryStore keeps players in a map guarded by a RWMutex.
type MemoryStore struct {
	mu      sync.RWMutex
	players map[string]model.Player

	prefix      string
	intn        func(n int) int
	now         func() time.Time
	maxAttempts int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty registry.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		players:     make(map[string]model.Player),
		prefix:      defaultIDPrefix,
		intn:        rand.IntN,
		now:         time.Now,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Register(ctx context.Context, name, email, phone string) (model.Player, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		metrics.RecordErrorByComponent("repository", "invalid_input")
		return model.Player{}, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.nextIDLocked()
	if err != nil {
		metrics.RecordErrorByComponent("repository", "id_exhausted")
		return model.Player{}, err
	}

	p := model.Player{
		ID:           id,
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		RegisteredAt: s.now(),
	}
	s.players[id] = p
	metrics.UpdatePlayers(len(s.players))
	return p, nil
}

// nextIDLocked draws random ids until a free one is found. Callers hold s.mu.
func (s *MemoryStore) nextIDLocked() (string, error) {
	if len(s.players) >= idSpan {
		return "", ErrIDSpaceExhausted
	}
	for range s.maxAttempts {
		id := s.prefix + strconv.Itoa(idMin+s.intn(idSpan))
		if _, taken := s.players[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: no free id after %d attempts", ErrIDSpaceExhausted, s.maxAttempts)
}

func (s *MemoryStore) Get(_ context.Context, id string) (model.Player, error) {
	s.mu.RLock()
	p, ok := s.players[strings.TrimSpace(id)]
	s.mu.RUnlock()
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Player{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) Name(_ context.Context, id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	return p.Name, ok
}

// Authenticate matches the email case-insensitively and the id exactly.
func (s *MemoryStore) Authenticate(_ context.Context, email, id string) (model.Player, error) {
	email = strings.TrimSpace(email)
	id = strings.TrimSpace(id)
	if email == "" || id == "" {
		return model.Player{}, fmt.Errorf("%w: email and player id are required", ErrInvalidInput)
	}

	s.mu.RLock()
	p, ok := s.players[id]
	s.mu.RUnlock()
	if !ok || !strings.EqualFold(p.Email, email) {
		metrics.RecordErrorByComponent("repository", "invalid_credentials")
		return model.Player{}, ErrInvalidCredentials
	}
	return p, nil
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}
