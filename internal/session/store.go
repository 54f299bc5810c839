package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/plastinin/pdfcheck-web/internal/widget"
	"go.uber.org/zap"
)

// Factory создаёт виджет для новой сессии
type Factory func() *widget.Widget

type entry struct {
	widget       *widget.Widget
	lastAccessed time.Time
}

// Store хранит виджеты по идентификатору сессии в памяти процесса
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	factory  Factory
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewStore создаёт новое хранилище сессий
func NewStore(factory Factory, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.Named("session"),
	}
}

// Get возвращает виджет сессии. Для пустого или неизвестного id создаётся новая сессия,
// новый id возвращается вторым значением.
func (s *Store) Get(id string) (string, *widget.Widget) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if e, ok := s.sessions[id]; ok && id != "" {
		e.lastAccessed = now
		return id, e.widget
	}

	id = uuid.New().String()
	e := &entry{
		widget:       s.factory(),
		lastAccessed: now,
	}
	s.sessions[id] = e

	s.logger.Debug("Session created", zap.String("session_id", id))

	return id, e.widget
}

// Len возвращает количество активных сессий
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup удаляет сессии, к которым не обращались дольше ttl.
// Сессии с незавершённой загрузкой не удаляются.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, e := range s.sessions {
		if e.lastAccessed.After(cutoff) {
			continue
		}
		if e.widget.State().Uploading {
			continue
		}
		delete(s.sessions, id)
		removed++
	}

	if removed > 0 {
		s.logger.Debug("Expired sessions removed",
			zap.Int("removed", removed),
			zap.Int("active", len(s.sessions)),
		)
	}
	return removed
}

// Run периодически вызывает Cleanup до отмены контекста
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Cleanup()
		}
	}
}
