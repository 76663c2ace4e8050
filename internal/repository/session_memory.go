package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/apprentice-bingo/internal/apperror"
	"github.com/rocketscienceinc/apprentice-bingo/internal/entity"
)

// memorySession keeps encoded sessions in a map. State is lost on restart.
type memorySession struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySession{sessions: make(map[string][]byte)}
}

// Save stores the encoded form so later mutations of session do not leak in.
func (that *memorySession) Save(_ context.Context, key string, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()
	that.sessions[key] = data

	return nil
}

func (that *memorySession) Load(_ context.Context, key string) (*entity.Session, error) {
	that.mu.RLock()
	data, ok := that.sessions[key]
	that.mu.RUnlock()

	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return decodeSession(data)
}

func (that *memorySession) Delete(_ context.Context, key string) error {
	that.mu.Lock()
	defer that.mu.Unlock()
	delete(that.sessions, key)

	return nil
}
