package storage

import (
	"context"
	"sync"

	"mask-labeler/internal/domain/entity"
	"mask-labeler/internal/domain/port"
)

// MemorySessionRepository in-memory хранилище настроек просмотра файлов
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

// NewMemorySessionRepository создаёт новое in-memory хранилище
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*entity.Session),
	}
}

// Get возвращает копию сессии по пути, создаёт новую если не найдена
func (r *MemorySessionRepository) Get(ctx context.Context, path string) (*entity.Session, error) {
	r.mu.RLock()
	session, exists := r.sessions[path]
	r.mu.RUnlock()

	if exists {
		copied := *session
		return &copied, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Другой вызов мог успеть создать сессию
	if session, exists := r.sessions[path]; exists {
		copied := *session
		return &copied, nil
	}
	session = entity.NewSession(path)
	r.sessions[path] = session
	copied := *session
	return &copied, nil
}

// Save сохраняет сессию
func (r *MemorySessionRepository) Save(ctx context.Context, session *entity.Session) error {
	copied := *session

	r.mu.Lock()
	r.sessions[session.Path] = &copied
	r.mu.Unlock()

	return nil
}

// Проверка реализации интерфейса
var _ port.SessionRepository = (*MemorySessionRepository)(nil)
