package storage

import (
	"context"
	"sync"

	"mask-labeler/internal/domain/entity"
	"mask-labeler/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище диалогов бота.
// Отдаёт и принимает копии, поэтому обработчики разных сообщений не делят одного пользователя.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[int64]*entity.User
}

// NewMemoryUserRepository создаёт новое in-memory хранилище
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]*entity.User),
	}
}

// Get возвращает копию пользователя, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.RLock()
	user, exists := r.users[userID]
	r.mu.RUnlock()

	if exists {
		copied := *user
		return &copied, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Пользователь мог появиться, пока блокировка была снята
	if user, exists := r.users[userID]; exists {
		copied := *user
		return &copied, nil
	}
	user = entity.NewUser(userID, chatID)
	r.users[userID] = user
	copied := *user
	return &copied, nil
}

// Save сохраняет копию пользователя
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	copied := *user

	r.mu.Lock()
	r.users[user.ID] = &copied
	r.mu.Unlock()

	return nil
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
