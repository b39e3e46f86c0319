package port

import (
	"context"

	"mask-labeler/internal/domain/entity"
)

// SessionRepository интерфейс хранилища состояний просмотра файлов
type SessionRepository interface {
	// Get возвращает сессию по пути, создаёт новую если не найдена
	Get(ctx context.Context, path string) (*entity.Session, error)

	// Save сохраняет сессию
	Save(ctx context.Context, session *entity.Session) error
}
