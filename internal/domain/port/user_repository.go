package port

import (
	"context"

	"mask-labeler/internal/domain/entity"
)

// UserRepository хранит состояние диалога с пользователями бота.
// Изменения пользователя видны другим вызовам только после Save.
type UserRepository interface {
	// Get возвращает пользователя по ID, создаёт нового в главном меню если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние и последнее изображение пользователя
	Save(ctx context.Context, user *entity.User) error
}
