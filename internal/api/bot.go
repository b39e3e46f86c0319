package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "mask-labeler/internal/application"
	"mask-labeler/internal/container"
	"mask-labeler/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я режу изображения деталей на патчи для обучения.

📸 Отправьте изображение, затем маску дефектов, и я разложу патчи по папкам defect и normal.

📋 Команды:
/split — нарезать изображение на патчи
/crop x0 y0 x1 y1 x2 y2 x3 y3 — выпрямить четырёхугольник
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ /split и изображение (лучше файлом, без сжатия)
2️⃣ Маска того же размера файлом: зелёный цвет помечает дефект
3️⃣ Или /skip, если маска уже лежит в каталоге масок

✂️ /crop x0 y0 x1 y1 x2 y2 x3 y3 — кроп последнего изображения по четырём точкам
(по часовой стрелке от левого верхнего угла)

📋 Команды:
/split — начать нарезку
/cancel — отменить операцию`

	msgAwaitingImage   = "📸 Отправьте изображение для нарезки."
	msgAwaitingMask    = "🎭 Отправьте маску файлом того же размера или /skip без маски."
	msgCancelled       = "❌ Операция отменена. Отправьте /split для новой нарезки."
	msgSendImage       = "📸 Сначала отправьте /split, затем изображение."
	msgSendMask        = "🎭 Маску нужно отправить файлом (документом)."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgNoImage         = "📭 Нет изображения. Отправьте /split и изображение."
	msgBadQuad         = "⚠️ Нужно восемь целых чисел: /crop x0 y0 x1 y1 x2 y2 x3 y3"
	msgProcessingError = "⚠️ Не удалось обработать изображение."
	msgMaskMismatch    = "⚠️ Размер маски не совпадает с размером изображения."
)

// Bot представляет Telegram-бота
type Bot struct {
	api      *tgbotapi.BotAPI
	users    *app.UserService
	labeling *app.LabelingService
	workDir  string
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, workDir string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:      api,
		users:    c.UserService,
		labeling: c.LabelingService,
		workDir:  workDir,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	switch user.State {
	case entity.StateAwaitingImage:
		if msg.Document != nil || len(msg.Photo) > 0 {
			b.handleImage(ctx, msg)
			return
		}
		b.sendMessage(msg.Chat.ID, msgAwaitingImage)
	case entity.StateAwaitingMask:
		if msg.Document != nil {
			b.handleMask(ctx, msg, user)
			return
		}
		b.sendMessage(msg.Chat.ID, msgSendMask)
	default:
		b.sendMessage(msg.Chat.ID, msgSendImage)
	}
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	switch msg.Command() {
	case "start":
		b.setState(ctx, msg, entity.StateMainMenu)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "split":
		b.setState(ctx, msg, entity.StateAwaitingImage)
		b.sendMessage(msg.Chat.ID, msgAwaitingImage)

	case "skip":
		if user.State != entity.StateAwaitingMask {
			b.sendMessage(msg.Chat.ID, msgUnknownCommand)
			return
		}
		b.split(ctx, msg.Chat.ID, user.Image, "")
		b.setState(ctx, msg, entity.StateMainMenu)

	case "crop":
		b.handleCrop(ctx, msg, user)

	case "cancel":
		b.setState(ctx, msg, entity.StateMainMenu)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handleImage сохраняет изображение в рабочий каталог пользователя
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message) {
	path, err := b.saveAttachment(msg, "")
	if err != nil {
		log.Printf("Error downloading image: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	if _, err := b.users.AcceptImage(ctx, msg.From.ID, msg.Chat.ID, path); err != nil {
		log.Printf("Error saving user: %v", err)
		return
	}
	b.sendMessage(msg.Chat.ID, msgAwaitingMask)
}

// handleMask скачивает маску и запускает нарезку
func (b *Bot) handleMask(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	maskPath, err := b.saveAttachment(msg, maskFilePrefix)
	if err != nil {
		log.Printf("Error downloading mask: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	b.split(ctx, msg.Chat.ID, user.Image, maskPath)
	b.setState(ctx, msg, entity.StateMainMenu)
}

// split открывает изображение, режет его на патчи и отправляет сводку
func (b *Bot) split(ctx context.Context, chatID int64, imagePath, maskPath string) {
	b.sendMessage(chatID, msgProcessing)

	var (
		doc *app.Document
		err error
	)
	if maskPath == "" {
		doc, err = b.labeling.Open(ctx, imagePath)
	} else {
		doc, err = b.labeling.OpenWithMask(ctx, imagePath, maskPath)
	}
	if err != nil {
		b.reportError(chatID, err)
		return
	}
	defer doc.Close()

	doc.Engine.SetAppMode(entity.ModeDrawing)
	out, err := b.labeling.Split(ctx, doc)
	if err != nil {
		b.reportError(chatID, err)
		return
	}

	result := out.Patches
	b.sendMessage(chatID, fmt.Sprintf("✅ Изображение %dx%d нарезано: %d патчей, дефектных %d, нормальных %d.",
		result.ImageWidth, result.ImageHeight, len(result.Patches), result.Defects, result.Normals))
}

// handleCrop делает перспективный кроп последнего изображения и отправляет его
func (b *Bot) handleCrop(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	if user.Image == "" {
		b.sendMessage(msg.Chat.ID, msgNoImage)
		return
	}

	quad, err := ParseQuad(msg.CommandArguments())
	if err != nil {
		b.sendMessage(msg.Chat.ID, msgBadQuad)
		return
	}

	doc, err := b.labeling.Open(ctx, user.Image)
	if err != nil {
		b.reportError(msg.Chat.ID, err)
		return
	}
	defer doc.Close()

	crop, err := b.labeling.Crop(ctx, doc, quad)
	if err != nil {
		b.reportError(msg.Chat.ID, err)
		return
	}

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FilePath(crop.Path))
	photo.Caption = fmt.Sprintf("✂️ Кроп %dx%d", crop.Width, crop.Height)
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending photo: %v", err)
	}
}

// Префикс файла маски, чтобы маска с тем же именем не затёрла изображение
const maskFilePrefix = "mask-"

// attachmentFile ID файла вложения и имя, под которым оно сохраняется
func attachmentFile(msg *tgbotapi.Message, prefix string) (fileID, name string, err error) {
	switch {
	case msg.Document != nil:
		fileID = msg.Document.FileID
		name = filepath.Base(msg.Document.FileName)
		if name == "." || name == string(filepath.Separator) {
			name = msg.Document.FileUniqueID + ".png"
		}
	case len(msg.Photo) > 0:
		// Получаем файл с максимальным разрешением
		photo := msg.Photo[len(msg.Photo)-1]
		fileID = photo.FileID
		name = photo.FileUniqueID + ".jpg"
	default:
		return "", "", errors.New("message has no attachment")
	}
	return fileID, prefix + name, nil
}

// saveAttachment скачивает фото или документ в WORK_DIR/<user>
func (b *Bot) saveAttachment(msg *tgbotapi.Message, prefix string) (string, error) {
	fileID, name, err := attachmentFile(msg, prefix)
	if err != nil {
		return "", err
	}

	data, err := b.downloadFile(fileID)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(b.workDir, strconv.FormatInt(msg.From.ID, 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %s: %v", entity.ErrDirectoryCreate, dir, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}
	return path, nil
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// reportError логирует ошибку и отправляет пользователю понятный текст
func (b *Bot) reportError(chatID int64, err error) {
	log.Printf("Error processing image: %v", err)
	if errors.Is(err, entity.ErrMaskSizeMismatch) {
		b.sendMessage(chatID, msgMaskMismatch)
		return
	}
	b.sendMessage(chatID, msgProcessingError)
}

func (b *Bot) setState(ctx context.Context, msg *tgbotapi.Message, state entity.UserState) {
	if _, err := b.users.SetState(ctx, msg.From.ID, msg.Chat.ID, state); err != nil {
		log.Printf("Error saving user: %v", err)
	}
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
