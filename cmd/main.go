package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mask-labeler/config"
	telegram "mask-labeler/internal/api"
	app "mask-labeler/internal/application"
	"mask-labeler/internal/container"
	"mask-labeler/internal/domain/entity"
	"mask-labeler/internal/infrastructure/storage"
	"mask-labeler/internal/splitter"
)

func main() {
	quadArg := flag.String("quad", "", "crop by quadrilateral x0,y0,x1,y1,x2,y2,x3,y3 instead of splitting into patches")
	augment := flag.Bool("augment", false, "also write patches rotated by 90, 180 and 270 degrees")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-quad x0,y0,...,x3,y3] [-augment] files...\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Without files runs the Telegram bot (TELEGRAM_TOKEN is required).")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Создаём хранилища пользователей и сессий
	userRepo := storage.NewMemoryUserRepository()
	sessionRepo := storage.NewMemorySessionRepository()

	// Собираем сервисы приложения
	opts := app.LabelingOptions{
		MaskDir:   cfg.MaskDir,
		SplitDir:  cfg.SplitDir,
		BrushSize: cfg.BrushSize,
		Patches: splitter.Options{
			Size:            cfg.PatchSize,
			Stride:          cfg.Stride,
			Augment:         cfg.Augment || *augment,
			ContinueOnError: cfg.ContinueOnError,
		},
	}
	appContainer := container.New(userRepo, sessionRepo, container.SelectBackend(cfg.Backend), opts)
	log.Printf("Using %s backend", appContainer.Backend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flag.NArg() > 0 {
		if err := runBatch(ctx, appContainer.LabelingService, *quadArg, flag.Args()); err != nil {
			log.Fatalf("Batch failed: %v", err)
		}
		return
	}

	if cfg.TelegramToken == "" {
		flag.Usage()
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, cfg.WorkDir)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Println("Bot is running...")
	if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Bot error: %v", err)
	}
}

// runBatch режет или кропает каждый файл; первая ошибка останавливает обработку
func runBatch(ctx context.Context, svc *app.LabelingService, quadArg string, files []string) error {
	var quad *entity.Quad
	if quadArg != "" {
		q, err := telegram.ParseQuad(quadArg)
		if err != nil {
			return fmt.Errorf("parse -quad: %w", err)
		}
		quad = &q
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := processFile(ctx, svc, path, quad); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func processFile(ctx context.Context, svc *app.LabelingService, path string, quad *entity.Quad) error {
	doc, err := svc.Open(ctx, path)
	if err != nil {
		return err
	}
	defer doc.Close()

	if quad != nil {
		_, err = svc.Crop(ctx, doc, *quad)
		return err
	}
	_, err = svc.Split(ctx, doc)
	return err
}
