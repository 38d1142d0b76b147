package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"eli5-bot/internal/cli"
	"eli5-bot/internal/config"
	"eli5-bot/internal/identity"
	"eli5-bot/internal/pkg/logger"
	"eli5-bot/internal/remote"
	"eli5-bot/internal/reply"

	"github.com/chzyer/readline"
)

func main() {
	cfg := config.Load()

	log := logger.NewIsolatedLogger(cfg.Client.LogFilePath)
	defer log.Sync()

	client := remote.NewClient(cfg.Client.ServerURL)

	generator, err := reply.Select(cfg, client)
	if err != nil {
		log.Error("MAIN", "Failed to configure reply generator", map[string]interface{}{"error": err})
		fmt.Fprintln(os.Stderr, "eli5:", err)
		os.Exit(1)
	}
	log.Info("MAIN", "Client started", map[string]interface{}{
		"server":     cfg.Client.ServerURL,
		"reply_mode": cfg.Client.ReplyMode,
		"generator":  fmt.Sprintf("%T", generator),
	})

	app := cli.NewApp(
		cfg,
		client,
		generator,
		identity.NewContext(identity.NewFileStore(cfg.Client.StateFile)),
		cli.NewPrinter(os.Stdout, readline.GetScreenWidth()),
		cli.NewSurveyPrompter(),
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		log.Error("MAIN", "Command failed", map[string]interface{}{"error": err})
		fmt.Fprintln(os.Stderr, "eli5:", err)
		os.Exit(1)
	}
}
