// Package main はobsbotctlコマンドの実装です
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"obsbotctl/internal/cli"
	"obsbotctl/internal/config"
	"obsbotctl/internal/logging"
	"obsbotctl/internal/sdk"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Printf("設定の読み込みに失敗しました: %v", err)
		return cli.ExitFailure
	}

	logger := logging.Setup(cfg.Log, os.Stderr)
	defer logger.Close()

	// Ctrl-C でデバイス待機を中断する
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.New(cfg, sdk.NewCreator(),
		cli.WithOutput(os.Stdout, os.Stderr),
		cli.WithLogger(logger),
	)

	return app.Run(ctx, os.Args[1:])
}
