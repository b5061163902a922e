// Package main はobsbotctl制御デーモンの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"obsbotctl/internal/camera"
	"obsbotctl/internal/config"
	"obsbotctl/internal/logging"
	"obsbotctl/internal/sdk"
	"obsbotctl/internal/server"
)

func main() {
	// コマンドラインオプション
	var (
		host = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port = flag.Int("port", 0, "サーバーのポート (デフォルト: 8080)")
		help = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("obsbotctl 制御デーモン")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗しました: %v\n", err)
		os.Exit(1)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger := logging.Setup(cfg.Log, os.Stderr)
	if err := serve(cfg, logger); err != nil {
		logger.Info.Printf("サーバーの起動に失敗しました: %v", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

func serve(cfg *config.Config, logger *logging.Logger) error {
	// SDKのレジストリはデーモンの生存期間中保持する
	registry, err := sdk.NewCreator().CreateRegistry()
	if err != nil {
		return err
	}

	resolver := camera.NewResolver(registry,
		camera.WithPollInterval(cfg.Discovery.PollInterval),
		camera.WithMaxAttempts(cfg.Discovery.MaxAttempts),
		camera.WithProgressEvery(cfg.Discovery.ProgressEvery),
		camera.WithLogger(logger.Debug),
	)
	controller := camera.NewController(registry, resolver)
	controller.SetLogger(logger.Debug)

	srv := server.New(cfg, controller, logger.Info)

	logger.Info.Printf("obsbotctl 制御デーモンを起動します: %s", cfg.ServerAddress())
	return srv.Start(context.Background())
}
