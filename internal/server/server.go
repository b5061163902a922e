package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"obsbotctl/internal/camera"
	"obsbotctl/internal/config"

	"github.com/gin-gonic/gin"
)

// writeTimeoutMargin はデバイス待機後の制御呼び出しと応答に見込む時間
const writeTimeoutMargin = 5 * time.Second

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	httpServer *http.Server
	engine     *gin.Engine
	handler    *Handler
	logger     *log.Logger
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config, controller *camera.Controller, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), accessLog(logger))

	s := &Server{
		config:  cfg,
		engine:  engine,
		handler: &Handler{controller: controller, logger: logger},
		logger:  logger,
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: writeTimeout(cfg),
		},
	}
	s.setupRoutes()

	return s
}

// writeTimeout は書き込みタイムアウトを返す
// デバイス待機中に応答が打ち切られないよう、待機上限に余裕を足した値を下限とする
func writeTimeout(cfg *config.Config) time.Duration {
	timeout := cfg.Server.WriteTimeout
	if timeout == 0 {
		// 0はタイムアウトなし
		return 0
	}
	if minimum := cfg.DiscoveryTimeout() + writeTimeoutMargin; timeout < minimum {
		return minimum
	}
	return timeout
}

// setupRoutes はHTTPルートを設定する
func (s *Server) setupRoutes() {
	// ヘルスチェックエンドポイント
	s.engine.GET("/health", s.handler.HealthCheck)

	// APIエンドポイント
	api := s.engine.Group("/api")
	api.GET("/devices", s.handler.ListDevices)
	api.GET("/device", s.handler.GetDevice)

	device := api.Group("/device")
	device.PUT("/mode", s.handler.SetMode)
	device.PUT("/framing", s.handler.SetFraming)
	device.PUT("/hdr", s.handler.SetHDR)
	device.PUT("/image", s.handler.SetImage)
	device.PUT("/camera", s.handler.SetCamera)
	device.POST("/reset", s.handler.Reset)
}

// Handler はルーティング済みのhttp.Handlerを返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start はサーバーを起動する
func (s *Server) Start(ctx context.Context) error {
	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		s.logger.Printf("HTTPサーバーを起動しています: %s", s.config.ServerAddress())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownCh <- fmt.Errorf("サーバーの起動に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		s.logger.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		s.logger.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	s.logger.Println("サーバーをシャットダウンしています...")

	// 5秒のタイムアウトを設定
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	s.logger.Println("サーバーが正常にシャットダウンされました")
	return nil
}
