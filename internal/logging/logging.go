// Package logging はログ出力先の設定を担う
//
// 標準エラー出力に加えて、設定があればローテーション付きのログファイルにも書き込む。
package logging

import (
	"io"
	"log"
	"os"

	"obsbotctl/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

const prefix = "[obsbotctl] "

// Logger はアプリケーションのロガー一式
type Logger struct {
	// Info は通常のログ
	Info *log.Logger
	// Debug は verbose 有効時のみ出力されるログ
	Debug *log.Logger

	file io.Closer
}

// Setup は設定に従ってロガーを作成する
func Setup(cfg config.LogConfig, stderr io.Writer) *Logger {
	if stderr == nil {
		stderr = os.Stderr
	}

	l := &Logger{}
	out := stderr

	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		l.file = rotator
		out = io.MultiWriter(stderr, rotator)
	}

	l.Info = log.New(out, prefix, log.LstdFlags|log.Lmsgprefix)
	if cfg.Verbose {
		l.Debug = log.New(out, prefix+"DEBUG ", log.LstdFlags|log.Lmicroseconds|log.Lmsgprefix)
	} else {
		l.Debug = log.New(io.Discard, "", 0)
	}

	return l
}

// Discard は何も出力しないロガーを返す
func Discard() *Logger {
	return &Logger{
		Info:  log.New(io.Discard, "", 0),
		Debug: log.New(io.Discard, "", 0),
	}
}

// Close はログファイルを閉じる
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
