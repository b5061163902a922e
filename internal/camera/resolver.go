package camera

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"
)

// デバイス待機のデフォルト値（合計およそ10秒）
const (
	DefaultPollInterval  = 50 * time.Millisecond
	DefaultMaxAttempts   = 200
	DefaultProgressEvery = 20
)

// SleepFunc はポーリング間の待機を行う
type SleepFunc func(ctx context.Context, d time.Duration) error

// Resolver はシリアル番号（省略時は先頭デバイス）から初期化済みデバイスを解決する
//
// SDKによるUSB列挙はプロセス起動と非同期に進むため、
// 一定間隔・一定回数のポーリングで初期化完了を待つ。
type Resolver struct {
	registry Registry

	interval      time.Duration
	maxAttempts   int
	progressEvery int

	sleep    SleepFunc
	progress io.Writer
	logger   *log.Logger
}

// ResolverOption はResolverの設定を変更する
type ResolverOption func(*Resolver)

// WithPollInterval はポーリング間隔を設定する
func WithPollInterval(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.interval = d }
}

// WithMaxAttempts は最大試行回数を設定する
func WithMaxAttempts(n int) ResolverOption {
	return func(r *Resolver) { r.maxAttempts = n }
}

// WithProgressEvery は進捗表示の間隔（試行回数）を設定する
func WithProgressEvery(n int) ResolverOption {
	return func(r *Resolver) { r.progressEvery = n }
}

// WithSleep は待機関数を差し替える（テスト用）
func WithSleep(fn SleepFunc) ResolverOption {
	return func(r *Resolver) { r.sleep = fn }
}

// WithProgressWriter は進捗表示の出力先を設定する
func WithProgressWriter(w io.Writer) ResolverOption {
	return func(r *Resolver) { r.progress = w }
}

// WithLogger はデバッグログの出力先を設定する
func WithLogger(l *log.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver は新しいResolverを作成する
func NewResolver(registry Registry, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		registry:      registry,
		interval:      DefaultPollInterval,
		maxAttempts:   DefaultMaxAttempts,
		progressEvery: DefaultProgressEvery,
		sleep:         sleepContext,
		progress:      io.Discard,
		logger:        log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve は初期化済みデバイスが見つかるまでポーリングする
//
// 存在するが未初期化のデバイスは未検出として扱い、ポーリングを続ける。
// 試行回数を使い切るとErrDeviceNotFoundを返す。
func (r *Resolver) Resolve(ctx context.Context, serial string) (Device, error) {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		dev := r.lookup(serial)
		if dev != nil && dev.Initialized() {
			r.logger.Printf("デバイスを解決しました: serial=%q attempt=%d", dev.Serial(), attempt)
			return dev, nil
		}
		r.logger.Printf("デバイス待機中: serial=%q attempt=%d found=%t", serial, attempt, dev != nil)

		if attempt == r.maxAttempts {
			break
		}

		if r.progressEvery > 0 && attempt%r.progressEvery == 0 {
			elapsed := time.Duration(attempt) * r.interval
			fmt.Fprintf(r.progress, "Waiting for device... (%.1fs elapsed)\n", elapsed.Seconds())
		}

		if err := r.sleep(ctx, r.interval); err != nil {
			return nil, fmt.Errorf("デバイス待機が中断されました: %w", err)
		}
	}

	if serial != "" {
		return nil, fmt.Errorf("%w: serial %s (%d回試行)", ErrDeviceNotFound, serial, r.maxAttempts)
	}
	return nil, fmt.Errorf("%w: 初期化済みデバイスなし (%d回試行)", ErrDeviceNotFound, r.maxAttempts)
}

// lookup はレジストリを1回問い合わせる
func (r *Resolver) lookup(serial string) Device {
	if serial != "" {
		return r.registry.DeviceBySerial(serial)
	}

	if r.registry.DeviceCount() > 0 {
		return r.registry.DeviceByIndex(0)
	}

	return nil
}

// sleepContext はコンテキストのキャンセルを考慮して待機する
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
