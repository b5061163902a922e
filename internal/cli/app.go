// Package cli はコマンドライン操作（サブコマンド解析・結果出力・対話シェル）を担う
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"obsbotctl/internal/camera"
	"obsbotctl/internal/config"
	"obsbotctl/internal/logging"
)

// Version はビルド時に -ldflags で上書きできる
var Version = "0.1.0"

// 終了コード
const (
	ExitSuccess = 0
	ExitFailure = 1 // デバイスなし・SDK呼び出し失敗
	ExitUsage   = 2 // 引数エラー
)

// App はCLIアプリケーション
type App struct {
	cfg     *config.Config
	creator camera.RegistryCreator
	logger  *logging.Logger

	stdout io.Writer
	stderr io.Writer

	// 対話シェル用の入力（テストで差し替える）
	newLineReader func(prompt string, stdout, stderr io.Writer) (LineReader, error)

	controller *camera.Controller
}

// Option はAppの設定を変更する
type Option func(*App)

// WithOutput は出力先を設定する
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// WithLogger はロガーを設定する
func WithLogger(l *logging.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithLineReader は対話シェルの入力を差し替える
func WithLineReader(fn func(prompt string, stdout, stderr io.Writer) (LineReader, error)) Option {
	return func(a *App) { a.newLineReader = fn }
}

// New は新しいAppを作成する
// レジストリはデバイス操作が必要になるまで開かない
func New(cfg *config.Config, creator camera.RegistryCreator, opts ...Option) *App {
	a := &App{
		cfg:           cfg,
		creator:       camera.NewSharedRegistryCreator(creator),
		logger:        logging.Discard(),
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		newLineReader: newReadlineReader,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run は引数を解析してサブコマンドを実行し、終了コードを返す
func (a *App) Run(ctx context.Context, args []string) int {
	cmd, err := Parse(args, a.stderr)
	if err != nil {
		if errors.Is(err, errHelp) {
			return ExitSuccess
		}
		a.reporter().Error(err)
		if len(args) == 0 {
			printUsage(a.stderr)
		}
		return ExitUsage
	}

	return a.Execute(ctx, cmd)
}

// Execute は解析済みのサブコマンドを実行する
func (a *App) Execute(ctx context.Context, cmd *Command) int {
	switch cmd.Name {
	case CmdHelp:
		printUsage(a.stdout)
		return ExitSuccess
	case CmdVersion:
		fmt.Fprintf(a.stdout, "obsbotctl version %s\n", Version)
		return ExitSuccess
	case CmdShell:
		return a.runShell(ctx, cmd.Serial)
	}

	controller, err := a.getController()
	if err != nil {
		a.reporter().Error(err)
		return ExitFailure
	}

	serial := cmd.Serial
	if serial == "" {
		serial = a.cfg.Device.Serial
	}

	a.logger.Debug.Printf("コマンドを実行します: %s serial=%q", cmd.Name, serial)

	rep := a.reporter()
	var acks []camera.Ack

	switch cmd.Name {
	case CmdList:
		if err := rep.List(controller.List(ctx), cmd.Format); err != nil {
			rep.Error(err)
			return ExitFailure
		}
		return ExitSuccess
	case CmdInfo:
		info, err := controller.Info(ctx, serial)
		if err != nil {
			return a.failure(err)
		}
		if err := rep.Info(info, cmd.Format); err != nil {
			rep.Error(err)
			return ExitFailure
		}
		return ExitSuccess
	case CmdMode:
		acks, err = controller.SetMode(ctx, serial, cmd.Mode)
	case CmdFraming:
		acks, err = controller.SetFraming(ctx, serial, cmd.Framing)
	case CmdHDR:
		acks, err = controller.SetHDR(ctx, serial, cmd.HDR)
	case CmdImage:
		acks, err = controller.ApplyImage(ctx, serial, cmd.Image)
	case CmdCamera:
		acks, err = controller.ApplyCamera(ctx, serial, cmd.Camera)
	case CmdReset:
		acks, err = controller.Reset(ctx, serial)
	default:
		rep.Error(fmt.Errorf("%w: 不明なコマンド %q", camera.ErrInvalidArgument, cmd.Name))
		return ExitUsage
	}

	if err != nil {
		return a.failure(err)
	}

	if failed := rep.Acks(acks); failed > 0 {
		a.logger.Info.Printf("%d 件の設定に失敗しました", failed)
		return ExitFailure
	}
	return ExitSuccess
}

// failure はエラーを出力して終了コードを返す
func (a *App) failure(err error) int {
	rep := a.reporter()
	switch {
	case errors.Is(err, camera.ErrDeviceNotFound):
		a.logger.Debug.Printf("デバイス解決に失敗: %v", err)
		rep.NotFound()
		return ExitFailure
	case errors.Is(err, camera.ErrInvalidArgument):
		rep.Error(err)
		return ExitUsage
	default:
		rep.Error(err)
		return ExitFailure
	}
}

// getController はレジストリを開いてControllerを作成する（初回のみ）
func (a *App) getController() (*camera.Controller, error) {
	if a.controller != nil {
		return a.controller, nil
	}

	registry, err := a.creator.CreateRegistry()
	if err != nil {
		return nil, err
	}

	resolver := camera.NewResolver(registry,
		camera.WithPollInterval(a.cfg.Discovery.PollInterval),
		camera.WithMaxAttempts(a.cfg.Discovery.MaxAttempts),
		camera.WithProgressEvery(a.cfg.Discovery.ProgressEvery),
		camera.WithProgressWriter(a.stderr),
		camera.WithLogger(a.logger.Debug),
	)
	a.controller = camera.NewController(registry, resolver)
	a.controller.SetLogger(a.logger.Debug)

	return a.controller, nil
}

func (a *App) reporter() *Reporter {
	return NewReporter(a.stdout, a.stderr)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `obsbotctl - control utility for OBSBOT USB conferencing cameras

Usage:
  obsbotctl <command> [options] [args]

Commands:
  list                     List connected devices
  info                     Show model, serial, version, media mode, framing and HDR
  mode <Normal|Background|AutoFrame>
  framing <Group|Single>
  hdr <Off|On>
  image                    Set image parameters (only the given flags are sent)
  camera                   Set camera parameters (only the given flags are sent)
  reset                    Restore default settings
  shell                    Interactive command shell
  version                  Show version information

Options:
  --sn <serial>            Target device (first device if omitted)
  --format text|json|yaml  Output format for list and info

Image options:
  --brightness N --contrast N --saturation N --hue N --sharpness N   (0..100)
  --wb-auto true|false --wb-temp N (2000..10000) --blur N (0..100)

Camera options:
  --zoom F (1.0..2.0) --focus-auto true|false --focus N (0..100)
  --anti-flicker 0..3 (Off, 50Hz, 60Hz, Auto)

Examples:
  obsbotctl list
  obsbotctl mode --sn RMOWAAA1234 AutoFrame
  obsbotctl image --brightness 55 --wb-temp 4500
  obsbotctl camera --focus-auto true --anti-flicker 1`)
}
