package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader は対話シェルの入力元
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// readlineReader はreadline.InstanceをLineReaderとして扱う
type readlineReader struct {
	*readline.Instance
}

// newReadlineReader は端末用のLineReaderを作成する
func newReadlineReader(prompt string, stdout, stderr io.Writer) (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          stdout,
		Stderr:          stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("readlineの初期化に失敗: %w", err)
	}
	return &readlineReader{Instance: rl}, nil
}

// runShell は対話シェルを実行する
// 各行は通常のサブコマンドとして解析し、--sn 省略時はシェル起動時のシリアルを使う
func (a *App) runShell(ctx context.Context, serial string) int {
	prompt := "obsbot> "
	if serial != "" {
		prompt = fmt.Sprintf("obsbot[%s]> ", serial)
	}

	rl, err := a.newLineReader(prompt, a.stdout, a.stderr)
	if err != nil {
		a.reporter().Error(err)
		return ExitFailure
	}
	defer rl.Close()

	fmt.Fprintln(a.stdout, `Type "help" for commands, "exit" to quit.`)

	status := ExitSuccess
	for {
		select {
		case <-ctx.Done():
			return status
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			// EOF
			return status
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch strings.ToLower(args[0]) {
		case "exit", "quit", "q":
			return status
		case "help", "?":
			printShellHelp(a.stdout)
			continue
		case CmdShell:
			a.reporter().Error(errors.New("既にシェルの中です"))
			continue
		}

		cmd, err := Parse(args, a.stderr)
		if err != nil {
			if !errors.Is(err, errHelp) {
				a.reporter().Error(err)
				status = ExitUsage
			}
			continue
		}
		if cmd.Serial == "" {
			cmd.Serial = serial
		}

		status = a.Execute(ctx, cmd)
	}
}

func printShellHelp(w io.Writer) {
	fmt.Fprintln(w, `Commands:
  list [--format F]             List connected devices
  info [--sn S] [--format F]    Show device information
  mode <Normal|Background|AutoFrame>
  framing <Group|Single>
  hdr <Off|On>
  image [flags]                 --brightness --contrast --saturation --hue
                                --sharpness --wb-auto --wb-temp --blur
  camera [flags]                --zoom --focus-auto --focus --anti-flicker
  reset                         Restore default settings
  help                          Show this help
  exit, quit                    Leave the shell`)
}
