package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"obsbotctl/internal/camera"
)

// コマンド名
const (
	CmdList    = "list"
	CmdInfo    = "info"
	CmdMode    = "mode"
	CmdFraming = "framing"
	CmdHDR     = "hdr"
	CmdImage   = "image"
	CmdCamera  = "camera"
	CmdReset   = "reset"
	CmdShell   = "shell"
	CmdHelp    = "help"
	CmdVersion = "version"
)

// 出力形式
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// errHelp は -h/--help が指定されたことを表す
var errHelp = errors.New("help requested")

// Command は解析済みのサブコマンド
type Command struct {
	Name   string
	Serial string
	Format string

	Mode    camera.MediaMode
	Framing camera.FramingType
	HDR     camera.Switch

	Image  camera.ImageParams
	Camera camera.CameraParams
}

// Parse はサブコマンドと引数を解析・検証する
// 範囲外の値や不明な列挙値はここで camera.ErrInvalidArgument として拒否する
func Parse(args []string, stderr io.Writer) (*Command, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: サブコマンドを指定してください", camera.ErrInvalidArgument)
	}

	cmd := &Command{Name: args[0], Format: FormatText}
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		expectPositional int
		antiFlicker      *int
	)

	switch cmd.Name {
	case CmdList:
		// 他のサブコマンドと揃えて受け付けるが、一覧は常に全デバイスを対象にする
		fs.StringVar(&cmd.Serial, "sn", "", "accepted for consistency; list always shows every device")
		fs.StringVar(&cmd.Format, "format", FormatText, "output format: text, json, yaml")
	case CmdInfo:
		fs.StringVar(&cmd.Serial, "sn", "", "serial number of the device (first device if omitted)")
		fs.StringVar(&cmd.Format, "format", FormatText, "output format: text, json, yaml")
	case CmdMode, CmdFraming, CmdHDR:
		fs.StringVar(&cmd.Serial, "sn", "", "serial number of the device (first device if omitted)")
		expectPositional = 1
	case CmdImage:
		fs.StringVar(&cmd.Serial, "sn", "", "serial number of the device (first device if omitted)")
		fs.Var(optionalInt{&cmd.Image.Brightness}, "brightness", "brightness 0..100")
		fs.Var(optionalInt{&cmd.Image.Contrast}, "contrast", "contrast 0..100")
		fs.Var(optionalInt{&cmd.Image.Saturation}, "saturation", "saturation 0..100")
		fs.Var(optionalInt{&cmd.Image.Hue}, "hue", "hue 0..100")
		fs.Var(optionalInt{&cmd.Image.Sharpness}, "sharpness", "sharpness 0..100")
		fs.Var(optionalBool{&cmd.Image.WhiteBalanceAuto}, "wb-auto", "automatic white balance: true|false")
		fs.Var(optionalInt{&cmd.Image.WhiteBalanceTemp}, "wb-temp", "white balance temperature 2000..10000 K")
		fs.Var(optionalInt{&cmd.Image.Blur}, "blur", "background blur level 0..100")
	case CmdCamera:
		fs.StringVar(&cmd.Serial, "sn", "", "serial number of the device (first device if omitted)")
		fs.Var(optionalFloat{&cmd.Camera.Zoom}, "zoom", "zoom ratio 1.0..2.0")
		fs.Var(optionalBool{&cmd.Camera.FocusAuto}, "focus-auto", "automatic focus: true|false")
		fs.Var(optionalInt{&cmd.Camera.Focus}, "focus", "manual focus 0..100")
		fs.Var(optionalInt{&antiFlicker}, "anti-flicker", "anti-flicker 0=Off 1=50Hz 2=60Hz 3=Auto")
	case CmdReset, CmdShell:
		fs.StringVar(&cmd.Serial, "sn", "", "serial number of the device (first device if omitted)")
	case CmdHelp, "-h", "--help":
		cmd.Name = CmdHelp
		return cmd, nil
	case CmdVersion, "-v", "--version":
		cmd.Name = CmdVersion
		return cmd, nil
	default:
		return nil, fmt.Errorf("%w: 不明なコマンド %q", camera.ErrInvalidArgument, cmd.Name)
	}

	positional, err := parseInterspersed(fs, args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, errHelp
		}
		return nil, fmt.Errorf("%w: %v", camera.ErrInvalidArgument, err)
	}

	if len(positional) != expectPositional {
		return nil, fmt.Errorf("%w: %s の引数の数が正しくありません: %v", camera.ErrInvalidArgument, cmd.Name, positional)
	}

	switch cmd.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("%w: 不明な出力形式 %q", camera.ErrInvalidArgument, cmd.Format)
	}

	if antiFlicker != nil {
		v := camera.AntiFlicker(*antiFlicker)
		cmd.Camera.AntiFlicker = &v
	}

	if err := cmd.validate(positional); err != nil {
		return nil, err
	}

	return cmd, nil
}

// validate は位置引数を解釈し、値の範囲を検証する
func (c *Command) validate(positional []string) error {
	var err error
	switch c.Name {
	case CmdMode:
		c.Mode, err = camera.ParseMediaMode(positional[0])
	case CmdFraming:
		c.Framing, err = camera.ParseFramingType(positional[0])
	case CmdHDR:
		c.HDR, err = camera.ParseSwitch(positional[0])
	case CmdImage:
		err = c.Image.Validate()
	case CmdCamera:
		err = c.Camera.Validate()
	}
	return err
}
