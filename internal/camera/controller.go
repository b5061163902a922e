package camera

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"sync"
)

// Controller は解析済みのコマンドをデバイス制御呼び出しに変換する
//
// 複数フィールドのコマンドはフィールドごとに1回ずつ呼び出し、
// 途中で失敗しても残りのフィールドは独立に試行する（ロールバックなし）。
type Controller struct {
	registry Registry
	resolver *Resolver
	logger   *log.Logger

	// SDKのレジストリはプロセスに1つなので呼び出しを直列化する
	mu sync.Mutex
}

// NewController は新しいControllerを作成する
func NewController(registry Registry, resolver *Resolver) *Controller {
	if resolver == nil {
		resolver = NewResolver(registry)
	}
	return &Controller{
		registry: registry,
		resolver: resolver,
		logger:   log.New(io.Discard, "", 0),
	}
}

// SetLogger はデバッグログの出力先を設定する
func (c *Controller) SetLogger(l *log.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
}

// List は列挙済みデバイスの一覧を返す
// ポーリングはせず、その時点でレジストリにあるものだけを返す
func (c *Controller) List(_ context.Context) []DeviceSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := c.registry.DeviceCount()
	devices := make([]DeviceSummary, 0, count)
	for i := 0; i < count; i++ {
		dev := c.registry.DeviceByIndex(i)
		if dev == nil {
			continue
		}
		devices = append(devices, DeviceSummary{
			Index:  i,
			Model:  dev.Model(),
			Serial: dev.Serial(),
		})
	}

	return devices
}

// Info はデバイスの詳細情報を取得する
func (c *Controller) Info(ctx context.Context, serial string) (*DeviceInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dev, err := c.resolver.Resolve(ctx, serial)
	if err != nil {
		return nil, err
	}

	return &DeviceInfo{
		Model:     dev.Model(),
		Serial:    dev.Serial(),
		Version:   dev.Version(),
		MediaMode: dev.MediaMode(),
		Framing:   dev.FramingType(),
		HDR:       dev.HDR(),
	}, nil
}

// SetMode はメディアモードを設定する
func (c *Controller) SetMode(ctx context.Context, serial string, mode MediaMode) ([]Ack, error) {
	if mode < MediaModeNormal || mode > MediaModeAutoFrame {
		return nil, fmt.Errorf("%w: メディアモード %d", ErrInvalidArgument, int(mode))
	}

	return c.run(ctx, serial, func(dev Device) []Ack {
		return []Ack{c.call("mode", "Set Media Mode.", func() error { return dev.SetMediaMode(mode) })}
	})
}

// SetFraming はオートフレーミング種別を設定する
func (c *Controller) SetFraming(ctx context.Context, serial string, framing FramingType) ([]Ack, error) {
	if framing != FramingGroup && framing != FramingSingle {
		return nil, fmt.Errorf("%w: フレーミング種別 %d", ErrInvalidArgument, int(framing))
	}

	return c.run(ctx, serial, func(dev Device) []Ack {
		return []Ack{c.call("framing", "Set Framing Type.", func() error { return dev.SetFramingType(framing) })}
	})
}

// SetHDR はHDRのオン/オフを設定する
func (c *Controller) SetHDR(ctx context.Context, serial string, state Switch) ([]Ack, error) {
	if state != SwitchOff && state != SwitchOn {
		return nil, fmt.Errorf("%w: HDR %d", ErrInvalidArgument, int(state))
	}

	return c.run(ctx, serial, func(dev Device) []Ack {
		return []Ack{c.call("hdr", "Set HDR.", func() error { return dev.SetHDR(state) })}
	})
}

// ApplyImage は指定された画質設定だけを送信する
func (c *Controller) ApplyImage(ctx context.Context, serial string, p ImageParams) ([]Ack, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return c.run(ctx, serial, func(dev Device) []Ack {
		var acks []Ack
		if p.Brightness != nil {
			v := *p.Brightness
			acks = append(acks, c.call("brightness", fmt.Sprintf("Set Brightness to %d.", v), func() error { return dev.SetBrightness(v) }))
		}
		if p.Contrast != nil {
			v := *p.Contrast
			acks = append(acks, c.call("contrast", fmt.Sprintf("Set Contrast to %d.", v), func() error { return dev.SetContrast(v) }))
		}
		if p.Saturation != nil {
			v := *p.Saturation
			acks = append(acks, c.call("saturation", fmt.Sprintf("Set Saturation to %d.", v), func() error { return dev.SetSaturation(v) }))
		}
		if p.Hue != nil {
			v := *p.Hue
			acks = append(acks, c.call("hue", fmt.Sprintf("Set Hue to %d.", v), func() error { return dev.SetHue(v) }))
		}
		if p.Sharpness != nil {
			v := *p.Sharpness
			acks = append(acks, c.call("sharpness", fmt.Sprintf("Set Sharpness to %d.", v), func() error { return dev.SetSharpness(v) }))
		}
		if auto, temp, ok := p.whiteBalance(); ok {
			msg := fmt.Sprintf("Set White Balance to %s.", modeLabel(auto, temp, " K"))
			acks = append(acks, c.call("white_balance", msg, func() error { return dev.SetWhiteBalance(auto, temp) }))
		}
		if p.Blur != nil {
			v := *p.Blur
			acks = append(acks, c.call("blur", fmt.Sprintf("Set Background Blur to %d.", v), func() error { return dev.SetBackgroundBlur(v) }))
		}
		return acks
	})
}

// ApplyCamera は指定されたカメラ制御設定だけを送信する
func (c *Controller) ApplyCamera(ctx context.Context, serial string, p CameraParams) ([]Ack, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return c.run(ctx, serial, func(dev Device) []Ack {
		var acks []Ack
		if p.Zoom != nil {
			v := *p.Zoom
			msg := fmt.Sprintf("Set Zoom to %s.", strconv.FormatFloat(v, 'f', -1, 64))
			acks = append(acks, c.call("zoom", msg, func() error { return dev.SetZoom(v) }))
		}
		if auto, value, ok := p.focus(); ok {
			msg := fmt.Sprintf("Set Focus to %s.", modeLabel(auto, value, ""))
			acks = append(acks, c.call("focus", msg, func() error { return dev.SetFocus(auto, value) }))
		}
		if p.AntiFlicker != nil {
			v := *p.AntiFlicker
			acks = append(acks, c.call("anti_flicker", fmt.Sprintf("Set Anti-Flicker to %s.", v), func() error { return dev.SetAntiFlicker(v) }))
		}
		return acks
	})
}

// Reset はデバイス設定をデフォルトに戻す
func (c *Controller) Reset(ctx context.Context, serial string) ([]Ack, error) {
	return c.run(ctx, serial, func(dev Device) []Ack {
		return []Ack{c.call("reset", "Reset to defaults.", dev.ResetDefaults)}
	})
}

// run はデバイスを解決してから制御関数を実行する
func (c *Controller) run(ctx context.Context, serial string, fn func(Device) []Ack) ([]Ack, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dev, err := c.resolver.Resolve(ctx, serial)
	if err != nil {
		return nil, err
	}

	return fn(dev), nil
}

// call は1回の制御呼び出しを実行し、結果をAckにまとめる（ロック済み前提）
func (c *Controller) call(field, message string, fn func() error) Ack {
	if err := fn(); err != nil {
		c.logger.Printf("制御呼び出しに失敗: field=%s err=%v", field, err)
		return Ack{Field: field, Err: fmt.Errorf("%s の設定に失敗: %w", field, err)}
	}

	c.logger.Printf("制御呼び出し: field=%s", field)
	return Ack{Field: field, Message: message}
}

// modeLabel は auto/manual と値の表示を組み立てる
func modeLabel(auto bool, value int, unit string) string {
	if auto {
		if value == 0 {
			return "auto"
		}
		return fmt.Sprintf("auto (%d%s)", value, unit)
	}
	return fmt.Sprintf("manual (%d%s)", value, unit)
}
