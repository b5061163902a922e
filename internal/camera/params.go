package camera

import (
	"fmt"
)

// 画質・カメラ設定の許容範囲
const (
	MinPercent = 0
	MaxPercent = 100

	MinWhiteBalanceTemp = 2000
	MaxWhiteBalanceTemp = 10000

	MinZoom = 1.0
	MaxZoom = 2.0
)

// ImageParams は画質設定を表す
// nilのフィールドは送信しない
type ImageParams struct {
	Brightness       *int  `json:"brightness,omitempty" yaml:"brightness,omitempty"`
	Contrast         *int  `json:"contrast,omitempty" yaml:"contrast,omitempty"`
	Saturation       *int  `json:"saturation,omitempty" yaml:"saturation,omitempty"`
	Hue              *int  `json:"hue,omitempty" yaml:"hue,omitempty"`
	Sharpness        *int  `json:"sharpness,omitempty" yaml:"sharpness,omitempty"`
	WhiteBalanceAuto *bool `json:"wb_auto,omitempty" yaml:"wb_auto,omitempty"`
	WhiteBalanceTemp *int  `json:"wb_temp,omitempty" yaml:"wb_temp,omitempty"`
	Blur             *int  `json:"blur,omitempty" yaml:"blur,omitempty"`
}

// Validate は設定値の妥当性を検証する
func (p ImageParams) Validate() error {
	percents := []struct {
		name  string
		value *int
	}{
		{"brightness", p.Brightness},
		{"contrast", p.Contrast},
		{"saturation", p.Saturation},
		{"hue", p.Hue},
		{"sharpness", p.Sharpness},
		{"blur", p.Blur},
	}
	for _, f := range percents {
		if err := checkIntRange(f.name, f.value, MinPercent, MaxPercent); err != nil {
			return err
		}
	}

	return checkIntRange("wb-temp", p.WhiteBalanceTemp, MinWhiteBalanceTemp, MaxWhiteBalanceTemp)
}

// IsEmpty はどのフィールドも指定されていないかを返す
func (p ImageParams) IsEmpty() bool {
	return p == ImageParams{}
}

// whiteBalance はホワイトバランスの送信値を決定する
//
// autoが指定されていればその値と温度（未指定なら0）を送る。
// autoが未指定で温度だけあればマニュアル扱いで温度を送る。
func (p ImageParams) whiteBalance() (auto bool, temp int, ok bool) {
	return inferMode(p.WhiteBalanceAuto, p.WhiteBalanceTemp)
}

// CameraParams はカメラ制御設定を表す
// nilのフィールドは送信しない
type CameraParams struct {
	Zoom        *float64     `json:"zoom,omitempty" yaml:"zoom,omitempty"`
	FocusAuto   *bool        `json:"focus_auto,omitempty" yaml:"focus_auto,omitempty"`
	Focus       *int         `json:"focus,omitempty" yaml:"focus,omitempty"`
	AntiFlicker *AntiFlicker `json:"anti_flicker,omitempty" yaml:"anti_flicker,omitempty"`
}

// Validate は設定値の妥当性を検証する
func (p CameraParams) Validate() error {
	// NaNも拒否されるよう範囲内であることを確認する
	if p.Zoom != nil && !(*p.Zoom >= MinZoom && *p.Zoom <= MaxZoom) {
		return fmt.Errorf("%w: zoom は %.1f から %.1f の範囲で指定してください: %g", ErrInvalidArgument, MinZoom, MaxZoom, *p.Zoom)
	}

	if err := checkIntRange("focus", p.Focus, MinPercent, MaxPercent); err != nil {
		return err
	}

	if p.AntiFlicker != nil && !p.AntiFlicker.Valid() {
		return fmt.Errorf("%w: anti-flicker は 0 から 3 の範囲で指定してください: %d", ErrInvalidArgument, int(*p.AntiFlicker))
	}

	return nil
}

// IsEmpty はどのフィールドも指定されていないかを返す
func (p CameraParams) IsEmpty() bool {
	return p == CameraParams{}
}

// focus はフォーカスの送信値を決定する
func (p CameraParams) focus() (auto bool, value int, ok bool) {
	return inferMode(p.FocusAuto, p.Focus)
}

// inferMode はオートフラグと値の組から送信値を決める
//
//	{auto指定あり}         -> (auto, 値または0)
//	{auto指定なし, 値あり} -> (manual, 値)
//	{どちらもなし}         -> 送信しない
func inferMode(auto *bool, value *int) (bool, int, bool) {
	switch {
	case auto != nil:
		v := 0
		if value != nil {
			v = *value
		}
		return *auto, v, true
	case value != nil:
		return false, *value, true
	default:
		return false, 0, false
	}
}

// checkIntRange は値が指定範囲内かを検証する
func checkIntRange(name string, value *int, lower, upper int) error {
	if value == nil {
		return nil
	}
	if *value < lower || *value > upper {
		return fmt.Errorf("%w: %s は %d から %d の範囲で指定してください: %d", ErrInvalidArgument, name, lower, upper, *value)
	}
	return nil
}
