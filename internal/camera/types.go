package camera

import (
	"errors"
	"fmt"
	"strings"
)

// エラー分類
var (
	// ErrDeviceNotFound は対象デバイスが見つからない、または初期化されなかったことを表す
	ErrDeviceNotFound = errors.New("device not found")

	// ErrInvalidArgument はデバイス呼び出し前に拒否された引数を表す
	ErrInvalidArgument = errors.New("invalid argument")
)

// MediaMode はデバイスのメディアモードを表す
type MediaMode int

const (
	MediaModeNormal     MediaMode = 0 // 通常
	MediaModeBackground MediaMode = 1 // 背景処理
	MediaModeAutoFrame  MediaMode = 2 // オートフレーミング
)

// String はメディアモードの表示名を返す
func (m MediaMode) String() string {
	switch m {
	case MediaModeNormal:
		return "Normal"
	case MediaModeBackground:
		return "Background"
	case MediaModeAutoFrame:
		return "AutoFrame"
	default:
		return "Unknown"
	}
}

// MarshalText は表示名でエンコードする
func (m MediaMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText は表示名からデコードする
func (m *MediaMode) UnmarshalText(text []byte) error {
	v, err := ParseMediaMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMediaMode は文字列をメディアモードに変換する
func ParseMediaMode(s string) (MediaMode, error) {
	switch normalizeName(s) {
	case "normal":
		return MediaModeNormal, nil
	case "background":
		return MediaModeBackground, nil
	case "autoframe":
		return MediaModeAutoFrame, nil
	}
	return 0, fmt.Errorf("%w: 不明なメディアモード %q (Normal, Background, AutoFrame)", ErrInvalidArgument, s)
}

// FramingType はオートフレーミングの対象を表す
type FramingType int

const (
	FramingGroup  FramingType = 0 // グループ
	FramingSingle FramingType = 1 // 単一人物
)

// String はフレーミング種別の表示名を返す
func (f FramingType) String() string {
	switch f {
	case FramingGroup:
		return "Group"
	case FramingSingle:
		return "Single"
	default:
		return "Unknown"
	}
}

// MarshalText は表示名でエンコードする
func (f FramingType) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText は表示名からデコードする
func (f *FramingType) UnmarshalText(text []byte) error {
	v, err := ParseFramingType(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseFramingType は文字列をフレーミング種別に変換する
func ParseFramingType(s string) (FramingType, error) {
	switch normalizeName(s) {
	case "group":
		return FramingGroup, nil
	case "single":
		return FramingSingle, nil
	}
	return 0, fmt.Errorf("%w: 不明なフレーミング種別 %q (Group, Single)", ErrInvalidArgument, s)
}

// Switch はオン/オフの二値を表す
type Switch int

const (
	SwitchOff Switch = 0
	SwitchOn  Switch = 1
)

// String はスイッチの表示名を返す
func (s Switch) String() string {
	if s == SwitchOn {
		return "On"
	}
	return "Off"
}

// MarshalText は表示名でエンコードする
func (s Switch) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText は表示名からデコードする
func (s *Switch) UnmarshalText(text []byte) error {
	v, err := ParseSwitch(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSwitch は文字列をスイッチ値に変換する
func ParseSwitch(s string) (Switch, error) {
	switch normalizeName(s) {
	case "off":
		return SwitchOff, nil
	case "on":
		return SwitchOn, nil
	}
	return 0, fmt.Errorf("%w: 不明なスイッチ値 %q (Off, On)", ErrInvalidArgument, s)
}

// AntiFlicker は電源周波数に合わせたフリッカー補正を表す
type AntiFlicker int

const (
	AntiFlickerOff  AntiFlicker = 0
	AntiFlicker50Hz AntiFlicker = 1
	AntiFlicker60Hz AntiFlicker = 2
	AntiFlickerAuto AntiFlicker = 3
)

// String はフリッカー補正の表示名を返す
func (a AntiFlicker) String() string {
	switch a {
	case AntiFlickerOff:
		return "Off"
	case AntiFlicker50Hz:
		return "50Hz"
	case AntiFlicker60Hz:
		return "60Hz"
	case AntiFlickerAuto:
		return "Auto"
	default:
		return "Unknown"
	}
}

// Valid は値が定義済みの範囲内かを返す
func (a AntiFlicker) Valid() bool {
	return a >= AntiFlickerOff && a <= AntiFlickerAuto
}

// normalizeName は列挙値の比較用に大文字小文字と区切り文字を除去する
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}

// Registry はベンダーSDKが保持するデバイスレジストリへの窓口
//
// 返されるDeviceはレジストリが所有する非所有参照であり、
// プロセスの生存期間かつデバイスが接続されている間のみ有効。
// 見つからない場合はnilを返す。
type Registry interface {
	// DeviceCount は列挙済みデバイス数を返す
	DeviceCount() int

	// DeviceByIndex は列挙順のデバイスを返す
	DeviceByIndex(index int) Device

	// DeviceBySerial はシリアル番号でデバイスを返す
	DeviceBySerial(serial string) Device
}

// Device は単一カメラへの制御呼び出しを表す
type Device interface {
	Serial() string
	Model() string
	Version() string

	// Initialized はSDKが列挙と初期化を完了したかを返す
	Initialized() bool

	MediaMode() MediaMode
	SetMediaMode(mode MediaMode) error
	FramingType() FramingType
	SetFramingType(framing FramingType) error
	HDR() Switch
	SetHDR(state Switch) error

	SetBrightness(value int) error
	SetContrast(value int) error
	SetSaturation(value int) error
	SetHue(value int) error
	SetSharpness(value int) error
	SetWhiteBalance(auto bool, temperature int) error
	SetBackgroundBlur(level int) error

	SetZoom(ratio float64) error
	SetFocus(auto bool, value int) error
	SetAntiFlicker(mode AntiFlicker) error

	ResetDefaults() error
}

// DeviceSummary は一覧表示用のデバイス情報
type DeviceSummary struct {
	Index  int    `json:"index" yaml:"index"`
	Model  string `json:"model" yaml:"model"`
	Serial string `json:"serial" yaml:"serial"`
}

// DeviceInfo はデバイスの詳細情報
type DeviceInfo struct {
	Model     string      `json:"model" yaml:"model"`
	Serial    string      `json:"serial" yaml:"serial"`
	Version   string      `json:"version" yaml:"version"`
	MediaMode MediaMode   `json:"media_mode" yaml:"media_mode"`
	Framing   FramingType `json:"framing" yaml:"framing"`
	HDR       Switch      `json:"hdr" yaml:"hdr"`
}

// Ack は1回の制御呼び出しの結果
type Ack struct {
	Field   string `json:"field"`
	Message string `json:"message,omitempty"`
	Err     error  `json:"-"`
}

// OK は呼び出しが成功したかを返す
func (a Ack) OK() bool {
	return a.Err == nil
}
