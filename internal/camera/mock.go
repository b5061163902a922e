package camera

import (
	"fmt"
	"sync"
)

// Call はMockDeviceへの制御呼び出しの記録
type Call struct {
	Method string
	Args   []any
}

// String は呼び出しを "Method(arg1, arg2)" 形式で返す
func (c Call) String() string {
	s := c.Method + "("
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(a)
	}
	return s + ")"
}

// MockRegistry はテスト用のインメモリRegistry実装
type MockRegistry struct {
	mu      sync.Mutex
	devices []*MockDevice
	lookups int
}

// NewMockRegistry は新しいMockRegistryを作成する
func NewMockRegistry(devices ...*MockDevice) *MockRegistry {
	return &MockRegistry{devices: devices}
}

// DeviceCount は登録済みデバイス数を返す
func (m *MockRegistry) DeviceCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.devices)
}

// DeviceByIndex は列挙順のデバイスを返す
func (m *MockRegistry) DeviceByIndex(index int) Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++

	if index < 0 || index >= len(m.devices) {
		return nil
	}
	return m.devices[index]
}

// DeviceBySerial はシリアル番号でデバイスを返す
func (m *MockRegistry) DeviceBySerial(serial string) Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++

	for _, d := range m.devices {
		if d.serial == serial {
			return d
		}
	}
	return nil
}

// Lookups はデバイス取得の問い合わせ回数を返す
func (m *MockRegistry) Lookups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}

// AddDevice はテスト用にデバイスを追加する
func (m *MockRegistry) AddDevice(device *MockDevice) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 重複チェック
	for _, d := range m.devices {
		if d.serial == device.serial {
			return
		}
	}
	m.devices = append(m.devices, device)
}

// RemoveDevice はテスト用にデバイスを削除する
func (m *MockRegistry) RemoveDevice(serial string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, d := range m.devices {
		if d.serial == serial {
			m.devices = append(m.devices[:i], m.devices[i+1:]...)
			return
		}
	}
}

// MockDevice はテスト用のデバイス実装
// 制御呼び出しはすべて記録される
type MockDevice struct {
	mu sync.Mutex

	model   string
	serial  string
	version string

	// initAfter回のInitialized問い合わせの後に初期化済みになる
	initAfter   int
	initQueries int

	mediaMode MediaMode
	framing   FramingType
	hdr       Switch

	calls    []Call
	failures map[string]error
}

// NewMockDevice は初期化済みのMockDeviceを作成する
func NewMockDevice(model, serial, version string) *MockDevice {
	return &MockDevice{
		model:    model,
		serial:   serial,
		version:  version,
		failures: make(map[string]error),
	}
}

// InitializeAfter はn回目の問い合わせまで未初期化として振る舞うよう設定する
func (d *MockDevice) InitializeAfter(n int) *MockDevice {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.initAfter = n
	return d
}

// FailOn は指定メソッドの呼び出しでerrを返すよう設定する
func (d *MockDevice) FailOn(method string, err error) *MockDevice {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[method] = err
	return d
}

// Calls は記録された制御呼び出しを返す
func (d *MockDevice) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()

	result := make([]Call, len(d.calls))
	copy(result, d.calls)
	return result
}

// CallStrings は記録された制御呼び出しを文字列で返す
func (d *MockDevice) CallStrings() []string {
	calls := d.Calls()
	result := make([]string, 0, len(calls))
	for _, c := range calls {
		result = append(result, c.String())
	}
	return result
}

// record は呼び出しを記録し、設定された失敗を返す（ロック済み前提）
func (d *MockDevice) record(method string, args ...any) error {
	d.calls = append(d.calls, Call{Method: method, Args: args})
	return d.failures[method]
}

func (d *MockDevice) Serial() string  { return d.serial }
func (d *MockDevice) Model() string   { return d.model }
func (d *MockDevice) Version() string { return d.version }

// Initialized は初期化済みかを返す
func (d *MockDevice) Initialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.initQueries++
	return d.initQueries > d.initAfter
}

func (d *MockDevice) MediaMode() MediaMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mediaMode
}

func (d *MockDevice) SetMediaMode(mode MediaMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("SetMediaMode", mode); err != nil {
		return err
	}
	d.mediaMode = mode
	return nil
}

func (d *MockDevice) FramingType() FramingType {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.framing
}

func (d *MockDevice) SetFramingType(framing FramingType) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("SetFramingType", framing); err != nil {
		return err
	}
	d.framing = framing
	return nil
}

func (d *MockDevice) HDR() Switch {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hdr
}

func (d *MockDevice) SetHDR(state Switch) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("SetHDR", state); err != nil {
		return err
	}
	d.hdr = state
	return nil
}

func (d *MockDevice) SetBrightness(value int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record("SetBrightness", value)
}

func (d *MockDevice) SetContrast(value int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record("SetContrast", value)
}

func (d *MockDevice) SetSaturation(value int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record("SetSaturation", value)
}

func (d *MockDevice) SetHue(value int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record("SetHue", value)
}

func (d *MockDevice) SetSharpness(value int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record("SetSharpness", value)
}

func (d *MockDevice) SetWhiteBalance(auto bool, temperature int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record("SetWhiteBalance", auto, temperature)
}

func (d *MockDevice) SetBackgroundBlur(level int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record("SetBackgroundBlur", level)
}

func (d *MockDevice) SetZoom(ratio float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record("SetZoom", ratio)
}

func (d *MockDevice) SetFocus(auto bool, value int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record("SetFocus", auto, value)
}

func (d *MockDevice) SetAntiFlicker(mode AntiFlicker) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record("SetAntiFlicker", mode)
}

func (d *MockDevice) ResetDefaults() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("ResetDefaults"); err != nil {
		return err
	}
	d.mediaMode = MediaModeNormal
	d.framing = FramingGroup
	d.hdr = SwitchOff
	return nil
}
