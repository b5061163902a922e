package sdk

import (
	"bytes"
	"errors"
	"fmt"

	"obsbotctl/internal/camera"
)

// bufLen はSDKから文字列を受け取る固定長バッファのサイズ
const bufLen = 64

// ErrSDKUnavailable はSDKがリンクされていない、または初期化できないことを表す
var ErrSDKUnavailable = errors.New("device SDK unavailable")

// CallError はSDK呼び出しが非ゼロのステータスを返したことを表す
type CallError struct {
	Call string
	Code int
}

func (e *CallError) Error() string {
	return fmt.Sprintf("SDK呼び出し %s が失敗しました (code=%d)", e.Call, e.Code)
}

// check はSDKのステータスコードをerrorに変換する
func check(call string, code int) error {
	if code == 0 {
		return nil
	}
	return &CallError{Call: call, Code: code}
}

// cString はNUL終端の固定長バッファをGo文字列に変換する
// NULがない場合はバッファ全体を使う
func cString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(bytes.ToValidUTF8(buf, []byte("�")))
}

// boolToInt はSDKのフラグ引数に変換する
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Creator は本番用のcamera.RegistryCreator実装
type Creator struct{}

// NewCreator は新しいCreatorを作成する
func NewCreator() camera.RegistryCreator {
	return &Creator{}
}

// CreateRegistry はSDKのデバイスレジストリを開く
func (c *Creator) CreateRegistry() (camera.Registry, error) {
	return Open()
}
