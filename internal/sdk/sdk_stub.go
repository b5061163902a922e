//go:build !obsbot || !cgo

package sdk

import (
	"fmt"

	"obsbotctl/internal/camera"
)

// Open はSDKなしのビルドでは常に失敗する
func Open() (camera.Registry, error) {
	return nil, fmt.Errorf("%w: obsbot タグと cgo を有効にしてビルドしてください", ErrSDKUnavailable)
}
