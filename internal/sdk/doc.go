// Package sdk はベンダー提供のデバイスSDK（libdev）との境界を担う
//
// # 責務
// - Cシム（obsbot_wrapper）経由でSDKのデバイスレジストリと制御関数を呼び出す
// - SDKの不透明ハンドルを camera.Registry / camera.Device として公開する
// - 固定長Cバッファ（64バイト）の文字列変換
//
// # ビルド
// SDKとのリンクはビルドタグ obsbot かつ cgo 有効時のみ行う。
// それ以外のビルドでは Open は ErrSDKUnavailable を返す。
//
//	export OBSBOT_SDK_PATH=$HOME/obsbot-sdk
//	CGO_CXXFLAGS="-I$OBSBOT_SDK_PATH/include" \
//	CGO_LDFLAGS="-L$OBSBOT_SDK_PATH/lib -Wl,-rpath,$OBSBOT_SDK_PATH/lib" \
//	go build -tags obsbot .
//
// # 前提要件
//   - ベンダーSDK（include/dev/*.hpp と lib/libdev.so）
//   - C++コンパイラ（libstdc++）
package sdk
