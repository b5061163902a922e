// Package camera USB会議カメラの制御セッションを担う
//
// # 責務
// - ベンダーSDKのデバイスレジストリを Registry / Device インターフェースで隔離する
// - シリアル番号（省略時は先頭デバイス）から初期化済みデバイスを解決する
// - 解析済みコマンドを制御呼び出しに変換し、呼び出しごとの結果を返す
//
// # 使い分け
// このパッケージは以下の場合に使用する：
// - CLI・対話シェル・HTTPデーモンからカメラを制御したい
// - 実機なしでテストしたい（MockRegistry / MockDevice）
//
// # 仕様
//   - Resolver: 50ms間隔・最大200回のポーリング（およそ10秒）
//     存在しても未初期化のデバイスは未検出として扱う
//     20回ごとに経過秒数の進捗を出力する
//   - Controller: 未指定のフィールドは送信しない
//     ホワイトバランスとフォーカスはオートフラグ未指定で値がある場合マニュアル扱い
//   - 各フィールドの呼び出しは独立して試行し、ロールバックはしない
//   - Controller は呼び出しを直列化するため複数ゴルーチンから使用できる
package camera
