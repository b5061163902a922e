// Package server は、カメラ制御のHTTPデーモンを提供します。
//
// CLIと同じ camera.Controller をHTTP経由で公開し、
// 常駐プロセスからSDKのレジストリを保持したまま操作できるようにします。
//
// 責務:
//   - HTTPサーバーの起動とグレースフルシャットダウン
//   - デバイス一覧・情報取得・各種設定のエンドポイント
//   - エラー種別からHTTPステータスへの変換
//   - リクエストIDの付与とアクセスログ
//
// 仕様:
//   - ルーティングはgin-gonic/ginを使用
//   - リクエストIDはgoogle/uuidで生成（X-Request-ID）
//   - 引数エラーは400、デバイスなしは404、SDK呼び出し失敗は502
//   - デバイス操作はControllerで直列化される
package server
