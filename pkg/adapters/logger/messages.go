package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Encoding %s...":                  "%s をエンコード中...",
		"Output saved to %s":              "出力を %s に保存しました",
		"Encoding completed successfully": "エンコードが正常に完了しました",
		"Interrupted, shutting down...":   "中断されました。シャットダウン中...",

		// Input handling
		"Reading %s": "%s を読み込み中",
		"Detected format: %s":             "フォーマットを検出: %s",
		"Decoded %dx%d image, %d channels": "%dx%d 画像をデコードしました, %d チャンネル",

		// Session
		"Creating encoder session with %d workers": "%d ワーカーでエンコーダーセッションを作成中",
		"Frame settings: distance %.2f, effort %s": "フレーム設定: distance %.2f, effort %s",
		"Lossless mode enabled":                    "ロスレスモードが有効です",
		"Progressive level %d":                     "プログレッシブレベル %d",

		// Transcode path
		"Attempting JPEG transcode":                        "JPEG トランスコードを試行中",
		"JPEG transcoded losslessly":                       "JPEG をロスレスでトランスコードしました",
		"Transcode rejected, re-encoding from pixels: %s":  "トランスコードが拒否されました。ピクセルから再エンコードします: %s",
		"Encoding from pixels":                             "ピクセルからエンコード中",

		// Output
		"Pulling encoded output":      "エンコード出力を取得中",
		"Encoded %d bytes (%.1f%% of input)": "%d バイトにエンコードしました (入力の %.1f%%)",

		// Verification
		"Verifying output":               "出力を検証中",
		"Verification passed":            "検証に合格しました",
		"Verification failed: %s":        "検証に失敗しました: %s",

		// Errors
		"Failed to read input: %s":    "入力の読み込みに失敗しました: %s",
		"Failed to decode image: %s":  "画像のデコードに失敗しました: %s",
		"Failed to encode: %s":        "エンコードに失敗しました: %s",
		"Failed to write output: %s":  "出力の書き込みに失敗しました: %s",
	})
}
