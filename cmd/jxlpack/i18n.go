// Package main provides localization for the jxlpack CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Convert images to JPEG XL, transcoding JPEGs losslessly where possible.": "画像をJPEG XLに変換します。可能な場合はJPEGをロスレスでトランスコードします。",

		// Encode command
		"Encode images to JPEG XL": "画像をJPEG XLにエンコード",

		// Version command
		"Show version information": "バージョン情報を表示",
		"jxlpack version %s":       "jxlpack バージョン %s",

		// Input/output flags
		"Input image files (JPEG, PNG, GIF, WebP, TIFF, BMP)":                         "入力画像ファイル（JPEG, PNG, GIF, WebP, TIFF, BMP）",
		"Output file path (single input only; default: input with .jxl extension)":    "出力ファイルパス（単一入力のみ。デフォルト: 入力の拡張子を .jxl に変更）",
		"Directory for output files (default: alongside inputs)":                      "出力ファイルのディレクトリ（デフォルト: 入力と同じ場所）",
		"Path to YAML configuration file":                                             "YAML設定ファイルのパス",

		// Quality flags
		"Quality distance (0 = lossless, 1.0 = visually lossless, larger is lossier)": "品質距離（0 = ロスレス、1.0 = 視覚的ロスレス、大きいほど低品質）",
		"Encode effort, 1-11 or preset name (lightning..tectonic_plate)":              "エンコード労力（1-11 またはプリセット名 lightning..tectonic_plate）",

		// Mode flags
		"Progressive intensity (0-4)":                               "プログレッシブ強度（0-4）",
		"Force modular mode":                                        "モジュラーモードを強制",
		"Re-encode JPEG inputs from pixels instead of transcoding":  "JPEG入力をトランスコードせずピクセルから再エンコード",
		"Decode speed tier (0-4, higher decodes faster)":            "デコード速度ティア（0-4、高いほど高速にデコード）",
		"Verify output by round-trip decoding":                      "ラウンドトリップデコードで出力を検証",
		"Worker threads for the engine (default: all CPUs)":         "エンジンのワーカースレッド数（デフォルト: 全CPU）",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Runtime messages
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
	})
}
