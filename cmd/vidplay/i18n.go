// Package main provides localization for the vidplay CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Logging":       "ログ",

		// Root command
		"Play MP4 files into lockable RGB surfaces": "MP4ファイルをロック可能なRGBサーフェスに再生",
		"vidplay decodes the first video stream of a media file frame by frame into packed RGB surfaces.": "vidplayはメディアファイルの最初の映像ストリームを1フレームずつパックドRGBサーフェスへデコードします。",

		// Global flags
		"YAML configuration file": "YAML設定ファイル",
		"Environment file loaded before VIDPLAY_* variables are read": "VIDPLAY_* 変数を読む前に読み込む環境ファイル",
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Play command
		"Play a media file at its native frame rate":          "メディアファイルを本来のフレームレートで再生",
		"Stop after this many frames (0 = all)":               "このフレーム数で停止（0 = 全て）",
		"Pace frames at the stream frame rate":                "ストリームのフレームレートに合わせて表示",
		"Restart from the beginning at the end of the stream": "ストリームの終端で先頭から再開",
		"Presented %d frames":                                 "%d フレームを表示しました",

		// Dump command
		"Write presented frames as PNG snapshots":    "表示したフレームをPNGスナップショットとして書き出し",
		"Snapshot directory":                         "スナップショットのディレクトリ",
		"Write every Nth frame":                      "Nフレームごとに書き出し",
		"Stop after this many snapshots (0 = all)":   "このスナップショット数で停止（0 = 全て）",
		"Snapshot width in pixels (0 = frame width)": "スナップショットの幅（ピクセル、0 = フレーム幅）",
		"Do not draw the frame index and timecode":   "フレーム番号とタイムコードを描画しない",
		"Wrote %d snapshots to %s":                   "%d 枚のスナップショットを %s に書き出しました",

		// Probe command
		"List the streams of one or more media files":  "メディアファイルのストリームを一覧表示",
		"Number of files probed concurrently":          "同時に調べるファイル数",
		"%d of %d files cannot be played":              "%d / %d ファイルは再生できません",
		"At least one media file argument is required": "メディアファイル引数が1つ以上必要です",
		"error: %v": "エラー: %v",

		// Generate command
		"Generate a test-pattern MP4 file": "テストパターンのMP4ファイルを生成",
		"Output MP4 file path (required)":  "出力MP4ファイルパス（必須）",
		"Number of video frames":           "映像フレーム数",
		"Frame width in pixels":            "フレームの幅（ピクセル）",
		"Frame height in pixels":           "フレームの高さ（ピクセル）",
		"Frames per second":                "毎秒フレーム数",
		"Video codec (raw, jpeg)":          "映像コーデック（raw, jpeg）",
		"JPEG quality (1-100)":             "JPEG品質（1-100）",
		"Omit the audio track":             "音声トラックを省略",
		"Omit the video track":             "映像トラックを省略",

		// Version command
		"Show version information": "バージョン情報を表示",
		"vidplay version %s":       "vidplay バージョン %s",

		// Summary report
		"Write a Markdown playback summary to this file": "Markdown形式の再生サマリーをこのファイルに書き出し",

		"Summary saved to %s": "サマリーを %s に保存しました",
		"Playback Summary":    "再生サマリー",
		"Generated":           "生成日時",
		"Input":               "入力",
		"File":                "ファイル",
		"File Size":           "ファイルサイズ",
		"Streams":             "ストリーム",
		"Kind":                "種類",
		"Codec":               "コーデック",
		"Decoder":             "デコーダー",
		"Details":             "詳細",
		"Selected":            "選択",
		"None":                "なし",
		"Results":             "結果",
		"Frames Presented":    "表示フレーム数",
		"Frames Decoded":      "デコードフレーム数",
		"Dropped Frames":      "破棄フレーム数",
		"Last Position":       "最終位置",
		"Frame Rate":          "フレームレート",
		"Output Size":         "出力サイズ",
		"Audio Sample Rate":   "音声サンプルレート",
		"End of Stream":       "ストリーム終端",
		"Elapsed":             "経過時間",
		"Last Error":          "最後のエラー",
		"Settings":            "設定",
		"Scaler":              "スケーラー",
		"Surface Alignment":   "サーフェスのアライメント",
		"Realtime":            "リアルタイム",
		"Snapshots":           "スナップショット",
		"Item":                "項目",
		"Value":               "値",
		"Yes":                 "はい",
		"No":                  "いいえ",
		"N/A":                 "該当なし",
		"Generated by":        "生成元",

		// Runtime messages
		"A media file argument is required": "メディアファイル引数が必要です",
		"Interrupted, shutting down...":     "中断されました。シャットダウン中...",
		"Failed to release resources: %v":   "リソースの解放に失敗しました: %v",
	})
}
