package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Session lifecycle (playback component)
		"Opened %s: %dx%d %s (%s) at %.3f fps, audio %s %d Hz": "%s を開きました: %dx%d %s (%s) %.3f fps, 音声 %s %d Hz",
		"Failed to open %s: %v":         "%s を開けませんでした: %v",
		"Closed %s after %d frames":     "%s を閉じました (%d フレーム)",
		"End of stream after %d frames": "%d フレームでストリームの終端に達しました",
		"Stopping playback: %v":         "再生を停止します: %v",
		"Released %s":                   "%s を解放しました",
		"Failed to release %s: %v":      "%s の解放に失敗しました: %v",

		// Stream selection
		"Ignoring extra video stream %d": "余分な映像ストリーム %d を無視します",
		"Ignoring extra audio stream %d": "余分な音声ストリーム %d を無視します",

		// Frame loop
		"Decoder needs more input after packet at %.3fs": "%.3f 秒のパケットの後、デコーダは追加の入力を必要としています",
		"Dropped frame at %.3fs: %v":                      "%.3f 秒のフレームを破棄しました: %v",
		"Audio packet at %.3fs rejected: %v":              "%.3f 秒の音声パケットが拒否されました: %v",
		"Failed to convert frame at %.3fs: %v":            "%.3f 秒のフレームの変換に失敗しました: %v",
		"Failed to write frame at %.3fs: %v":              "%.3f 秒のフレームの書き込みに失敗しました: %v",
		"Failed to save frame %d: %v":                     "フレーム %d の保存に失敗しました: %v",

		// Backends
		"Indexed %d packets in %d streams": "%d パケットを %d ストリームから索引化しました",
		"Decoder for %q disabled":          "%q のデコーダを無効化しました",
		"Wrote %d frames (%dx%d %s) to %s": "%d フレーム (%dx%d %s) を %s に書き込みました",
		"Using cached %s":                  "キャッシュ済みの %s を使用します",
		"Downloading %s":                   "%s をダウンロード中",
		"Downloaded %d bytes to %s":        "%d バイトを %s にダウンロードしました",
	})
}
