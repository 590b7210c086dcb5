package playback

import (
	"github.com/user/vidplay/pkg/ports"
)

// SelectedStreams holds the chosen video and audio streams.
type SelectedStreams struct {
	Video ports.StreamInfo
	Audio ports.StreamInfo
}

// SelectStreams picks the first video and the first audio stream.
// Later streams of the same kind are logged and ignored. Both kinds are
// required even though audio is never decoded.
func SelectStreams(streams []ports.StreamInfo, logger ports.Logger) (SelectedStreams, error) {
	var sel SelectedStreams
	haveVideo, haveAudio := false, false

	for _, s := range streams {
		switch s.Kind {
		case ports.StreamVideo:
			if haveVideo {
				logger.Warn("Ignoring extra video stream %d", s.Index)
				continue
			}
			sel.Video, haveVideo = s, true
		case ports.StreamAudio:
			if haveAudio {
				logger.Warn("Ignoring extra audio stream %d", s.Index)
				continue
			}
			sel.Audio, haveAudio = s, true
		}
	}

	if !haveVideo {
		return SelectedStreams{}, ErrNoVideoStream
	}
	if !haveAudio {
		return SelectedStreams{}, ErrNoAudioStream
	}
	return sel, nil
}
