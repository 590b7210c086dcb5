package mp4container

import (
	"bytes"
	"encoding/binary"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/vidplay/pkg/ports"
)

// Offsets into an encoded sample entry, counted from the start of the box header.
const (
	visualWidthOffset   = 32
	visualHeightOffset  = 34
	audioChannelsOffset = 24
	audioRateOffset     = 32
	minEntrySize        = 36
)

// describeSampleEntry fills codec and format fields from an stsd child.
func describeSampleEntry(info *ports.StreamInfo, entry mp4.Box) {
	info.Codec = entry.Type()

	switch e := entry.(type) {
	case *mp4.VisualSampleEntryBox:
		info.Width = int(e.Width)
		info.Height = int(e.Height)
		return
	case *mp4.AudioSampleEntryBox:
		info.SampleRate = int(e.SampleRate)
		info.Channels = int(e.ChannelCount)
		return
	}

	// mp4ff leaves unregistered four-CCs (jpeg, png, raw ) undecoded.
	// Their common sample entry header is still readable from the raw bytes.
	var buf bytes.Buffer
	if err := entry.Encode(&buf); err != nil {
		return
	}
	raw := buf.Bytes()
	if len(raw) < minEntrySize {
		return
	}

	switch info.Kind {
	case ports.StreamVideo:
		info.Width = int(binary.BigEndian.Uint16(raw[visualWidthOffset:]))
		info.Height = int(binary.BigEndian.Uint16(raw[visualHeightOffset:]))
	case ports.StreamAudio:
		info.Channels = int(binary.BigEndian.Uint16(raw[audioChannelsOffset:]))
		info.SampleRate = int(binary.BigEndian.Uint16(raw[audioRateOffset:]))
	}
}
