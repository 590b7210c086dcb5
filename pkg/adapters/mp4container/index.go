package mp4container

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/vidplay/pkg/ports"
)

// ErrMissingTrex is returned for multi-track fragments without track defaults.
var ErrMissingTrex = errors.New("mp4container: fragment has several tracks but no trex boxes")

// sampleIsNonSync is the sample_is_non_sync_sample bit of ISO/IEC 14496-12 sample flags.
const sampleIsNonSync = 0x00010000

// packetRef locates one sample. Progressive samples are read from the file on
// demand; fragmented samples are already in memory.
type packetRef struct {
	stream     int
	sampleNr   uint32
	offset     uint64
	size       uint32
	decodeTime uint64
	dur        uint32
	sync       bool
	inMemory   bool
	data       []byte
}

// build describes every track and indexes every sample of the file.
func (c *Container) build(f *mp4.File) error {
	moov := f.Moov
	if moov == nil && f.Init != nil {
		moov = f.Init.Moov
	}
	if moov == nil {
		return ErrNoMovie
	}

	trackIndex := make(map[uint32]int)
	for i, trak := range moov.Traks {
		c.streams = append(c.streams, describeTrack(i, trak))
		if trak.Tkhd != nil {
			trackIndex[trak.Tkhd.TrackID] = i
		}
	}

	var err error
	if f.IsFragmented() {
		c.packets, err = indexFragmented(f, moov, trackIndex, c.streams)
	} else {
		c.packets, err = indexProgressive(moov)
	}
	if err != nil {
		return err
	}

	deriveTiming(c.streams, c.packets)
	return nil
}

func describeTrack(index int, trak *mp4.TrakBox) ports.StreamInfo {
	info := ports.StreamInfo{
		Index:     index,
		Kind:      ports.StreamOther,
		Timescale: 1000,
	}
	if trak.Mdia == nil {
		return info
	}
	if trak.Mdia.Hdlr != nil {
		switch trak.Mdia.Hdlr.HandlerType {
		case "vide":
			info.Kind = ports.StreamVideo
		case "soun":
			info.Kind = ports.StreamAudio
		}
	}
	if trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale > 0 {
		info.Timescale = trak.Mdia.Mdhd.Timescale
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return info
	}
	stsd := trak.Mdia.Minf.Stbl.Stsd
	if len(stsd.Children) > 0 {
		describeSampleEntry(&info, stsd.Children[0])
	}
	return info
}

func indexProgressive(moov *mp4.MoovBox) ([]packetRef, error) {
	var refs []packetRef

	for i, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
			continue
		}
		stbl := trak.Mdia.Minf.Stbl
		if stbl.Stsz == nil {
			continue
		}

		// Build sync sample set (keyframes)
		syncSamples := make(map[uint32]bool)
		if stbl.Stss != nil {
			for _, sampleNr := range stbl.Stss.SampleNumber {
				syncSamples[sampleNr] = true
			}
		}

		err := walkSamples(stbl, func(sampleNr uint32, offset uint64, size uint32, decodeTime uint64, dur uint32) {
			refs = append(refs, packetRef{
				stream:     i,
				sampleNr:   sampleNr,
				offset:     offset,
				size:       size,
				decodeTime: decodeTime,
				dur:        dur,
				sync:       syncSamples[sampleNr] || len(syncSamples) == 0,
			})
		})
		if err != nil {
			return nil, fmt.Errorf("index track %d: %w", i, err)
		}
	}

	// Interleave tracks the way they are laid out in mdat.
	sort.SliceStable(refs, func(a, b int) bool {
		return refs[a].offset < refs[b].offset
	})
	return refs, nil
}

// walkSamples visits every sample of a progressive track in order. Chunk
// offsets and decode times are accumulated as it goes, so a track is indexed
// in one pass however its samples are grouped into chunks.
func walkSamples(stbl *mp4.StblBox, fn func(sampleNr uint32, offset uint64, size uint32, decodeTime uint64, dur uint32)) error {
	if stbl.Stsc == nil || len(stbl.Stsc.Entries) == 0 {
		return fmt.Errorf("missing stsc box")
	}

	total := stbl.Stsz.SampleNumber
	durations := sttsCursor{stts: stbl.Stts}
	sampleNr := uint32(1)
	var decodeTime uint64

	entries := stbl.Stsc.Entries
	for i, entry := range entries {
		if entry.SamplesPerChunk == 0 {
			return fmt.Errorf("stsc entry %d has no samples", i+1)
		}
		lastChunk := uint32(math.MaxUint32)
		if i+1 < len(entries) {
			lastChunk = entries[i+1].FirstChunk - 1
		}

		for chunk := entry.FirstChunk; chunk <= lastChunk && sampleNr <= total; chunk++ {
			offset, err := chunkOffset(stbl, int(chunk))
			if err != nil {
				return fmt.Errorf("locate sample %d: %w", sampleNr, err)
			}
			for n := uint32(0); n < entry.SamplesPerChunk && sampleNr <= total; n++ {
				size := stbl.Stsz.GetSampleSize(int(sampleNr))
				dur := durations.next()
				fn(sampleNr, offset, size, decodeTime, dur)

				offset += uint64(size)
				decodeTime += uint64(dur)
				sampleNr++
			}
		}
	}

	if sampleNr <= total {
		return fmt.Errorf("stsc maps %d of %d samples", sampleNr-1, total)
	}
	return nil
}

// chunkOffset returns the file offset of a 1-based chunk from stco or co64.
func chunkOffset(stbl *mp4.StblBox, chunkNr int) (uint64, error) {
	switch {
	case stbl.Stco != nil:
		return stbl.Stco.GetOffset(chunkNr)
	case stbl.Co64 != nil:
		if chunkNr < 1 || chunkNr > len(stbl.Co64.ChunkOffset) {
			return 0, fmt.Errorf("chunk nr %d out of range", chunkNr)
		}
		return stbl.Co64.ChunkOffset[chunkNr-1], nil
	default:
		return 0, fmt.Errorf("no stco or co64 box")
	}
}

// sttsCursor yields sample durations in order from the run-length stts table.
type sttsCursor struct {
	stts  *mp4.SttsBox
	entry int
	used  uint32
}

func (c *sttsCursor) next() uint32 {
	if c.stts == nil {
		return 0
	}
	for c.entry < len(c.stts.SampleCount) && c.used >= c.stts.SampleCount[c.entry] {
		c.entry++
		c.used = 0
	}
	if c.entry >= len(c.stts.SampleCount) || c.entry >= len(c.stts.SampleTimeDelta) {
		return 0
	}
	c.used++
	return c.stts.SampleTimeDelta[c.entry]
}

func indexFragmented(f *mp4.File, moov *mp4.MoovBox, trackIndex map[uint32]int, streams []ports.StreamInfo) ([]packetRef, error) {
	trexs := make(map[uint32]*mp4.TrexBox)
	if moov.Mvex != nil {
		for _, t := range moov.Mvex.Trexs {
			trexs[t.TrackID] = t
		}
	}

	var refs []packetRef
	sampleNrs := make(map[int]uint32)

	for _, seg := range f.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}

			var fragRefs []packetRef
			for _, traf := range frag.Moof.Trafs {
				stream, ok := trackIndex[traf.Tfhd.TrackID]
				if !ok {
					continue
				}
				trex := trexs[traf.Tfhd.TrackID]
				if trex == nil && len(frag.Moof.Trafs) > 1 {
					return nil, ErrMissingTrex
				}

				samples, err := frag.GetFullSamples(trex)
				if err != nil {
					return nil, fmt.Errorf("get samples: %w", err)
				}

				for _, sample := range samples {
					sampleNrs[stream]++
					fragRefs = append(fragRefs, packetRef{
						stream:     stream,
						sampleNr:   sampleNrs[stream],
						size:       sample.Size,
						decodeTime: sample.DecodeTime,
						dur:        sample.Dur,
						sync:       sample.Flags&sampleIsNonSync == 0,
						inMemory:   true,
						data:       sample.Data,
					})
				}
			}

			// Within one fragment, deliver samples of all tracks in time order.
			sort.SliceStable(fragRefs, func(a, b int) bool {
				return refSeconds(fragRefs[a], streams) < refSeconds(fragRefs[b], streams)
			})
			refs = append(refs, fragRefs...)
		}
	}

	return refs, nil
}

func refSeconds(ref packetRef, streams []ports.StreamInfo) float64 {
	return float64(ref.decodeTime) / float64(streams[ref.stream].Timescale)
}

// deriveTiming fills frame rate and duration from the indexed samples.
func deriveTiming(streams []ports.StreamInfo, refs []packetRef) {
	total := make([]uint64, len(streams))
	firstDur := make([]uint32, len(streams))

	for _, ref := range refs {
		total[ref.stream] += uint64(ref.dur)
		if firstDur[ref.stream] == 0 {
			firstDur[ref.stream] = ref.dur
		}
	}

	for i := range streams {
		ts := streams[i].Timescale
		streams[i].Duration = float64(total[i]) / float64(ts)
		if streams[i].Kind == ports.StreamVideo && firstDur[i] > 0 {
			streams[i].FrameRate = ports.Rational{Num: ts, Den: firstDur[i]}
		}
	}
}
