package media

import (
	"fmt"
	"math"
	"sort"

	"github.com/tubegrab/tubegrab/internal/ytdlp"
)

// VideoFormat is one selectable video rendition in the /api/info response.
type VideoFormat struct {
	Height         int    `json:"height"`
	Label          string `json:"label"`
	FilesizeApprox int64  `json:"filesize_approx"`
}

// AudioFormat is one selectable audio rendition in the /api/info response.
type AudioFormat struct {
	Quality string `json:"quality"`
	Label   string `json:"label"`
	Bitrate int    `json:"-"`
}

// VideoFormats deduplicates the engine's format list by height (first
// occurrence wins) and sorts descending. Video-only renditions get the best
// audio size added to the estimate since the final output requires muxing.
func VideoFormats(info *ytdlp.Info) []VideoFormat {
	audioSize := bestAudioSize(info)
	seen := make(map[int]bool)
	formats := make([]VideoFormat, 0)

	for _, f := range info.Formats {
		if !f.IsVideo() || seen[f.Height] {
			continue
		}
		seen[f.Height] = true

		bitrate := f.TBR
		if bitrate == 0 {
			bitrate = f.VBR
		}

		size := directSize(f)
		if size == 0 {
			size = estimateFromBitrate(bitrate, info.Duration)
		}

		if f.Acodec == "none" {
			size += audioSize
		}

		formats = append(formats, VideoFormat{
			Height:         f.Height,
			Label:          fmt.Sprintf("%dp", f.Height),
			FilesizeApprox: int64(size),
		})
	}

	sort.Slice(formats, func(i, j int) bool {
		return formats[i].Height > formats[j].Height
	})

	return formats
}

// AudioFormats buckets audio-only renditions by bitrate rounded to the
// nearest 16 kbps and sorts descending. 127 and 130 both land in the 128
// bucket and appear once.
func AudioFormats(info *ytdlp.Info) []AudioFormat {
	seen := make(map[int]bool)
	formats := make([]AudioFormat, 0)

	for _, f := range info.Formats {
		if !f.IsAudioOnly() {
			continue
		}

		abr := int(math.Round(f.ABR/16) * 16)
		if abr == 0 || seen[abr] {
			continue
		}
		seen[abr] = true

		formats = append(formats, AudioFormat{
			Quality: fmt.Sprintf("%dk", abr),
			Label:   fmt.Sprintf("%dkbps", abr),
			Bitrate: abr,
		})
	}

	sort.Slice(formats, func(i, j int) bool {
		return formats[i].Bitrate > formats[j].Bitrate
	})

	return formats
}

// bestAudioSize finds the largest audio-only rendition's size estimate, used
// to pad video-only renditions that still need an audio stream muxed in.
func bestAudioSize(info *ytdlp.Info) float64 {
	var best float64
	for _, f := range info.Formats {
		if !f.IsAudioOnly() {
			continue
		}

		size := directSize(f)
		if size == 0 {
			size = estimateFromBitrate(f.ABR, info.Duration)
		}
		if size > best {
			best = size
		}
	}
	return best
}

func directSize(f ytdlp.Format) float64 {
	if f.Filesize > 0 {
		return float64(f.Filesize)
	}
	return float64(f.FilesizeApprox)
}

// estimateFromBitrate derives a byte count from kbps and seconds.
func estimateFromBitrate(kbps, duration float64) float64 {
	if kbps == 0 || duration == 0 {
		return 0
	}
	return kbps * 1024 * duration / 8
}
