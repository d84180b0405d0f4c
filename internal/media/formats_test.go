package media

import (
	"testing"

	"github.com/tubegrab/tubegrab/internal/ytdlp"
)

func TestVideoFormats_DedupedByHeight(t *testing.T) {
	info := &ytdlp.Info{
		Duration: 100,
		Formats: []ytdlp.Format{
			{Height: 1080, Vcodec: "avc1", Acodec: "none", Filesize: 1000},
			{Height: 1080, Vcodec: "vp9", Acodec: "none", Filesize: 900},
			{Height: 720, Vcodec: "avc1", Acodec: "mp4a", Filesize: 500},
		},
	}

	formats := VideoFormats(info)
	if len(formats) != 2 {
		t.Fatalf("got %d formats, expected 2", len(formats))
	}

	// Descending by height, first occurrence wins
	if formats[0].Height != 1080 || formats[1].Height != 720 {
		t.Errorf("heights = %d, %d; expected 1080, 720", formats[0].Height, formats[1].Height)
	}
	if formats[0].FilesizeApprox != 1000 {
		t.Errorf("first 1080 format should win, size = %d, expected 1000", formats[0].FilesizeApprox)
	}
	if formats[0].Label != "1080p" {
		t.Errorf("label = %q, expected 1080p", formats[0].Label)
	}
}

func TestVideoFormats_SizeFallbackFromBitrate(t *testing.T) {
	info := &ytdlp.Info{
		Duration: 60,
		Formats: []ytdlp.Format{
			{Height: 720, Vcodec: "avc1", Acodec: "mp4a", TBR: 2000},
		},
	}

	formats := VideoFormats(info)
	if len(formats) != 1 {
		t.Fatalf("got %d formats, expected 1", len(formats))
	}

	// bitrate_kbps * 1024 * duration_seconds / 8
	expected := int64(2000 * 1024 * 60 / 8)
	if formats[0].FilesizeApprox != expected {
		t.Errorf("size = %d, expected %d", formats[0].FilesizeApprox, expected)
	}
}

func TestVideoFormats_VideoOnlyAddsBestAudioSize(t *testing.T) {
	info := &ytdlp.Info{
		Duration: 100,
		Formats: []ytdlp.Format{
			{Vcodec: "none", Acodec: "opus", Filesize: 300},
			{Vcodec: "none", Acodec: "mp4a", Filesize: 400},
			{Height: 1080, Vcodec: "avc1", Acodec: "none", Filesize: 5000},
		},
	}

	formats := VideoFormats(info)
	if len(formats) != 1 {
		t.Fatalf("got %d formats, expected 1", len(formats))
	}
	if formats[0].FilesizeApprox != 5400 {
		t.Errorf("size = %d, expected 5000+400=5400", formats[0].FilesizeApprox)
	}
}

func TestAudioFormats_BitrateBucketing(t *testing.T) {
	info := &ytdlp.Info{
		Formats: []ytdlp.Format{
			{Vcodec: "none", Acodec: "opus", ABR: 127},
			{Vcodec: "none", Acodec: "mp4a", ABR: 130},
			{Vcodec: "none", Acodec: "opus", ABR: 60},
			{Height: 720, Vcodec: "avc1", Acodec: "mp4a", ABR: 128},
		},
	}

	formats := AudioFormats(info)
	if len(formats) != 2 {
		t.Fatalf("got %d formats, expected 2 (127 and 130 share the 128 bucket)", len(formats))
	}

	// Descending by bitrate
	if formats[0].Quality != "128k" || formats[1].Quality != "64k" {
		t.Errorf("qualities = %q, %q; expected 128k, 64k", formats[0].Quality, formats[1].Quality)
	}
	if formats[0].Label != "128kbps" {
		t.Errorf("label = %q, expected 128kbps", formats[0].Label)
	}
}

func TestAudioFormats_SkipsZeroBitrate(t *testing.T) {
	info := &ytdlp.Info{
		Formats: []ytdlp.Format{
			{Vcodec: "none", Acodec: "opus"},
		},
	}

	if formats := AudioFormats(info); len(formats) != 0 {
		t.Errorf("got %d formats, expected none for unknown bitrate", len(formats))
	}
}
