package media

import (
	"encoding/binary"
	"strings"
	"testing"

	"convstore/pkg/models"
)

func box(typ string, payload []byte) []byte {
	out := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint32(out[0:4], uint32(8+len(payload)))
	copy(out[4:8], typ)
	copy(out[8:], payload)
	return out
}

func mvhdV0(timescale, duration uint32) []byte {
	p := make([]byte, 20)
	binary.BigEndian.PutUint32(p[12:16], timescale)
	binary.BigEndian.PutUint32(p[16:20], duration)
	return box("mvhd", p)
}

func mvhdV1(timescale uint32, duration uint64) []byte {
	p := make([]byte, 32)
	p[0] = 1
	binary.BigEndian.PutUint32(p[20:24], timescale)
	binary.BigEndian.PutUint64(p[24:32], duration)
	return box("mvhd", p)
}

func sampleMP4(mvhd []byte) []byte {
	out := box("ftyp", []byte("isom\x00\x00\x02\x00isomiso2"))
	return append(out, box("moov", mvhd)...)
}

func TestClassify(t *testing.T) {
	cases := map[string]models.AttachmentKind{
		"image/png":       models.AttachmentImage,
		"image/jpeg":      models.AttachmentImage,
		"video/mp4":       models.AttachmentVideo,
		"application/pdf": models.AttachmentDocument,
		"text/plain":      models.AttachmentDocument,
		"":                models.AttachmentDocument,
	}
	for ct, want := range cases {
		if got := Classify(ct); got != want {
			t.Fatalf("Classify(%q) = %q; want %q", ct, got, want)
		}
	}
}

func TestDurationLabel(t *testing.T) {
	cases := map[int]string{
		0:   "0:00",
		9:   "0:09",
		65:  "1:05",
		600: "10:00",
		-3:  "0:00",
	}
	for in, want := range cases {
		if got := DurationLabel(in); got != want {
			t.Fatalf("DurationLabel(%d) = %q; want %q", in, got, want)
		}
	}
}

func TestMP4DurationV0(t *testing.T) {
	// 90 ticks at timescale 30 is 3 seconds
	d, err := VideoDuration("video/mp4", sampleMP4(mvhdV0(30, 90)))
	if err != nil {
		t.Fatalf("VideoDuration: %v", err)
	}
	if d != 3 {
		t.Fatalf("duration = %d; want 3", d)
	}
}

func TestMP4DurationV1Rounds(t *testing.T) {
	// 95 ticks at timescale 30 is 3.17s, rounded to 3
	d, err := VideoDuration("video/quicktime", sampleMP4(mvhdV1(30, 95)))
	if err != nil {
		t.Fatalf("VideoDuration: %v", err)
	}
	if d != 3 {
		t.Fatalf("duration = %d; want 3", d)
	}
}

func TestVideoDurationRejectsGarbage(t *testing.T) {
	if _, err := VideoDuration("video/mp4", []byte("definitely not a container")); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := VideoDuration("video/webm", sampleMP4(mvhdV0(30, 90))); err == nil {
		t.Fatalf("unsupported container should fail")
	}
	if _, err := VideoDuration("video/mp4", sampleMP4(mvhdV0(0, 90))); err == nil {
		t.Fatalf("zero timescale should fail")
	}
}

func TestProcessImage(t *testing.T) {
	att, err := Process(File{Name: "photo.png", ContentType: "image/png", Data: []byte{1, 2, 3}})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if att.Kind != models.AttachmentImage || att.Name != "photo.png" || att.Size != 3 {
		t.Fatalf("unexpected attachment: %+v", att)
	}
	if !strings.HasPrefix(att.URL, "data:image/png;base64,") {
		t.Fatalf("unexpected url %q", att.URL)
	}
	if att.Duration != "" {
		t.Fatalf("images carry no duration label")
	}
}

func TestProcessVideoSetsDuration(t *testing.T) {
	att, err := Process(File{Name: "clip.mp4", ContentType: "video/mp4", Data: sampleMP4(mvhdV0(1, 65))})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if att.Kind != models.AttachmentVideo || att.Duration != "1:05" {
		t.Fatalf("unexpected attachment: %+v", att)
	}
}

func TestProcessAbandonsUndecodableVideo(t *testing.T) {
	if _, err := Process(File{Name: "clip.mp4", ContentType: "video/mp4", Data: []byte("junk junk junk")}); err == nil {
		t.Fatalf("undecodable video must abort the attach")
	}
}

func TestProcessRejectsEmptyInput(t *testing.T) {
	if _, err := Process(File{ContentType: "image/png", Data: []byte{1}}); err == nil {
		t.Fatalf("missing filename must fail")
	}
	if _, err := Process(File{Name: "a.png", ContentType: "image/png"}); err == nil {
		t.Fatalf("empty file must fail")
	}
}
