package media

import (
	"encoding/base64"
	"fmt"
	"strings"

	"convstore/pkg/logger"
	"convstore/pkg/models"
)

// File is the descriptor handed over by the host environment's file
// picker: raw bytes plus the declared media type and filename.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Classify maps a declared media type onto an attachment kind. Anything
// that is neither an image nor a video is treated as a document, matching
// the client's upload handling.
func Classify(contentType string) models.AttachmentKind {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.AttachmentImage
	case strings.HasPrefix(contentType, "video/"):
		return models.AttachmentVideo
	default:
		return models.AttachmentDocument
	}
}

// Process validates and decodes a picked file into an attachment. For
// video the duration label is derived from the decoded container before
// the attachment is built; a file that cannot be decoded aborts the whole
// attach operation and no message is created.
func Process(f File) (models.Attachment, error) {
	if f.Name == "" {
		return models.Attachment{}, fmt.Errorf("media: missing filename")
	}
	if len(f.Data) == 0 {
		return models.Attachment{}, fmt.Errorf("media: empty file %s", f.Name)
	}
	att := models.Attachment{
		Kind: Classify(f.ContentType),
		URL:  DataURL(f.ContentType, f.Data),
		Name: f.Name,
		Size: int64(len(f.Data)),
	}
	if att.Kind == models.AttachmentVideo {
		dur, err := VideoDuration(f.ContentType, f.Data)
		if err != nil {
			logger.Warn("media_decode_failed", "name", f.Name, "type", f.ContentType, "error", err)
			return models.Attachment{}, fmt.Errorf("media: decode %s: %w", f.Name, err)
		}
		att.Duration = DurationLabel(dur)
	}
	return att, nil
}

// DataURL encodes the bytes as a data URL, the opaque reference format the
// client stores for uploaded media.
func DataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DurationLabel renders whole seconds as the "m:ss" label shown on video
// bubbles.
func DurationLabel(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
