package models

// AttachmentKind tags what sort of media an attachment carries. The kind
// decides which optional fields are meaningful: Duration only applies to
// video.
type AttachmentKind string

const (
	AttachmentImage    AttachmentKind = "image"
	AttachmentDocument AttachmentKind = "document"
	AttachmentVideo    AttachmentKind = "video"
)

// Attachment is media bound to a message. Attachments are immutable after
// creation and share their owning message's lifetime.
type Attachment struct {
	Kind AttachmentKind `json:"type"`
	// URL is an opaque data reference (data URL or blob handle).
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	// Duration is a display label ("1:05"), set for video only.
	Duration string `json:"duration,omitempty"`
}
