package asset

import "strings"

// Kind is the transport kind the media host requires per asset. It is
// resolved once from the declared content type at the call site.
type Kind int

const (
	KindGeneric Kind = iota
	KindDocument
	KindAudio
)

// KindFor maps a declared content type to its transport kind.
func KindFor(contentType string) Kind {
	switch {
	case contentType == "application/pdf":
		return KindDocument
	case strings.HasPrefix(contentType, "audio/"):
		return KindAudio
	default:
		return KindGeneric
	}
}

// Segment is the URL path segment the host expects for this kind.
func (k Kind) Segment() string {
	switch k {
	case KindDocument:
		return "raw"
	case KindAudio:
		return "video"
	default:
		return "auto"
	}
}

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindAudio:
		return "audio"
	default:
		return "generic"
	}
}
