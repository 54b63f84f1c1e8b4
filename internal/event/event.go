// internal/event/event.go
package event

import (
	"fmt"

	"github.com/bethropolis/fencedit/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Host surface events
	TypeHoverLink      // Pointer rests on a link in the host view
	TypeSurfaceCreated // The host created a UI surface (e.g. a hover popover)

	// Session lifecycle
	TypeSessionBegan
	TypeSessionCommitted

	// TypeNotice carries a user-facing message for the status line.
	TypeNotice
)

var typeNames = map[Type]string{
	TypeUnknown:          "unknown",
	TypeHoverLink:        "hover-link",
	TypeSurfaceCreated:   "surface-created",
	TypeSessionBegan:     "session-began",
	TypeSessionCommitted: "session-committed",
	TypeNotice:           "notice",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// SurfaceHoverPopover is the surface kind of a link hover popover.
const SurfaceHoverPopover = "hover-popover"

// HoverLink describes the link under the pointer. It is passed by value from
// the hover handler to whatever renders the preview.
type HoverLink struct {
	LinkText   string
	SourcePath string
	// Anchor is the screen area of the hovered link.
	Anchor types.Rect
	// Pointer is the pointer position when the hover started.
	Pointer types.Point
}

// HoverLinkData is the payload of TypeHoverLink.
type HoverLinkData struct {
	Link HoverLink
}

// SurfaceCreatedData is the payload of TypeSurfaceCreated. Surface is the
// host object; consumers check it for the capabilities they need.
type SurfaceCreatedData struct {
	Kind    string
	Surface interface{}
	// Link is the hover that caused the surface, if any.
	Link HoverLink
}

// SessionBeganData is the payload of TypeSessionBegan.
type SessionBeganData struct {
	SessionID string
	FilePath  string
	StartLine int
	EndLine   int
}

// SessionCommittedData is the payload of TypeSessionCommitted.
type SessionCommittedData struct {
	SessionID string
	FilePath  string
	Changed   bool
}

// NoticeData is the payload of TypeNotice.
type NoticeData struct {
	Message string
}
