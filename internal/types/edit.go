package types

// TextEdit replaces the text covered by Range with Text.
type TextEdit struct {
	Range Range
	Text  string
	// ForceMoveMarkers pushes selections sitting at the edit boundary to the
	// end of the inserted text.
	ForceMoveMarkers bool
}
