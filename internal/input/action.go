package input

// Action is a widget-level operation decoded from a key event.
type Action int

const (
	ActionUnknown Action = iota
	// ActionClose ends the session; closing always commits.
	ActionClose

	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd

	ActionInsertRune
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteCharForward
	ActionDeleteCharBackward

	ActionUndo
	ActionRedo
)

// ActionEvent is a decoded key event.
type ActionEvent struct {
	Action Action
	Rune   rune // ActionInsertRune only
}
