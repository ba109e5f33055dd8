package router

// Position is a scroll offset in pixels.
type Position struct {
	Left int
	Top  int
}

var Top = Position{}

// ScrollBehavior restores a saved offset when the history entry has one, otherwise it
// scrolls to the top of the page.
func ScrollBehavior(saved *Position) Position {
	if saved != nil {
		return *saved
	}
	return Top
}
