package deck

import "math"

// Action is a navigation request from any input source.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrev
	ActionFirst
	ActionLast
)

// SwipeThreshold is the minimum horizontal travel, in pixels, of a swipe.
const SwipeThreshold = 50

// KeyAction maps a key name to an action. DOM key names, the "Space" name the
// browser deck sends for " ", and terminal key names are accepted.
func KeyAction(key string) Action {
	switch key {
	case "ArrowRight", "ArrowDown", "right", "down", " ", "Space", "space", "PageDown", "pgdown", "l", "j":
		return ActionNext
	case "ArrowLeft", "ArrowUp", "left", "up", "PageUp", "pgup", "h", "k":
		return ActionPrev
	case "Home", "home", "g":
		return ActionFirst
	case "End", "end", "G":
		return ActionLast
	default:
		return ActionNone
	}
}

// DetectSwipe classifies a touch gesture from its start-to-end delta. A gesture is a
// swipe only when its horizontal travel exceeds both SwipeThreshold and its vertical
// travel. Swiping left advances.
func DetectSwipe(dx, dy float64) Action {
	ax, ay := math.Abs(dx), math.Abs(dy)
	if ax <= SwipeThreshold || ax <= ay {
		return ActionNone
	}
	if dx < 0 {
		return ActionNext
	}
	return ActionPrev
}
