package deck

import (
	"strconv"
	"strings"
)

// SlideQueryParam carries the 1-based slide number in the deck URL.
const SlideQueryParam = "slide"

// SlideParam is the 1-based query value for index.
func SlideParam(index int) string {
	return strconv.Itoa(index + 1)
}

// ParseSlideParam converts a 1-based query value to a 0-based index within total.
// Malformed values map to the first slide; out-of-range values are clamped.
func ParseSlideParam(raw string, total int) int {
	if total < 1 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return clamp(n-1, total)
}

// Location is the deck URL for index under base.
func Location(base string, index int) string {
	return base + "?" + SlideQueryParam + "=" + SlideParam(index)
}
