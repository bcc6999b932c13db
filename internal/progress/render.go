package progress

import (
	"fmt"
	"strings"
)

const (
	// itemWidth bounds the identifier column of a status row.
	itemWidth = 44
	// truncPrefix and truncSuffix are the retained head/tail lengths when an
	// identifier exceeds itemWidth.
	truncPrefix = 24
	truncSuffix = 17
	ellipsis    = "..."
)

// Render produces a deterministic fixed-width bar plus integer percentage,
// e.g. "[############------------------]  40%". filled is
// floor(current*width/total) clamped to width; an empty universe renders as
// complete.
func Render(current, total, width int) string {
	if width < 1 {
		width = 1
	}
	if current < 0 {
		current = 0
	}

	filled := width
	percent := 100
	if total > 0 {
		filled = current * width / total
		if filled > width {
			filled = width
		}
		percent = current * 100 / total
		if percent > 100 {
			percent = 100
		}
	}

	var b strings.Builder
	b.Grow(width + 8)
	b.WriteByte('[')
	b.WriteString(strings.Repeat("#", filled))
	b.WriteString(strings.Repeat("-", width-filled))
	b.WriteByte(']')
	fmt.Fprintf(&b, " %3d%%", percent)
	return b.String()
}

// Row formats one status line for a completed item: truncated identifier,
// bar, and status label. Pure formatting, no shared state.
func Row(item string, current, total, width int, status string) string {
	return fmt.Sprintf("%-*s %s %s", itemWidth, TruncateItem(item, itemWidth), Render(current, total, width), status)
}

// TruncateItem bounds an identifier to max characters by keeping a fixed
// head and tail joined with an ellipsis. Short identifiers pass through
// unchanged.
func TruncateItem(item string, max int) string {
	if max < len(ellipsis)+2 || len(item) <= max {
		return item
	}
	head := truncPrefix
	tail := truncSuffix
	if head+tail+len(ellipsis) > max {
		head = (max - len(ellipsis)) / 2
		tail = max - len(ellipsis) - head
	}
	return item[:head] + ellipsis + item[len(item)-tail:]
}
