package avatar

import (
	"fmt"
	"strconv"

	cmp "maragu.dev/gomponents"
)

// Badge size bounds in pixels. Requests outside the range are clamped so a
// caller can never make the handler emit a degenerate or enormous image.
const (
	MinSize     = 16
	MaxSize     = 256
	DefaultSize = 48
)

// ClampSize normalizes a requested badge edge length. Non-positive values fall
// back to DefaultSize.
func ClampSize(size int) int {
	switch {
	case size <= 0:
		return DefaultSize
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	default:
		return size
	}
}

// Badge renders the label as a standalone square SVG: a rounded rect filled
// with the derived color and the initials centered on top. The name is only
// used for the accessible title.
func Badge(label Label, name string, size int) cmp.Node {
	size = ClampSize(size)

	return cmp.El("svg",
		cmp.Attr("xmlns", "http://www.w3.org/2000/svg"),
		cmp.Attr("width", strconv.Itoa(size)),
		cmp.Attr("height", strconv.Itoa(size)),
		cmp.Attr("viewBox", fmt.Sprintf("0 0 %d %d", size, size)),
		cmp.Attr("role", "img"),
		cmp.El("title", cmp.Text(name)),
		cmp.El("rect",
			cmp.Attr("width", "100%"),
			cmp.Attr("height", "100%"),
			cmp.Attr("rx", strconv.Itoa(size/8)),
			cmp.Attr("fill", label.Color),
		),
		cmp.El("text",
			cmp.Attr("x", "50%"),
			cmp.Attr("y", "50%"),
			cmp.Attr("dy", ".35em"),
			cmp.Attr("text-anchor", "middle"),
			cmp.Attr("fill", "#ffffff"),
			cmp.Attr("font-family", "system-ui, sans-serif"),
			cmp.Attr("font-size", strconv.Itoa(size*2/5)),
			cmp.Attr("font-weight", "600"),
			cmp.Text(label.Initials),
		),
	)
}
