package textarea

import (
	"slices"
	"strconv"
	"unicode"

	rw "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// line is the input to the wrapping function, hashed for memoization.
type line struct {
	content []rune
	width   int
}

func (l line) Hash() string {
	return strconv.Itoa(l.width) + ":" + string(l.content)
}

// wrap soft-wraps content to width cells. Words move to the next row when
// they do not fit, words wider than a row are broken at the cell boundary,
// and whitespace hangs off the end of the row it follows. The returned rows
// concatenate back to content exactly. A width of 0 or less disables
// wrapping. Rows never alias content.
func wrap(content []rune, width int) [][]rune {
	if width <= 0 || len(content) == 0 {
		return [][]rune{slices.Clone(content)}
	}

	var (
		rows  [][]rune
		row   []rune
		rowW  int
		start int
	)
	for start < len(content) {
		space := unicode.IsSpace(content[start])
		end := start
		for end < len(content) && unicode.IsSpace(content[end]) == space {
			end++
		}
		token := content[start:end]
		tokenW := uniseg.StringWidth(string(token))

		switch {
		case space, rowW+tokenW <= width:
			row = append(row, token...)
			rowW += tokenW
		case tokenW <= width:
			rows = append(rows, row)
			row = append([]rune(nil), token...)
			rowW = tokenW
		default:
			for _, r := range token {
				w := rw.RuneWidth(r)
				if rowW > 0 && rowW+w > width {
					rows = append(rows, row)
					row, rowW = nil, 0
				}
				row = append(row, r)
				rowW += w
			}
		}
		start = end
	}
	return append(rows, row)
}

func (m *Model) memoizedWrap(content []rune, width int) [][]rune {
	input := line{content: content, width: width}
	if v, ok := m.cache.Get(input); ok {
		return v
	}
	v := wrap(content, width)
	m.cache.Set(input, v)
	return v
}
