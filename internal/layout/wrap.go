package layout

import "strings"

// Wrap splits text into the minimal number of lines such that each line
// renders no wider than maxWidth millimetres, breaking only at whitespace.
// A single word wider than maxWidth is emitted on its own line rather than
// split. Word order is preserved and inter-word whitespace is collapsed to
// single spaces.
func Wrap(text string, font Font, size, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	spaceWidth := TextWidth(" ", font, size)

	var lines []string
	current := words[0]
	currentWidth := TextWidth(words[0], font, size)

	for _, word := range words[1:] {
		wordWidth := TextWidth(word, font, size)
		if currentWidth+spaceWidth+wordWidth <= maxWidth {
			current += " " + word
			currentWidth += spaceWidth + wordWidth
			continue
		}
		lines = append(lines, current)
		current = word
		currentWidth = wordWidth
	}

	return append(lines, current)
}

// wrapBullet renders item as a bulleted list entry: the first line carries
// the "• " prefix, continuation lines are drawn indented by the returned
// offset so they align under the bullet text rather than the glyph.
func wrapBullet(item string, font Font, size, maxWidth float64) (lines []string, indent float64) {
	prefix := "• "
	indent = TextWidth(prefix, font, size)

	wrapped := Wrap(item, font, size, maxWidth-indent)
	if len(wrapped) == 0 {
		return nil, indent
	}

	wrapped[0] = prefix + wrapped[0]
	return wrapped, indent
}
