// Package render draws boards for the terminal.
package render

import (
	"fmt"
	"strings"

	"reversi/game"
)

const Highlight = "🔴"

// Palette holds one symbol per stone, index 0 is the empty cell.
var Palette = []string{"🟩", "⚫", "⚪", "🔵", "🟡", "🟠", "🟣", "🟤", "🟢"}

// Emoji draws one row per line. A non-empty highlight marks its legal placements and adds a
// "put: <stone>" header line. Boards with more stones than the palette fall back to digits.
func Emoji(b *game.Board, highlight game.Stone) string {
	if b.StoneCount() >= len(Palette) {
		return b.String()
	}

	symbols := map[game.Position]string{}
	for stone := 1; stone <= b.StoneCount(); stone++ {
		for _, pos := range b.PositionsOf(game.Stone(stone)) {
			symbols[pos] = Palette[stone]
		}
	}

	var sb strings.Builder
	if highlight != game.Empty {
		for _, pos := range b.LegalPlacements(highlight) {
			symbols[pos] = Highlight
		}
		fmt.Fprintf(&sb, "put: %d\n", highlight)
	}
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			symbol, ok := symbols[game.Position{X: x, Y: y}]
			if !ok {
				symbol = Palette[game.Empty]
			}
			sb.WriteString(symbol)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
