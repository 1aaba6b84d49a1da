package display

import (
	"io"
	"strings"
)

// RenderBoard writes the server's ASCII board with colored pieces.
// The first and last lines carry the file letters.
func RenderBoard(w io.Writer, asciiBoard string) {
	lines := strings.Split(strings.TrimRight(asciiBoard, "\n"), "\n")
	var sb strings.Builder

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		isFileLine := i == 0 || i == len(lines)-1

		for _, char := range line {
			switch {
			case char >= 'a' && char <= 'h' && isFileLine:
				sb.WriteString(Cyan + string(char) + Reset)
			case char >= 'A' && char <= 'Z':
				// White pieces
				sb.WriteString(Blue + string(char) + Reset)
			case char >= 'a' && char <= 'z':
				// Black pieces
				sb.WriteString(Red + string(char) + Reset)
			case char >= '1' && char <= '8':
				sb.WriteString(Cyan + string(char) + Reset)
			default:
				sb.WriteRune(char)
			}
		}
		sb.WriteByte('\n')
	}
	io.WriteString(w, sb.String())
}

// ColorForTurn returns colored turn indicator
func ColorForTurn(turn string) string {
	if turn == "w" {
		return Blue + "White" + Reset
	}
	return Red + "Black" + Reset
}
