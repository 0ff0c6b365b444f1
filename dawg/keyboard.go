package dawg

// Ряды русской раскладки ЙЦУКЕН. Соседними считаются клавиши слева и справа
// в том же ряду и две ближайшие клавиши в соседних рядах.
var keyboardRows = [...][]rune{
	[]rune("йцукенгшщзхъ"),
	[]rune("фывапролджэ"),
	[]rune("ячсмитьбю"),
}

var keyboardNeighbours = buildNeighbours()

type keyPair struct {
	a, b rune
}

func buildNeighbours() map[keyPair]struct{} {
	type position struct{ row, col int }
	positions := make(map[rune]position)
	for row, keys := range keyboardRows {
		for col, key := range keys {
			positions[key] = position{row, col}
		}
	}

	pairs := make(map[keyPair]struct{})
	for a, pa := range positions {
		for b, pb := range positions {
			if a == b {
				continue
			}
			dr, dc := pb.row-pa.row, pb.col-pa.col
			switch {
			case dr == 0 && (dc == 1 || dc == -1):
			case dr == -1 && (dc == 0 || dc == 1):
			case dr == 1 && (dc == 0 || dc == -1):
			default:
				continue
			}
			pairs[keyPair{a, b}] = struct{}{}
		}
	}
	// ё живет отдельно от основных рядов, считаем ее соседкой е.
	pairs[keyPair{'е', 'ё'}] = struct{}{}
	pairs[keyPair{'ё', 'е'}] = struct{}{}
	return pairs
}

func isNeighbourKey(a, b rune) bool {
	_, ok := keyboardNeighbours[keyPair{a, b}]
	return ok
}
