package dawg

// Match - результат нечеткого поиска: найденный ключ, его payload
// и число исправлений, которые понадобились, чтобы к нему прийти.
type Match struct {
	Key        string
	Payload    []uint32
	StutterCnt int
	TyposCnt   int
}

// FuzzyOptions задает допустимые исправления при поиске.
type FuzzyOptions struct {
	// Replacements: буква во входном слове -> буква в словаре, которой ей
	// разрешено соответствовать без штрафа (например, 'е' -> 'ё').
	Replacements map[rune]rune
	MaxStutter   int
	MaxTypos     int
}

// FindAll ищет в графе все ключи, достижимые из word с учетом опций.
// Порядок результатов - порядок обхода в глубину (точные переходы раньше
// исправлений); если ключ достижим несколькими путями, остается вариант
// с наименьшим числом опечаток, затем заиканий, на месте первой находки.
func (g *Graph) FindAll(word string, opts FuzzyOptions) []Match {
	if len(g.nodes) == 0 {
		return nil
	}
	s := &searcher{
		g:    g,
		word: []rune(word),
		opts: opts,
		seen: make(map[string]int),
	}
	s.walk(0, 0, 0, 0)
	return s.results
}

type searcher struct {
	g       *Graph
	word    []rune
	opts    FuzzyOptions
	buf     []rune
	results []Match
	seen    map[string]int
}

func (s *searcher) walk(node uint32, pos, stutter, typos int) {
	if pos == len(s.word) && s.g.nodes[node].IsFinal() {
		s.record(node, stutter, typos)
	}

	if pos < len(s.word) {
		c := s.word[pos]

		s.step(node, c, pos+1, stutter, typos)
		if r, ok := s.opts.Replacements[c]; ok && r != c {
			s.step(node, r, pos+1, stutter, typos)
		}

		// Заикание: повтор предыдущей буквы ("нееет") или повтор через дефис ("не-е-ет").
		if stutter < s.opts.MaxStutter && pos > 0 {
			if c == s.word[pos-1] {
				s.walk(node, pos+1, stutter+1, typos)
			} else if c == '-' && pos+1 < len(s.word) && s.word[pos+1] == s.word[pos-1] {
				s.walk(node, pos+2, stutter+1, typos)
			}
		}
	}

	if typos >= s.opts.MaxTypos {
		return
	}

	if pos < len(s.word) {
		c := s.word[pos]

		// Лишняя буква во входном слове.
		s.walk(node, pos+1, stutter, typos+1)

		// Не та буква: допускаем только соседние клавиши.
		for _, edge := range s.g.edgesOf(node) {
			if edge.Char != c && isNeighbourKey(c, edge.Char) {
				s.push(edge.Char)
				s.walk(edge.NodeID, pos+1, stutter, typos+1)
				s.pop()
			}
		}

		// Переставленные соседние буквы.
		if pos+1 < len(s.word) && s.word[pos+1] != c {
			if first, ok := s.g.child(node, s.word[pos+1]); ok {
				if second, ok := s.g.child(first, c); ok {
					s.push(s.word[pos+1])
					s.push(c)
					s.walk(second, pos+2, stutter, typos+1)
					s.pop()
					s.pop()
				}
			}
		}
	}

	// Пропущенная буква.
	for _, edge := range s.g.edgesOf(node) {
		s.push(edge.Char)
		s.walk(edge.NodeID, pos, stutter, typos+1)
		s.pop()
	}
}

// step выполняет переход по символу char без штрафа.
func (s *searcher) step(node uint32, char rune, next, stutter, typos int) {
	child, ok := s.g.child(node, char)
	if !ok {
		return
	}
	s.push(char)
	s.walk(child, next, stutter, typos)
	s.pop()
}

func (s *searcher) push(char rune) {
	s.buf = append(s.buf, char)
}

func (s *searcher) pop() {
	s.buf = s.buf[:len(s.buf)-1]
}

func (s *searcher) record(node uint32, stutter, typos int) {
	key := string(s.buf)
	if idx, ok := s.seen[key]; ok {
		prev := &s.results[idx]
		if typos < prev.TyposCnt || (typos == prev.TyposCnt && stutter < prev.StutterCnt) {
			prev.StutterCnt, prev.TyposCnt = stutter, typos
		}
		return
	}
	s.seen[key] = len(s.results)
	s.results = append(s.results, Match{
		Key:        key,
		Payload:    s.g.payload(node),
		StutterCnt: stutter,
		TyposCnt:   typos,
	})
}
