package dawg

// FormRef указывает на форму в таблице парадигм.
type FormRef struct {
	Paradigm uint16
	Form     uint16
}

// WordMatch - найденное словарное слово со всеми его разборами.
type WordMatch struct {
	Word       string
	Forms      []FormRef
	StutterCnt int
	TyposCnt   int
}

// Words - словарь словоформ. Payload каждого слова - пары (парадигма, форма).
type Words struct {
	*Graph
}

// NewWords оборачивает граф словаря словоформ.
func NewWords(g *Graph) *Words {
	return &Words{Graph: g}
}

// FindAll ищет слово с допустимыми заменами букв, заиканиями и опечатками.
func (w *Words) FindAll(word string, replacements map[rune]rune, maxStutter, maxTypos int) []WordMatch {
	matches := w.Graph.FindAll(word, FuzzyOptions{
		Replacements: replacements,
		MaxStutter:   maxStutter,
		MaxTypos:     maxTypos,
	})
	if len(matches) == 0 {
		return nil
	}
	out := make([]WordMatch, 0, len(matches))
	for _, m := range matches {
		forms := make([]FormRef, 0, len(m.Payload)/2)
		for i := 0; i+1 < len(m.Payload); i += 2 {
			forms = append(forms, FormRef{Paradigm: uint16(m.Payload[i]), Form: uint16(m.Payload[i+1])})
		}
		out = append(out, WordMatch{
			Word:       m.Key,
			Forms:      forms,
			StutterCnt: m.StutterCnt,
			TyposCnt:   m.TyposCnt,
		})
	}
	return out
}

// AddWord добавляет в построитель словоформу word с разбором (paradigm, form).
func AddWord(b *Builder, word string, paradigm, form uint16) {
	b.Add(word, uint32(paradigm), uint32(form))
}

// SuffixStat - правило предсказания: как часто суффикс встречался
// в форме form парадигмы paradigm.
type SuffixStat struct {
	Count    uint32
	Paradigm uint16
	Form     uint16
}

// SuffixMatch - найденный суффикс со статистикой.
type SuffixMatch struct {
	Suffix string
	Stats  []SuffixStat
}

// Suffixes - словарь суффиксов предсказателя. Payload - тройки (частота, парадигма, форма).
type Suffixes struct {
	*Graph
}

// NewSuffixes оборачивает граф суффиксов.
func NewSuffixes(g *Graph) *Suffixes {
	return &Suffixes{Graph: g}
}

// FindAll ищет суффикс без опечаток, но с допустимыми заменами букв.
func (s *Suffixes) FindAll(suffix string, replacements map[rune]rune) []SuffixMatch {
	matches := s.Graph.FindAll(suffix, FuzzyOptions{Replacements: replacements})
	if len(matches) == 0 {
		return nil
	}
	out := make([]SuffixMatch, 0, len(matches))
	for _, m := range matches {
		stats := make([]SuffixStat, 0, len(m.Payload)/3)
		for i := 0; i+2 < len(m.Payload); i += 3 {
			stats = append(stats, SuffixStat{
				Count:    m.Payload[i],
				Paradigm: uint16(m.Payload[i+1]),
				Form:     uint16(m.Payload[i+2]),
			})
		}
		out = append(out, SuffixMatch{Suffix: m.Key, Stats: stats})
	}
	return out
}

// AddSuffix добавляет в построитель правило предсказания.
func AddSuffix(b *Builder, suffix string, count uint32, paradigm, form uint16) {
	b.Add(suffix, count, uint32(paradigm), uint32(form))
}

// CountMatch - ключ и связанное с ним целое значение.
type CountMatch struct {
	Key   string
	Count uint32
}

// Counts - словарь целочисленных значений (например, частот словоформ).
type Counts struct {
	*Graph
}

// NewCounts оборачивает граф частот.
func NewCounts(g *Graph) *Counts {
	return &Counts{Graph: g}
}

// FindAll возвращает значения для точного ключа.
func (c *Counts) FindAll(key string) []CountMatch {
	payload, ok := c.Graph.Get(key)
	if !ok || len(payload) == 0 {
		return nil
	}
	out := make([]CountMatch, 0, len(payload))
	for _, v := range payload {
		out = append(out, CountMatch{Key: key, Count: v})
	}
	return out
}
