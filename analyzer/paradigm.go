package analyzer

import (
	"fmt"
)

// Приставки, которые парадигма может добавлять к форме (превосходная степень и т.п.).
var paradigmPrefixes = [3]string{"", "по", "наи"}

// Paradigm - упакованная парадигма словоизменения длиной 3×formCnt:
// сначала индексы суффиксов всех форм, затем индексы тегов, затем индексы приставок.
// Срез указывает в общую таблицу и никогда не копируется.
type Paradigm []uint16

// FormCount возвращает число форм в парадигме.
func (p Paradigm) FormCount() int {
	return len(p) / 3
}

func (p Paradigm) SuffixID(form int) uint16 {
	return p[form]
}

func (p Paradigm) TagID(form int) uint16 {
	return p[p.FormCount()+form]
}

func (p Paradigm) PrefixID(form int) uint16 {
	return p[2*p.FormCount()+form]
}

// ParadigmTable - набор парадигм поверх исходного массива paradigms.array:
// ведущее число парадигм, затем для каждой размер и столько же индексов.
type ParadigmTable struct {
	data    []uint16
	offsets []int
}

// NewParadigmTable размечает массив парадигм. Данные не копируются.
func NewParadigmTable(raw []uint16) (*ParadigmTable, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("пустой массив парадигм")
	}
	count := int(raw[0])
	t := &ParadigmTable{data: raw, offsets: make([]int, 0, count+1)}
	pos := 1
	for i := 0; i < count; i++ {
		if pos >= len(raw) {
			return nil, fmt.Errorf("парадигма %d: неожиданный конец данных", i)
		}
		size := int(raw[pos])
		if size%3 != 0 {
			return nil, fmt.Errorf("парадигма %d: размер %d не кратен трем", i, size)
		}
		pos++
		t.offsets = append(t.offsets, pos)
		pos += size
		if pos > len(raw) {
			return nil, fmt.Errorf("парадигма %d: неожиданный конец данных", i)
		}
	}
	t.offsets = append(t.offsets, pos)
	return t, nil
}

// Len возвращает число парадигм.
func (t *ParadigmTable) Len() int {
	return len(t.offsets) - 1
}

// Get возвращает парадигму по индексу.
func (t *ParadigmTable) Get(idx int) (Paradigm, bool) {
	if idx < 0 || idx >= t.Len() {
		return nil, false
	}
	start := t.offsets[idx]
	// Размер парадигмы хранится перед ее данными.
	end := start + int(t.data[start-1])
	return Paradigm(t.data[start:end:end]), true
}

// EncodeParadigms упаковывает парадигмы в формат paradigms.array.
func EncodeParadigms(paradigms [][]uint16) []uint16 {
	size := 1
	for _, p := range paradigms {
		size += 1 + len(p)
	}
	out := make([]uint16, 0, size)
	out = append(out, uint16(len(paradigms)))
	for _, p := range paradigms {
		out = append(out, uint16(len(p)))
		out = append(out, p...)
	}
	return out
}

// Tables - общие таблицы словаря: теги, суффиксы и парадигмы.
// Все индексы проверяются один раз при создании, после чего доступ к ним не проверяется.
type Tables struct {
	tags      []*Tag
	suffixes  []string
	paradigms *ParadigmTable
}

// NewTables связывает таблицы и проверяет, что каждая парадигма ссылается
// только на существующие теги, суффиксы и приставки.
func NewTables(tags []*Tag, suffixes []string, paradigms *ParadigmTable) (*Tables, error) {
	for i := 0; i < paradigms.Len(); i++ {
		p, _ := paradigms.Get(i)
		for form := 0; form < p.FormCount(); form++ {
			if int(p.SuffixID(form)) >= len(suffixes) {
				return nil, fmt.Errorf("парадигма %d, форма %d: нет суффикса %d", i, form, p.SuffixID(form))
			}
			if int(p.TagID(form)) >= len(tags) {
				return nil, fmt.Errorf("парадигма %d, форма %d: нет тега %d", i, form, p.TagID(form))
			}
			if int(p.PrefixID(form)) >= len(paradigmPrefixes) {
				return nil, fmt.Errorf("парадигма %d, форма %d: нет приставки %d", i, form, p.PrefixID(form))
			}
		}
	}
	return &Tables{tags: tags, suffixes: suffixes, paradigms: paradigms}, nil
}

func (t *Tables) paradigm(idx int) (Paradigm, bool) {
	return t.paradigms.Get(idx)
}

func (t *Tables) tag(p Paradigm, form int) *Tag {
	return t.tags[p.TagID(form)]
}

func (t *Tables) suffix(p Paradigm, form int) string {
	return t.suffixes[p.SuffixID(form)]
}

func (t *Tables) prefix(p Paradigm, form int) string {
	return paradigmPrefixes[p.PrefixID(form)]
}
