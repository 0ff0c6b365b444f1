package analyzer

import (
	"math"
	"unicode/utf8"
)

type variantKind uint8

const (
	kindSimple variantKind = iota
	kindDictionary
	kindComposed
)

// Variant - один из вариантов разбора слова.
//
// Бывает трех видов: простой (фиксированные слово и тег, например число или
// аббревиатура), словарный (ссылка на форму парадигмы, возможно с литеральными
// приставкой и суффиксом) и составной (две части через дефис).
// После создания разбор не меняется, кроме однократной нормировки оценки.
type Variant struct {
	Word       string  // Слово в текущей форме (с исправленными ошибками, если они были).
	Tag        *Tag    // Тег текущей формы.
	Score      float64 // Уверенность в разборе, от 0 до 1.
	StutterCnt int     // Число исправленных «заиканий».
	TyposCnt   int     // Число исправленных опечаток.
	Parser     string  // Имя парсера, выдавшего разбор.

	// Части составного разбора.
	Left, Right *Variant

	kind variantKind

	tables      *Tables
	paradigm    Paradigm
	paradigmIdx int
	formIdx     int
	prefix      string // Литеральная приставка ("анти", "интернет-").
	suffix      string // Литеральный суффикс (частица "-то").
	base        string
}

// dictionaryScore штрафует исправления: 0.3 за каждую опечатку и 0.6 за заикания.
func dictionaryScore(stutterCnt, typosCnt int) float64 {
	return math.Pow(0.3, float64(typosCnt)) * math.Pow(0.6, float64(min(stutterCnt, 1)))
}

func newSimple(word string, tag *Tag, score float64, stutterCnt, typosCnt int) *Variant {
	return &Variant{
		Word:       word,
		Tag:        tag,
		Score:      score,
		StutterCnt: stutterCnt,
		TyposCnt:   typosCnt,
		kind:       kindSimple,
	}
}

// newDictionary создает словарный разбор формы formIdx парадигмы paradigmIdx.
// Возвращает nil, если такой формы нет.
func newDictionary(tables *Tables, word string, paradigmIdx, formIdx, stutterCnt, typosCnt int) *Variant {
	p, ok := tables.paradigm(paradigmIdx)
	if !ok || formIdx < 0 || formIdx >= p.FormCount() {
		return nil
	}
	v := &Variant{
		Word:        word,
		Tag:         tables.tag(p, formIdx),
		Score:       dictionaryScore(stutterCnt, typosCnt),
		StutterCnt:  stutterCnt,
		TyposCnt:    typosCnt,
		kind:        kindDictionary,
		tables:      tables,
		paradigm:    p,
		paradigmIdx: paradigmIdx,
		formIdx:     formIdx,
	}
	v.base = trimRunes(word,
		utf8.RuneCountInString(tables.prefix(p, formIdx)),
		utf8.RuneCountInString(tables.suffix(p, formIdx)))
	return v
}

func newComposed(left, right *Variant) *Variant {
	return &Variant{
		Word:       left.Word + "-" + right.Word,
		Tag:        right.Tag,
		Score:      left.Score * right.Score * 0.8,
		StutterCnt: left.StutterCnt + right.StutterCnt,
		TyposCnt:   left.TyposCnt + right.TyposCnt,
		Left:       left,
		Right:      right,
		kind:       kindComposed,
	}
}

// trimRunes отрезает head рун в начале и tail рун в конце строки.
func trimRunes(s string, head, tail int) string {
	r := []rune(s)
	if head+tail >= len(r) {
		if head >= len(r) {
			return ""
		}
		return string(r[head:])
	}
	return string(r[head : len(r)-tail])
}

func (v *Variant) clone() *Variant {
	c := *v
	return &c
}

// IsDictionary сообщает, основан ли разбор на парадигме словаря.
func (v *Variant) IsDictionary() bool {
	return v.kind == kindDictionary
}

// IsComposed сообщает, является ли разбор составным.
func (v *Variant) IsComposed() bool {
	return v.kind == kindComposed
}

// ParadigmIdx возвращает индекс парадигмы словарного разбора или -1.
func (v *Variant) ParadigmIdx() int {
	if v.kind != kindDictionary {
		return -1
	}
	return v.paradigmIdx
}

// FormIdx возвращает индекс формы словарного разбора или -1.
func (v *Variant) FormIdx() int {
	if v.kind != kindDictionary {
		return -1
	}
	return v.formIdx
}

// Base возвращает основу слова: слово без приставки и суффикса формы.
// Для несловарных разборов совпадает со словом.
func (v *Variant) Base() string {
	if v.kind != kindDictionary {
		return v.Word
	}
	return v.base
}

// String возвращает слово вместе с литеральными приставкой и суффиксом.
func (v *Variant) String() string {
	switch v.kind {
	case kindDictionary:
		if v.prefix != "" {
			pref := v.tables.prefix(v.paradigm, v.formIdx)
			return pref + v.prefix + trimRunes(v.Word, utf8.RuneCountInString(pref), 0) + v.suffix
		}
		return v.Word + v.suffix
	case kindComposed:
		return v.Left.Word + "-" + v.Right.Word
	}
	return v.Word
}

// Matches проверяет тег разбора селектором.
func (v *Variant) Matches(sel Selector) bool {
	return v.Tag.Matches(sel)
}

// InflectForm ставит слово в форму formIdx его парадигмы.
// Новый разбор не содержит исправлений.
func (v *Variant) InflectForm(formIdx int) (*Variant, error) {
	switch v.kind {
	case kindDictionary:
		if formIdx < 0 || formIdx >= v.paradigm.FormCount() {
			return nil, ErrInflection
		}
		return v.atForm(formIdx), nil
	case kindComposed:
		right, err := v.Right.InflectForm(formIdx)
		if err != nil {
			return nil, err
		}
		return v.composeWith(right)
	}
	return v, nil
}

// Inflect ставит слово в первую по порядку форму, тег которой подходит под селектор.
func (v *Variant) Inflect(sel Selector) (*Variant, error) {
	switch v.kind {
	case kindDictionary:
		for form := 0; form < v.paradigm.FormCount(); form++ {
			if v.tables.tag(v.paradigm, form).Matches(sel) {
				return v.atForm(form), nil
			}
		}
		return nil, ErrInflection
	case kindComposed:
		right, err := v.Right.Inflect(sel)
		if err != nil {
			return nil, err
		}
		return v.composeWith(right)
	}
	return v, nil
}

func (v *Variant) atForm(form int) *Variant {
	word := v.tables.prefix(v.paradigm, form) + v.base + v.tables.suffix(v.paradigm, form)
	out := newDictionary(v.tables, word, v.paradigmIdx, form, 0, 0)
	out.prefix = v.prefix
	out.suffix = v.suffix
	out.Parser = v.Parser
	return out
}

// composeWith согласует левую часть с новой правой и собирает составной разбор.
func (v *Variant) composeWith(right *Variant) (*Variant, error) {
	left, err := v.Left.Inflect(Agreement{Tag: right.Tag, Grammemes: agreementGrammemes})
	if err != nil {
		return nil, err
	}
	out := newComposed(left, right)
	out.Parser = v.Parser
	return out, nil
}

// Normalize приводит слово к начальной форме. С keepPOS часть речи
// сохраняется (причастие не превращается в инфинитив).
func (v *Variant) Normalize(keepPOS bool) (*Variant, error) {
	if keepPOS {
		return v.Inflect(Spec{"POS": v.Tag.Get("POS")})
	}
	return v.InflectForm(0)
}

// Forms возвращает все формы слова в порядке парадигмы.
func (v *Variant) Forms() []*Variant {
	var count int
	switch v.kind {
	case kindDictionary:
		count = v.paradigm.FormCount()
	case kindComposed:
		if !v.Right.IsDictionary() {
			return []*Variant{v}
		}
		count = v.Right.paradigm.FormCount()
	default:
		return []*Variant{v}
	}
	forms := make([]*Variant, 0, count)
	for form := 0; form < count; form++ {
		if f, err := v.InflectForm(form); err == nil {
			forms = append(forms, f)
		}
	}
	return forms
}

// Категории множественного числа CLDR для русского языка.
const (
	PluralOne  = "one"
	PluralFew  = "few"
	PluralMany = "many"
)

// PluralCategory определяет категорию числа n: 1, 21 - one; 2-4, 22 - few; остальные - many.
func PluralCategory(n int) string {
	if n < 0 {
		n = -n
	}
	n %= 100
	switch {
	case n%10 == 0 || n%10 > 4 || (n > 4 && n < 21):
		return PluralMany
	case n%10 == 1:
		return PluralOne
	}
	return PluralFew
}

// Pluralize согласует слово с числом n ("1 магазин", "3 магазина", "5 магазинов").
func (v *Variant) Pluralize(n int) (*Variant, error) {
	return v.PluralizeCategory(PluralCategory(n))
}

// PluralizeCategory согласует слово с категорией числа one, few или many.
// Слова, не являющиеся существительными, прилагательными или причастиями, не меняются.
func (v *Variant) PluralizeCategory(category string) (*Variant, error) {
	t := v.Tag
	if !t.Has("NOUN") && !t.Has("ADJF") && !t.Has("PRTF") {
		return v, nil
	}
	number := "plur"
	if category == PluralOne {
		number = "sing"
	}
	switch {
	case t.Has("NOUN") && !t.Has("nomn") && !t.Has("accs"):
		return v.Inflect(Grammemes{number, t.Case})
	case category == PluralOne:
		if t.Has("nomn") {
			return v.Inflect(Grammemes{"sing", "nomn"})
		}
		return v.Inflect(Grammemes{"sing", "accs"})
	case t.Has("NOUN") && category == PluralFew:
		return v.Inflect(Grammemes{"sing", "gent"})
	case (t.Has("ADJF") || t.Has("PRTF")) && t.Has("femn") && category == PluralFew:
		return v.Inflect(Grammemes{"plur", "nomn"})
	}
	return v.Inflect(Grammemes{"plur", "gent"})
}
