// tagset.go определяет грамматический тег и проверки согласования.
// Тег строится из строки граммем OpenCorpora ("NOUN,inan,masc sing,nomn"):
// каждая граммема выставляется в поле тега, а обход родителей по реестру
// заполняет поля категорий (CAse, GNdr и т.д.) именем дочерней граммемы.

package analyzer

import (
	"strings"

	"github.com/czcorpus/cnc-gokit/collections"
)

// Внутренние имена категорий граммем.
const (
	CatPOS          = "POST"
	CatAnimacy      = "ANim"
	CatAspect       = "ASpc"
	CatCase         = "CAse"
	CatGender       = "GNdr"
	CatInvolvement  = "INvl"
	CatMood         = "MOod"
	CatNumber       = "NMbr"
	CatPerson       = "PErs"
	CatTense        = "TEns"
	CatTransitivity = "TRns"
	CatVoice        = "VOic"
)

// Граммемы, по которым согласуются части составного слова.
var agreementGrammemes = []string{CatPOS, CatNumber, CatCase, CatPerson, CatTense}

// Категории, для которых продуктивные правила (приставки, суффиксы) не работают.
var unproductiveGrammemes = []string{
	"NUMR", "NPRO", "PRED", "PREP", "CONJ", "PRCL", "INTJ", "Apro",
	"NUMB", "ROMN", "LATN", "PNCT", "UNKN",
}

// Граммемы, требующие написания с заглавной буквы.
var capitalizedGrammemes = []string{"Name", "Surn", "Patr", "Geox", "Init"}

// Tag - неизменяемый грамматический тег одной словоформы.
// Теги создаются при загрузке словаря и переиспользуются всеми разборами.
type Tag struct {
	Stat []string `json:"stat"` // Неизменяемые граммемы.
	Flex []string `json:"flex"` // Изменяемые граммемы.

	PartOfSpeech string `json:"part_of_speech"` // Часть речи
	Animacy      string `json:"animacy"`        // Одушевленность
	Aspect       string `json:"aspect"`         // Вид
	Case         string `json:"case"`           // Падеж
	Gender       string `json:"gender"`         // Род
	Involvement  string `json:"involvement"`    // Совместность
	Mood         string `json:"mood"`           // Наклонение
	Number       string `json:"number"`         // Число
	Person       string `json:"person"`         // Лицо
	Tense        string `json:"tense"`          // Время
	Transitivity string `json:"transitivity"`   // Переходность
	Voice        string `json:"voice"`          // Залог

	// Ext - тот же тег с русскими обозначениями граммем.
	Ext *Tag `json:"-"`

	str    string
	fields map[string]string
}

// NewTag разбирает строку граммем. Граммемы, которых нет в реестре,
// выставляются в тег, но родителей не получают.
func NewTag(registry *GrammemeRegistry, str string) *Tag {
	t := &Tag{str: strings.TrimSpace(str), fields: make(map[string]string)}
	stat, flex, _ := strings.Cut(t.str, " ")
	t.Stat = splitGrammemes(stat)
	t.Flex = splitGrammemes(flex)

	for _, grams := range [][]string{t.Stat, t.Flex} {
		for _, gram := range grams {
			t.fields[gram] = gram
			// loc2 -> loct -> CAse
			for depth := 0; depth < registry.Len(); depth++ {
				parent, ok := registry.parent(gram)
				if !ok {
					break
				}
				t.fields[parent] = gram
				gram = parent
			}
		}
	}
	if pos, ok := t.fields[CatPOS]; ok {
		t.fields["POS"] = pos
	}

	t.PartOfSpeech = t.fields[CatPOS]
	t.Animacy = t.fields[CatAnimacy]
	t.Aspect = t.fields[CatAspect]
	t.Case = t.fields[CatCase]
	t.Gender = t.fields[CatGender]
	t.Involvement = t.fields[CatInvolvement]
	t.Mood = t.fields[CatMood]
	t.Number = t.fields[CatNumber]
	t.Person = t.fields[CatPerson]
	t.Tense = t.fields[CatTense]
	t.Transitivity = t.fields[CatTransitivity]
	t.Voice = t.fields[CatVoice]
	return t
}

// newTagPair создает тег вместе с его русским вариантом.
func newTagPair(registry *GrammemeRegistry, internal, external string) *Tag {
	t := NewTag(registry, internal)
	t.Ext = NewTag(registry, external)
	return t
}

func splitGrammemes(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// Get возвращает значение поля тега: имя самой граммемы, если она указана
// в теге, имя дочерней граммемы для категории, или пустую строку.
func (t *Tag) Get(name string) string {
	return t.fields[name]
}

// Has сообщает, выставлено ли поле name.
func (t *Tag) Has(name string) bool {
	return t.fields[name] != ""
}

// String возвращает неизменяемые граммемы, пробел и изменяемые граммемы.
func (t *Tag) String() string {
	return t.str
}

// Equal сравнивает теги структурно, без учета идентичности указателей.
func (t *Tag) Equal(other *Tag) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.fields) != len(other.fields) {
		return false
	}
	for k, v := range t.fields {
		if other.fields[k] != v {
			return false
		}
	}
	return t.str == other.str
}

// Matches проверяет тег селектором: списком граммем, картой значений
// или согласованием с другим тегом.
func (t *Tag) Matches(sel Selector) bool {
	return sel.Select(t)
}

// IsProductive сообщает, можно ли применять к слову продуктивные правила словообразования.
func (t *Tag) IsProductive() bool {
	for _, g := range unproductiveGrammemes {
		if t.Has(g) {
			return false
		}
	}
	return true
}

// IsCapitalized сообщает, пишется ли слово с заглавной буквы (имена, фамилии, топонимы, инициалы).
func (t *Tag) IsCapitalized() bool {
	for _, g := range capitalizedGrammemes {
		if t.Has(g) {
			return true
		}
	}
	return false
}

// Selector выбирает теги. Используется в Matches и Inflect.
type Selector interface {
	Select(t *Tag) bool
}

// Grammemes выбирает теги, в которых выставлены все перечисленные граммемы.
//
//	tag.Matches(Grammemes{"NOUN", "masc"})
type Grammemes []string

func (g Grammemes) Select(t *Tag) bool {
	for _, name := range g {
		if !t.Has(name) {
			return false
		}
	}
	return true
}

// Spec выбирает теги по значениям полей. Значение может быть строкой
// (поле должно совпасть), списком строк (поле должно входить в список)
// или bool (поле выставлено / не выставлено).
//
//	tag.Matches(Spec{"POS": "NOUN", "GNdr": []string{"masc", "neut"}})
type Spec map[string]any

func (s Spec) Select(t *Tag) bool {
	for k, want := range s {
		got := t.Get(k)
		switch v := want.(type) {
		case string:
			if got != v {
				return false
			}
		case []string:
			if !collections.SliceContains(v, got) {
				return false
			}
		case bool:
			if (got != "") != v {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Agreement выбирает теги, совпадающие с Tag по всем полям Grammemes.
type Agreement struct {
	Tag       *Tag
	Grammemes []string
}

func (a Agreement) Select(t *Tag) bool {
	for _, name := range a.Grammemes {
		if a.Tag.Get(name) != t.Get(name) {
			return false
		}
	}
	return true
}

// AgreeWith строит селектор согласования с разбором v.
func AgreeWith(v *Variant, grammemes ...string) Agreement {
	return Agreement{Tag: v.Tag, Grammemes: grammemes}
}
