package analyzer

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/steosofficial/fuzzymorph/dawg"
)

// WordDictionary - нечеткий поиск словоформ (words.dawg).
type WordDictionary interface {
	FindAll(word string, replacements map[rune]rune, maxStutter, maxTypos int) []dawg.WordMatch
}

// SuffixDictionary - поиск правил предсказания по суффиксу (prediction-suffixes-N.dawg).
type SuffixDictionary interface {
	FindAll(suffix string, replacements map[rune]rune) []dawg.SuffixMatch
}

// CountDictionary - частоты словоформ (p_t_given_w.intdawg).
type CountDictionary interface {
	FindAll(key string) []dawg.CountMatch
}

// Буквы, с которых может начинаться аббревиатура или инициал.
const initialLetters = "АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЭЮЯ"

var (
	nomCases = [6]string{"nomn", "gent", "datv", "accs", "ablt", "loct"}
	extCases = [6]string{"им", "рд", "дт", "вн", "тв", "пр"}
)

// lexicon - загруженный словарь со всеми таблицами. Создается один раз
// при инициализации и дальше только читается, поэтому доступен из любого числа горутин.
type lexicon struct {
	words         WordDictionary
	suffixes      [3]SuffixDictionary
	probabilities CountDictionary
	tables        *Tables
	registry      *GrammemeRegistry

	abbrTags     []*Tag
	nameInitials []*Tag
	patrInitials []*Tag
	advb         *Tag
	unknown      *Tag
	numbers      map[string]*Tag

	parsers map[string]parserFunc
	log     zerolog.Logger

	closers []io.Closer
}

func newLexicon(
	words WordDictionary,
	suffixes [3]SuffixDictionary,
	probabilities CountDictionary,
	tables *Tables,
	registry *GrammemeRegistry,
	log zerolog.Logger,
) *lexicon {
	lx := &lexicon{
		words:         words,
		suffixes:      suffixes,
		probabilities: probabilities,
		tables:        tables,
		registry:      registry,
		log:           log,
	}
	lx.buildFixedTags()
	lx.parsers = lx.defaultParsers()
	return lx
}

func (lx *lexicon) buildFixedTags() {
	genders := [3]string{"masc", "femn", "neut"}
	extGenders := [3]string{"мр", "жр", "ср"}
	numbers := [2]string{"sing", "plur"}
	extNumbers := [2]string{"ед", "мн"}
	for g := range genders {
		for c := range nomCases {
			for n := range numbers {
				lx.abbrTags = append(lx.abbrTags, newTagPair(lx.registry,
					"NOUN,inan,"+genders[g]+",Fixd,Abbr "+numbers[n]+","+nomCases[c],
					"СУЩ,неод,"+extGenders[g]+",0,аббр "+extNumbers[n]+","+extCases[c],
				))
			}
		}
	}
	lx.nameInitials = lx.initialTags("Name", "имя")
	lx.patrInitials = lx.initialTags("Patr", "отч")
	lx.advb = newTagPair(lx.registry, "ADVB", "Н")
	lx.unknown = newTagPair(lx.registry, "UNKN", "НЕИЗВ")
	lx.numbers = map[string]*Tag{
		"IntNumber":   newTagPair(lx.registry, "NUMB,intg", "ЧИСЛО,цел"),
		"RealNumber":  newTagPair(lx.registry, "NUMB,real", "ЧИСЛО,вещ"),
		"Punctuation": newTagPair(lx.registry, "PNCT", "ЗПР"),
		"RomanNumber": newTagPair(lx.registry, "ROMN", "РИМ"),
		"Latin":       newTagPair(lx.registry, "LATN", "ЛАТ"),
	}
}

// initialTags строит 12 тегов инициала: мужской и женский род в шести падежах.
func (lx *lexicon) initialTags(kind, extKind string) []*Tag {
	genders := [2]string{"masc", "femn"}
	extGenders := [2]string{"мр", "жр"}
	tags := make([]*Tag, 0, len(genders)*len(nomCases))
	for g := range genders {
		for c := range nomCases {
			tags = append(tags, newTagPair(lx.registry,
				"NOUN,anim,"+genders[g]+",Sgtm,"+kind+",Fixd,Abbr,Init sing,"+nomCases[c],
				"СУЩ,од,"+extGenders[g]+",sg,"+extKind+",0,аббр,иниц ед,"+extCases[c],
			))
		}
	}
	return tags
}

func (lx *lexicon) Close() error {
	var firstErr error
	for _, c := range lx.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	lx.closers = nil
	return firstErr
}

func isInitial(r rune) bool {
	return strings.ContainsRune(initialLetters, r)
}

// isCapitalized сообщает, написано ли слово с заглавной буквы
// (первая буква заглавная, а остальные не все заглавные).
func isCapitalized(word string, cfg *runConfig) bool {
	if cfg.IgnoreCase || word == "" {
		return false
	}
	r := []rune(word)
	first := string(r[0])
	rest := string(r[1:])
	return strings.ToLower(first) != first && strings.ToUpper(rest) != rest
}
