package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// parserFunc - стратегия разбора: по слову и настройкам возвращает варианты.
type parserFunc func(word string, cfg *runConfig) []*Variant

const regexpScore = 0.9

var (
	reIntNumber   = regexp.MustCompile(`^[−-]?[0-9]+$`)
	reRealNumber  = regexp.MustCompile(`^[−-]?([0-9]*[.,][0-9]+)$`)
	rePunctuation = regexp.MustCompile("^[\\x{2000}-\\x{206F}\\x{2E00}-\\x{2E7F}\\\\'!\"#$%&()*+,\\-./:;<=>?@\\[\\]^_`{|}~]+$")
	reRomanNumber = regexp.MustCompile(`^M{0,4}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)
	reLatin       = regexp.MustCompile(`^[A-Za-z\x{00C0}-\x{00D6}\x{00D8}-\x{00F6}\x{00F8}-\x{024F}]+$`)
)

func (lx *lexicon) defaultParsers() map[string]parserFunc {
	return map[string]parserFunc{
		"Dictionary":     lx.parseDictionary,
		"Abbr":           lx.parseAbbr,
		"AbbrName":       lx.initialsParser(lx.nameInitials),
		"AbbrPatronymic": lx.initialsParser(lx.patrInitials),
		"IntNumber":      lx.regexpParser(reIntNumber, lx.numbers["IntNumber"]),
		"RealNumber":     lx.regexpParser(reRealNumber, lx.numbers["RealNumber"]),
		"Punctuation":    lx.regexpParser(rePunctuation, lx.numbers["Punctuation"]),
		"RomanNumber":    lx.regexpParser(reRomanNumber, lx.numbers["RomanNumber"]),
		"Latin":          lx.regexpParser(reLatin, lx.numbers["Latin"]),
		"HyphenParticle": lx.parseHyphenParticle,
		"HyphenAdverb":   lx.parseHyphenAdverb,
		"HyphenWords":    lx.parseHyphenWords,
		"PrefixKnown":    lx.parsePrefixKnown,
		"PrefixUnknown":  lx.parsePrefixUnknown,
		"SuffixKnown":    lx.parseSuffixKnown,
	}
}

// parseDictionary ищет слово в словаре. Имена собственные и прочие слова
// с заглавной буквы возвращаются, только если слово так и написано.
func (lx *lexicon) parseDictionary(word string, cfg *runConfig) []*Variant {
	capitalized := isCapitalized(word, cfg)
	word = strings.ToLower(word)

	var out []*Variant
	for _, m := range lx.lookup(word, cfg) {
		for _, f := range m.Forms {
			v := newDictionary(lx.tables, m.Word, int(f.Paradigm), int(f.Form), m.StutterCnt, m.TyposCnt)
			if v == nil {
				lx.log.Debug().Str("word", m.Word).Uint16("paradigm", f.Paradigm).Msg("ссылка на несуществующую форму")
				continue
			}
			if cfg.IgnoreCase || !v.Tag.IsCapitalized() || capitalized {
				out = append(out, v)
			}
		}
	}
	return out
}

// parseAbbr разбирает несклоняемые аббревиатуры: ВК, ЖК, ОАО, ЛенСпецСМУ.
func (lx *lexicon) parseAbbr(word string, cfg *runConfig) []*Variant {
	r := []rune(word)
	// Одиночные буквы разбираются как инициалы.
	if len(r) < 2 || strings.ContainsRune(word, '-') {
		return nil
	}
	// Первая и последняя буквы заглавные, иначе сокращение, скорее всего, склоняется.
	if isInitial(r[0]) && isInitial(r[len(r)-1]) {
		caps := 0
		for _, c := range r {
			if isInitial(c) {
				caps++
			}
		}
		if caps <= 5 {
			return lx.abbrVariants(word, 0.5)
		}
	}
	// Без учета регистра берем только короткие слова из одних «инициалов».
	if !cfg.IgnoreCase || len(r) > 5 {
		return nil
	}
	word = strings.ToUpper(word)
	for _, c := range word {
		if !isInitial(c) {
			return nil
		}
	}
	return lx.abbrVariants(word, 0.2)
}

func (lx *lexicon) abbrVariants(word string, score float64) []*Variant {
	out := make([]*Variant, 0, len(lx.abbrTags))
	for _, tag := range lx.abbrTags {
		out = append(out, newSimple(word, tag, score, 0, 0))
	}
	return out
}

// initialsParser разбирает одиночную заглавную букву как инициал.
func (lx *lexicon) initialsParser(tags []*Tag) parserFunc {
	return func(word string, cfg *runConfig) []*Variant {
		if utf8.RuneCountInString(word) != 1 {
			return nil
		}
		if cfg.IgnoreCase {
			word = strings.ToUpper(word)
		}
		r, _ := utf8.DecodeRuneInString(word)
		if !isInitial(r) {
			return nil
		}
		out := make([]*Variant, 0, len(tags))
		for _, tag := range tags {
			out = append(out, newSimple(word, tag, 0.1, 0, 0))
		}
		return out
	}
}

// regexpParser выдает один разбор с фиксированным тегом, если слово целиком подходит под выражение.
func (lx *lexicon) regexpParser(re *regexp.Regexp, tag *Tag) parserFunc {
	return func(word string, cfg *runConfig) []*Variant {
		if cfg.IgnoreCase {
			word = strings.ToUpper(word)
		}
		if word == "" || !re.MatchString(word) {
			return nil
		}
		return []*Variant{newSimple(word, tag, regexpScore, 0, 0)}
	}
}
