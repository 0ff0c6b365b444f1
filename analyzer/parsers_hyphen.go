package analyzer

import (
	"strings"
	"unicode/utf8"
)

// Частицы, которые пишутся через дефис.
var particles = [...]string{"-то", "-ка", "-таки", "-де", "-тко", "-тка", "-с", "-ста"}

// parseHyphenParticle разбирает слово с частицей: смотри-ка, где-то.
func (lx *lexicon) parseHyphenParticle(word string, cfg *runConfig) []*Variant {
	word = strings.ToLower(word)

	var out []*Variant
	for _, particle := range particles {
		base, ok := strings.CutSuffix(word, particle)
		if !ok || base == "" {
			continue
		}
		for _, m := range lx.lookup(base, cfg) {
			for _, f := range m.Forms {
				v := newDictionary(lx.tables, m.Word, int(f.Paradigm), int(f.Form), m.StutterCnt, m.TyposCnt)
				if v == nil {
					continue
				}
				v.suffix = particle
				v.Score *= 0.9
				out = append(out, v)
			}
		}
	}
	return out
}

// parseHyphenAdverb разбирает наречие «по-» + прилагательное в дательном падеже: по-западному.
func (lx *lexicon) parseHyphenAdverb(word string, cfg *runConfig) []*Variant {
	word = strings.ToLower(word)
	rest, ok := strings.CutPrefix(word, "по-")
	if !ok || utf8.RuneCountInString(word) < 5 {
		return nil
	}

	var out []*Variant
	used := make(seenSet)
	for _, m := range lx.lookup(rest, cfg) {
		for _, f := range m.Forms {
			v := newDictionary(lx.tables, m.Word, int(f.Paradigm), int(f.Form), m.StutterCnt, m.TyposCnt)
			if v == nil || !v.Matches(Grammemes{"ADJF", "sing", "datv"}) {
				continue
			}
			if !used.add(m.Word) {
				break
			}
			out = append(out, newSimple("по-"+m.Word, lx.advb, v.Score*0.9, m.StutterCnt, m.TyposCnt))
			break
		}
	}
	return out
}

// parseHyphenWords разбирает составные слова: интернет-магазин, компания-производитель.
func (lx *lexicon) parseHyphenWords(word string, cfg *runConfig) []*Variant {
	word = strings.ToLower(word)
	// Слова вроде «экс-чемпион» разбирает PrefixKnown.
	for _, prefix := range knownPrefixes {
		if strings.HasSuffix(prefix, "-") && strings.HasPrefix(word, prefix) {
			return nil
		}
	}

	parts := strings.Split(word, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		if len(parts) <= 2 {
			return nil
		}
		// Для трех и более частей разбираем только последнюю.
		end := parts[len(parts)-1]
		var out []*Variant
		for _, r := range lx.parseDictionary(end, cfg) {
			r.Score *= 0.2
			r.prefix = word[:len(word)-len(end)]
			out = append(out, r)
		}
		return out
	}

	left := lx.parseDictionary(parts[0], cfg)
	right := lx.parseDictionary(parts[1], cfg)
	maxTypos := typoBudget(word, cfg)

	var out []*Variant
	for _, l := range left {
		if l.Tag.Has("Abbr") {
			continue
		}
		for _, r := range right {
			if !l.Matches(Agreement{Tag: r.Tag, Grammemes: agreementGrammemes}) {
				continue
			}
			if l.StutterCnt+r.StutterCnt > cfg.Stutter || l.TyposCnt+r.TyposCnt > maxTypos {
				continue
			}
			out = append(out, newComposed(l, r))
		}
	}
	// Левая часть как неизменяемая приставка.
	for _, r := range right {
		fixed := r.clone()
		fixed.Score *= 0.3
		fixed.prefix = parts[0] + "-"
		out = append(out, fixed)
	}
	return out
}
