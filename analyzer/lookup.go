package analyzer

import (
	"unicode/utf8"

	"github.com/steosofficial/fuzzymorph/dawg"
)

// Длины слова, после которых в режиме auto допускается еще одна опечатка.
var autoTyposBreakpoints = [...]int{4, 9}

// lookup ищет слово в словаре. В режиме auto сначала ищет без опечаток и,
// если ничего не найдено, повторяет поиск с большим числом опечаток,
// пока длина слова превышает очередную границу.
func (lx *lexicon) lookup(word string, cfg *runConfig) []dawg.WordMatch {
	if !cfg.Typos.Auto {
		return lx.words.FindAll(word, cfg.replacements, cfg.Stutter, cfg.Typos.N)
	}
	entries := lx.words.FindAll(word, cfg.replacements, cfg.Stutter, 0)
	length := utf8.RuneCountInString(word)
	for i := 0; i < len(autoTyposBreakpoints) && len(entries) == 0 && length > autoTyposBreakpoints[i]; i++ {
		entries = lx.words.FindAll(word, cfg.replacements, cfg.Stutter, i+1)
	}
	return entries
}

// typoBudget возвращает наибольшее число опечаток, допустимое для слова.
func typoBudget(word string, cfg *runConfig) int {
	if !cfg.Typos.Auto {
		return cfg.Typos.N
	}
	length := utf8.RuneCountInString(word)
	budget := 0
	for _, bp := range autoTyposBreakpoints {
		if length > bp {
			budget++
		}
	}
	return budget
}
