package analyzer

import (
	"strings"
)

// Признак нетерминального парсера в конце имени.
const nonTerminalMark = "?"

// runPipeline запускает парсеры по порядку. Как только среди разборов
// появился разбор без исправлений, первый же терминальный парсер
// (включая текущий) останавливает цепочку.
func runPipeline(lx *lexicon, word string, cfg *runConfig) []*Variant {
	var out []*Variant
	matched := false
	for _, name := range cfg.Parsers {
		terminal := !strings.HasSuffix(name, nonTerminalMark)
		name = strings.TrimSuffix(name, nonTerminalMark)

		parse, ok := lx.parsers[name]
		if !ok {
			lx.log.Warn().Str("parser", name).Msg("парсер не найден, пропускаем")
			continue
		}
		variants := parse(word, cfg)
		for _, v := range variants {
			v.Parser = name
			if v.StutterCnt == 0 && v.TyposCnt == 0 {
				matched = true
			}
		}
		out = append(out, variants...)
		if matched && terminal {
			break
		}
	}

	if len(out) == 0 && cfg.ForceParse {
		v := newSimple(strings.ToLower(word), lx.unknown, 0, 0, 0)
		v.Parser = "Unknown"
		out = append(out, v)
	}
	return out
}
