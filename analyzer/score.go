package analyzer

import (
	"sort"
)

const dictionaryParser = "Dictionary"

// scoreVariants пересчитывает оценки словарных разборов по частотам словоформ
// и нормирует словарные и несловарные разборы независимо друг от друга.
// Результат отсортирован по убыванию оценки, равные сохраняют порядок.
func scoreVariants(lx *lexicon, variants []*Variant, cfg *runConfig) {
	var dictTotal, otherTotal float64
	for _, v := range variants {
		if v.Parser != dictionaryParser {
			continue
		}
		if lx.probabilities != nil {
			if res := lx.probabilities.FindAll(v.String() + ":" + v.Tag.String()); len(res) > 0 {
				v.Score = float64(res[0].Count) / 1_000_000 * dictionaryScore(v.StutterCnt, v.TyposCnt)
			}
		}
		dictTotal += v.Score
	}

	if cfg.NormalizeScore {
		for _, v := range variants {
			if v.Parser != dictionaryParser {
				otherTotal += v.Score
			}
		}
		for _, v := range variants {
			total := otherTotal
			if v.Parser == dictionaryParser {
				total = dictTotal
			}
			if total > 0 {
				v.Score /= total
			}
		}
	}

	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Score > variants[j].Score
	})
}
