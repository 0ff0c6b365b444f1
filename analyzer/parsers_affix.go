package analyzer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/twmb/murmur3"
)

// Известные словообразовательные приставки.
var knownPrefixes = [...]string{
	"авиа", "авто", "аква", "анти", "анти-", "антропо", "архи", "арт", "арт-", "астро", "аудио", "аэро",
	"без", "бес", "био", "вело", "взаимо", "вне", "внутри", "видео", "вице-", "вперед", "впереди",
	"гекто", "гелио", "гео", "гетеро", "гига", "гигро", "гипер", "гипо", "гомо",
	"дву", "двух", "де", "дез", "дека", "деци", "дис", "до", "евро", "за", "зоо",
	"интер", "инфра", "квази", "квази-", "кило", "кино", "контр", "контр-", "космо", "космо-", "крипто",
	"лейб-", "лже", "лже-", "макро", "макси", "макси-", "мало", "меж", "медиа", "медиа-", "мега", "мета", "мета-",
	"метео", "метро", "микро", "милли", "мини", "мини-", "моно", "мото", "много", "мульти",
	"нано", "нарко", "не", "небез", "недо", "нейро", "нео", "низко",
	"обер-", "обще", "одно", "около", "орто", "палео", "пан", "пара", "пента", "пере", "пиро", "поли", "полу",
	"после", "пост", "пост-", "порно", "пра", "пра-", "пред", "пресс-", "противо", "противо-", "прото",
	"псевдо", "псевдо-", "радио", "разно", "ре", "ретро", "ретро-", "само", "санти", "сверх", "сверх-",
	"спец", "суб", "супер", "супер-", "супра", "теле", "тетра", "топ-", "транс", "транс-",
	"ультра", "унтер-", "штаб-", "экзо", "эко", "эндо", "эконом-", "экс", "экс-", "экстра", "экстра-",
	"электро", "энерго", "этно",
}

// Веса предсказаний по длине совпавшего суффикса; индекс 0 не используется.
var suffixWeights = [...]float64{0, 0.2, 0.3, 0.4, 0.5, 0.6}

// seenSet отсеивает повторы. Ключи хранятся по хешу murmur3, при
// совпадении хеша строки сравниваются целиком.
type seenSet map[uint64][]string

// add запоминает ключ из частей и сообщает, был ли он новым.
func (s seenSet) add(parts ...string) bool {
	key := strings.Join(parts, ":")
	hash := murmur3.StringSum64(key)
	for _, k := range s[hash] {
		if k == key {
			return false
		}
	}
	s[hash] = append(s[hash], key)
	return true
}

// acceptPredicted отбрасывает непродуктивные разборы и имена собственные,
// если слово написано со строчной буквы.
func acceptPredicted(v *Variant, capitalized bool, cfg *runConfig) bool {
	if !v.Tag.IsProductive() {
		return false
	}
	return cfg.IgnoreCase || !v.Tag.IsCapitalized() || capitalized
}

// parsePrefixKnown отделяет известную приставку и ищет остаток в словаре: антимагазин.
func (lx *lexicon) parsePrefixKnown(word string, cfg *runConfig) []*Variant {
	capitalized := isCapitalized(word, cfg)
	word = strings.ToLower(word)
	length := utf8.RuneCountInString(word)

	var out []*Variant
	for _, prefix := range knownPrefixes {
		if length-utf8.RuneCountInString(prefix) < 3 {
			continue
		}
		end, ok := strings.CutPrefix(word, prefix)
		if !ok {
			continue
		}
		for _, r := range lx.parseDictionary(end, cfg) {
			if !acceptPredicted(r, capitalized, cfg) {
				continue
			}
			r.Score *= 0.7
			r.prefix = prefix
			out = append(out, r)
		}
	}
	return out
}

// parsePrefixUnknown отделяет от 1 до 5 первых букв как неизвестную приставку.
func (lx *lexicon) parsePrefixUnknown(word string, cfg *runConfig) []*Variant {
	capitalized := isCapitalized(word, cfg)
	runes := []rune(strings.ToLower(word))

	var out []*Variant
	for n := 1; n <= 5; n++ {
		if len(runes)-n < 3 {
			break
		}
		prefix := string(runes[:n])
		for _, r := range lx.parseDictionary(string(runes[n:]), cfg) {
			if !acceptPredicted(r, capitalized, cfg) {
				continue
			}
			r.Score *= 0.3
			r.prefix = prefix
			out = append(out, r)
		}
	}
	return out
}

// parseSuffixKnown предсказывает разбор по окончанию слова.
// Найдя подходящий суффикс, проверяет еще и суффикс на букву короче.
func (lx *lexicon) parseSuffixKnown(word string, cfg *runConfig) []*Variant {
	if utf8.RuneCountInString(word) < 4 {
		return nil
	}
	capitalized := isCapitalized(word, cfg)
	word = strings.ToLower(word)

	var out []*Variant
	minLen := 1
	used := make(seenSet)
	for i, prefix := range paradigmPrefixes {
		if lx.suffixes[i] == nil {
			continue
		}
		rest, ok := strings.CutPrefix(word, prefix)
		if !ok {
			continue
		}
		base := []rune(rest)
		for n := 5; n >= minLen; n-- {
			if n >= len(base) {
				continue
			}
			left := string(base[:len(base)-n])
			entries := lx.suffixes[i].FindAll(string(base[len(base)-n:]), cfg.replacements)
			if len(entries) == 0 {
				continue
			}

			var batch []*Variant
			maxCount := 1.0
			for _, e := range entries {
				for _, st := range e.Stats {
					v := newDictionary(lx.tables, prefix+left+e.Suffix, int(st.Paradigm), int(st.Form), 0, 0)
					if v == nil || !acceptPredicted(v, capitalized, cfg) {
						continue
					}
					if !used.add(v.String(), strconv.Itoa(int(st.Paradigm)), strconv.Itoa(int(st.Form))) {
						continue
					}
					maxCount = max(maxCount, float64(st.Count))
					v.Score = float64(st.Count) * suffixWeights[n]
					batch = append(batch, v)
				}
			}
			if len(batch) > 0 {
				for _, v := range batch {
					v.Score /= maxCount
				}
				out = append(out, batch...)
				minLen = max(n-1, 1)
			}
		}
	}
	return out
}
