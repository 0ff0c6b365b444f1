package analyzer

import (
	"log"
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/steosofficial/fuzzymorph/dawg"
)

// engine - общий анализатор на маленьком тестовом словаре.
var engine *Engine

// TestMain собирает тестовый словарь один раз перед всеми тестами пакета.
func TestMain(m *testing.M) {
	engine = New(WithLogger(zerolog.Nop()))
	if err := engine.InitAssets(fixtureAssets()); err != nil {
		log.Fatalf("Не удалось собрать тестовый словарь: %v", err)
	}
	os.Exit(m.Run())
}

func str(s string) *string { return &s }

// fixtureGrammemes - часть таксономии OpenCorpora, достаточная для тестовых тегов.
func fixtureGrammemes() [][]*string {
	rows := [][]*string{
		{str("POST"), nil, str("ЧР"), str("часть речи")},
		{str("NOUN"), str("POST"), str("СУЩ"), str("имя существительное")},
		{str("ADJF"), str("POST"), str("ПРИЛ"), str("имя прилагательное (полное)")},
		{str("PRTF"), str("POST"), str("ПРИЧ"), str("причастие (полное)")},
		{str("VERB"), str("POST"), str("ГЛ"), str("глагол (личная форма)")},
		{str("ADVB"), str("POST"), str("Н"), str("наречие")},
		{str("PREP"), str("POST"), str("ПР"), str("предлог")},
		{str("ANim"), nil, str("Од-неод"), str("одушевленность")},
		{str("anim"), str("ANim"), str("од"), str("одушевленное")},
		{str("inan"), str("ANim"), str("неод"), str("неодушевленное")},
		{str("GNdr"), nil, str("хр"), str("род")},
		{str("masc"), str("GNdr"), str("мр"), str("мужской род")},
		{str("femn"), str("GNdr"), str("жр"), str("женский род")},
		{str("neut"), str("GNdr"), str("ср"), str("средний род")},
		{str("NMbr"), nil, str("Число"), str("число")},
		{str("sing"), str("NMbr"), str("ед"), str("единственное число")},
		{str("plur"), str("NMbr"), str("мн"), str("множественное число")},
		{str("CAse"), nil, str("ПД"), str("категория падежа")},
		{str("nomn"), str("CAse"), str("им"), str("именительный падеж")},
		{str("gent"), str("CAse"), str("рд"), str("родительный падеж")},
		{str("datv"), str("CAse"), str("дт"), str("дательный падеж")},
		{str("accs"), str("CAse"), str("вн"), str("винительный падеж")},
		{str("ablt"), str("CAse"), str("тв"), str("творительный падеж")},
		{str("loct"), str("CAse"), str("пр"), str("предложный падеж")},
		{str("loc2"), str("loct"), str("пр2"), str("второй предложный падеж")},
		{str("Qual"), nil, str("кач"), str("качественное")},
		{str("Supr"), str("Qual"), str("прев"), str("превосходная степень")},
		{str("Sgtm"), nil, str("sg"), str("singularia tantum")},
		{str("Fixd"), nil, str("0"), str("неизменяемое")},
		{str("Abbr"), nil, str("аббр"), str("аббревиатура")},
		{str("Name"), nil, str("имя"), str("имя")},
		{str("Surn"), nil, str("фам"), str("фамилия")},
		{str("Patr"), nil, str("отч"), str("отчество")},
		{str("Geox"), nil, str("гео"), str("топоним")},
		{str("Init"), nil, str("иниц"), str("инициал")},
	}
	return rows
}

var fixtureTagsInt = []string{
	"NOUN,inan,masc sing,nomn", // 0
	"NOUN,inan,masc sing,gent",
	"NOUN,inan,masc sing,datv",
	"NOUN,inan,masc sing,accs",
	"NOUN,inan,masc sing,ablt",
	"NOUN,inan,masc sing,loct", // 5
	"NOUN,inan,masc plur,nomn",
	"NOUN,inan,masc plur,gent",
	"ADJF,Qual masc,sing,nomn",
	"ADJF,Qual masc,sing,gent",
	"ADJF,Qual masc,sing,datv", // 10
	"ADJF,Qual femn,sing,nomn",
	"ADJF,Qual plur,nomn",
	"ADJF,Supr,Qual masc,sing,nomn",
	"NOUN,anim,masc,Name sing,nomn",
	"NOUN,anim,masc,Name sing,gent", // 15
	"ADVB",
}

var fixtureTagsExt = []string{
	"СУЩ,неод,мр ед,им",
	"СУЩ,неод,мр ед,рд",
	"СУЩ,неод,мр ед,дт",
	"СУЩ,неод,мр ед,вн",
	"СУЩ,неод,мр ед,тв",
	"СУЩ,неод,мр ед,пр",
	"СУЩ,неод,мр мн,им",
	"СУЩ,неод,мр мн,рд",
	"ПРИЛ,кач мр,ед,им",
	"ПРИЛ,кач мр,ед,рд",
	"ПРИЛ,кач мр,ед,дт",
	"ПРИЛ,кач жр,ед,им",
	"ПРИЛ,кач мн,им",
	"ПРИЛ,прев,кач мр,ед,им",
	"СУЩ,од,мр,имя ед,им",
	"СУЩ,од,мр,имя ед,рд",
	"Н",
}

var fixtureSuffixes = []string{"", "а", "у", "ом", "е", "ы", "ов", "ый", "ого", "ому", "ая", "ые", "ейший"}

// Парадигмы: 0 - существительное (магазин), 1 - прилагательное (западный),
// 2 - имя (Иван), 3 - наречие (где).
var fixtureParadigms = [][]uint16{
	{
		0, 1, 2, 0, 3, 4, 5, 6,
		0, 1, 2, 3, 4, 5, 6, 7,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	{
		7, 8, 9, 10, 11, 12,
		8, 9, 10, 11, 12, 13,
		0, 0, 0, 0, 0, 2,
	},
	{
		0, 1,
		14, 15,
		0, 0,
	},
	{0, 16, 0},
}

const (
	paradigmNoun = iota
	paradigmAdj
	paradigmName
	paradigmAdvb
)

var fixtureLemmas = []struct {
	base     string
	paradigm uint16
}{
	{"магазин", paradigmNoun},
	{"интернет", paradigmNoun},
	{"стол", paradigmNoun},
	{"мёд", paradigmNoun},
	{"западн", paradigmAdj},
	{"иван", paradigmName},
	{"где", paradigmAdvb},
}

// fixtureWords строит словарь словоформ из всех форм тестовых лемм.
func fixtureWords() *dawg.Graph {
	b := dawg.NewBuilder()
	for _, l := range fixtureLemmas {
		p := Paradigm(fixtureParadigms[l.paradigm])
		for form := 0; form < p.FormCount(); form++ {
			word := paradigmPrefixes[p.PrefixID(form)] + l.base + fixtureSuffixes[p.SuffixID(form)]
			dawg.AddWord(b, word, l.paradigm, uint16(form))
		}
	}
	return b.Build()
}

func fixturePrediction() [3]*dawg.Graph {
	b := dawg.NewBuilder()
	dawg.AddSuffix(b, "ый", 100, paradigmAdj, 0)
	dawg.AddSuffix(b, "ому", 50, paradigmAdj, 2)
	dawg.AddSuffix(b, "ин", 30, paradigmNoun, 0)
	dawg.AddSuffix(b, "ин", 20, paradigmNoun, 3)
	dawg.AddSuffix(b, "ина", 10, paradigmNoun, 1)
	return [3]*dawg.Graph{b.Build(), dawg.NewBuilder().Build(), dawg.NewBuilder().Build()}
}

func fixtureProbabilities() *dawg.Graph {
	b := dawg.NewBuilder()
	b.Add("магазин:NOUN,inan,masc sing,nomn", 600000)
	b.Add("магазин:NOUN,inan,masc sing,accs", 400000)
	return b.Build()
}

func fixtureAssets() *Assets {
	prediction := fixturePrediction()
	return &Assets{
		Words: dawg.NewWords(fixtureWords()),
		Prediction: [3]SuffixDictionary{
			dawg.NewSuffixes(prediction[0]),
			dawg.NewSuffixes(prediction[1]),
			dawg.NewSuffixes(prediction[2]),
		},
		Probabilities: dawg.NewCounts(fixtureProbabilities()),
		Grammemes:     fixtureGrammemes(),
		TagsInt:       fixtureTagsInt,
		TagsExt:       fixtureTagsExt,
		SuffixTable:   fixtureSuffixes,
		Paradigms:     EncodeParadigms(fixtureParadigms),
	}
}

// fixtureLexicon возвращает отдельный словарь, который тест может менять.
func fixtureLexicon(t testing.TB) *lexicon {
	t.Helper()
	lx, err := buildLexicon(fixtureAssets(), zerolog.Nop())
	if err != nil {
		t.Fatalf("buildLexicon: %v", err)
	}
	return lx
}

func fixtureRegistry(t testing.TB) *GrammemeRegistry {
	t.Helper()
	r, err := NewGrammemeRegistry(fixtureGrammemes())
	if err != nil {
		t.Fatalf("NewGrammemeRegistry: %v", err)
	}
	return r
}

// byParser оставляет разборы указанного парсера.
func byParser(variants []*Variant, parser string) []*Variant {
	var out []*Variant
	for _, v := range variants {
		if v.Parser == parser {
			out = append(out, v)
		}
	}
	return out
}

// summary - сравнимое представление разбора.
type summary struct {
	Word    string
	Tag     string
	Score   float64
	Stutter int
	Typos   int
	Parser  string
}

func summarize(variants []*Variant) []summary {
	out := make([]summary, 0, len(variants))
	for _, v := range variants {
		out = append(out, summary{
			Word:    v.String(),
			Tag:     v.Tag.String(),
			Score:   v.Score,
			Stutter: v.StutterCnt,
			Typos:   v.TyposCnt,
			Parser:  v.Parser,
		})
	}
	return out
}
