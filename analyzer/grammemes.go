package analyzer

import (
	"fmt"
)

// Grammeme - узел таксономии граммем.
type Grammeme struct {
	Internal     string // Внутреннее имя (OpenCorpora), например "loct".
	Parent       string // Имя родительской граммемы, пусто для корня.
	External     string // Русское обозначение, например "пр".
	ExternalFull string // Полное описание.
}

// GrammemeRegistry отображает внутренние и внешние имена граммем на их описания.
// Заполняется один раз при загрузке и дальше только читается.
type GrammemeRegistry struct {
	byName map[string]*Grammeme
}

// Служебные части речи, которых нет в словаре OpenCorpora, но которые
// выдают парсеры чисел, пунктуации и т.п.
var syntheticGrammemes = []Grammeme{
	{Internal: "NUMB", External: "ЧИСЛО", Parent: "POST"},
	{Internal: "ROMN", External: "РИМ", Parent: "POST"},
	{Internal: "LATN", External: "ЛАТ", Parent: "POST"},
	{Internal: "PNCT", External: "ЗПР", Parent: "POST"},
	{Internal: "UNKN", External: "НЕИЗВ", Parent: "POST"},
}

// NewGrammemeRegistry строит реестр из строк вида
// [внутреннее имя, родитель, внешнее имя, описание] (формат grammemes.json).
// Родитель может быть nil.
func NewGrammemeRegistry(rows [][]*string) (*GrammemeRegistry, error) {
	r := &GrammemeRegistry{byName: make(map[string]*Grammeme, 2*len(rows)+2*len(syntheticGrammemes))}
	for i, row := range rows {
		if len(row) < 3 || row[0] == nil || *row[0] == "" {
			return nil, fmt.Errorf("строка %d: некорректное описание граммемы", i)
		}
		g := Grammeme{Internal: *row[0], Parent: deref(row[1]), External: deref(row[2])}
		if len(row) > 3 {
			g.ExternalFull = deref(row[3])
		}
		r.add(g)
	}
	for _, g := range syntheticGrammemes {
		r.add(g)
	}
	return r, nil
}

func (r *GrammemeRegistry) add(g Grammeme) {
	entry := &g
	r.byName[g.Internal] = entry
	if g.External != "" {
		r.byName[g.External] = entry
	}
}

// Lookup ищет граммему по внутреннему или внешнему имени.
func (r *GrammemeRegistry) Lookup(name string) (Grammeme, bool) {
	g, ok := r.byName[name]
	if !ok {
		return Grammeme{}, false
	}
	return *g, true
}

// parent возвращает имя родителя граммемы.
func (r *GrammemeRegistry) parent(name string) (string, bool) {
	g, ok := r.byName[name]
	if !ok || g.Parent == "" {
		return "", false
	}
	return g.Parent, true
}

// Len возвращает количество зарегистрированных имен.
func (r *GrammemeRegistry) Len() int {
	return len(r.byName)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
