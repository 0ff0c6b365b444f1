package main

import (
	// #include <stdlib.h>
	"C"
	"context"
	"unsafe"

	"github.com/bytedance/sonic"

	"github.com/steosofficial/fuzzymorph/analyzer"
)

var morphAnalyzer *analyzer.Engine

// parse - разбор в виде, удобном для передачи через JSON.
type parse struct {
	Word       string  `json:"word"`
	NormalForm string  `json:"normal_form"`
	Tag        string  `json:"tag"`
	ExtTag     string  `json:"ext_tag,omitempty"`
	Score      float64 `json:"score"`
	Stutter    int     `json:"stutter"`
	Typos      int     `json:"typos"`
	Parser     string  `json:"parser"`
}

//export CreateAnalyzer
func CreateAnalyzer() C.int {
	e, err := analyzer.LoadDefault(context.Background())
	if err != nil {
		return 0
	}
	morphAnalyzer = e
	return 1
}

//export AnalyzeWord
func AnalyzeWord(word *C.char) *C.char {
	if morphAnalyzer == nil {
		return nil
	}
	variants, err := morphAnalyzer.Analyze(C.GoString(word))
	if err != nil {
		return nil
	}

	parses := make([]parse, 0, len(variants))
	for _, v := range variants {
		p := parse{
			Word:       v.String(),
			NormalForm: v.String(),
			Tag:        v.Tag.String(),
			Score:      v.Score,
			Stutter:    v.StutterCnt,
			Typos:      v.TyposCnt,
			Parser:     v.Parser,
		}
		if v.Tag.Ext != nil {
			p.ExtTag = v.Tag.Ext.String()
		}
		if norm, err := v.Normalize(false); err == nil {
			p.NormalForm = norm.String()
		}
		parses = append(parses, p)
	}

	result, err := sonic.Marshal(parses)
	if err != nil {
		return nil
	}
	return C.CString(string(result))
}

//export FreeString
func FreeString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

//export ReleaseAnalyzer
func ReleaseAnalyzer() {
	if morphAnalyzer != nil {
		_ = morphAnalyzer.Close()
	}
	morphAnalyzer = nil
}

func main() {}
