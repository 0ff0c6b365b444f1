package analyzer

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_NotInitialized(t *testing.T) {
	e := New(WithLogger(zerolog.Nop()))
	assert.False(t, e.Ready())

	_, err := e.Analyze("стол")
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = e.AnalyzeList([]string{"стол"})
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestEngine_InitTwice(t *testing.T) {
	e := New(WithLogger(zerolog.Nop()))
	require.NoError(t, e.InitAssets(fixtureAssets()))
	assert.True(t, e.Ready())

	assert.ErrorIs(t, e.InitAssets(fixtureAssets()), ErrAlreadyInitialized)
	assert.ErrorIs(t, e.Init(context.Background(), t.TempDir()), ErrAlreadyInitialized)
}

func TestEngine_Close(t *testing.T) {
	e := New(WithLogger(zerolog.Nop()))
	require.NoError(t, e.InitAssets(fixtureAssets()))

	require.NoError(t, e.Close())
	assert.False(t, e.Ready())
	_, err := e.Analyze("стол")
	assert.ErrorIs(t, err, ErrNotInitialized)

	assert.NoError(t, e.Close(), "повторное закрытие ничего не делает")
}

// countingCloser считает вызовы Close.
type countingCloser struct {
	calls atomic.Int32
}

func (c *countingCloser) Close() error {
	c.calls.Add(1)
	return nil
}

func TestEngine_CloseWaitsForAnalysis(t *testing.T) {
	closer := &countingCloser{}
	assets := fixtureAssets()
	assets.Closers = []io.Closer{closer}

	e := New(WithLogger(zerolog.Nop()))
	require.NoError(t, e.InitAssets(assets))

	started := make(chan struct{})
	release := make(chan struct{})
	e.lex.Load().parsers["Blocking"] = func(word string, cfg *runConfig) []*Variant {
		close(started)
		<-release
		return nil
	}

	analyzed := make(chan error, 1)
	go func() {
		_, err := e.Analyze("стол", WithParsers("Blocking"))
		analyzed <- err
	}()
	<-started

	closed := make(chan error, 1)
	go func() { closed <- e.Close() }()
	select {
	case <-closed:
		t.Fatal("Close завершился во время разбора")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Zero(t, closer.calls.Load(), "файлы не закрываются, пока идет разбор")

	close(release)
	require.NoError(t, <-analyzed)
	require.NoError(t, <-closed)
	assert.EqualValues(t, 1, closer.calls.Load())
	assert.False(t, e.Ready())
}

func TestEngine_InitAssetsClosesOnError(t *testing.T) {
	closer := &countingCloser{}
	assets := fixtureAssets()
	assets.TagsExt = assets.TagsExt[:1]
	assets.Closers = []io.Closer{closer}

	e := New(WithLogger(zerolog.Nop()))
	err := e.InitAssets(assets)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, AssetTagsExt, loadErr.Asset)
	assert.EqualValues(t, 1, closer.calls.Load())
	assert.False(t, e.Ready())

	// После ошибки анализатор можно инициализировать заново.
	require.NoError(t, e.InitAssets(fixtureAssets()))
	assert.True(t, e.Ready())
}

func TestEngine_CallOptionsDoNotLeak(t *testing.T) {
	_, err := engine.Analyze("стол", WithParsers("Dictionary"), WithTypos(2), WithForceParse(true))
	require.NoError(t, err)

	defaults := engine.Defaults()
	assert.Equal(t, DefaultParsers, defaults.Parsers)
	assert.Equal(t, FixedTypos(0), defaults.Typos)
	assert.False(t, defaults.ForceParse)

	// Изменение копии не влияет на анализатор.
	defaults.Parsers[0] = "Latin"
	assert.Equal(t, "Dictionary?", engine.Defaults().Parsers[0])
}

func TestEngine_WithDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parsers = []string{"Dictionary"}
	cfg.ForceParse = true

	e := New(WithLogger(zerolog.Nop()), WithDefaults(cfg))
	require.NoError(t, e.InitAssets(fixtureAssets()))

	variants, err := e.Analyze("123")
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "UNKN", variants[0].Tag.String())

	variants, err = e.Analyze("123", WithParsers("IntNumber"))
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "IntNumber", variants[0].Parser)

	// WithConfig заменяет настройки по умолчанию целиком, последующие опции применяются поверх.
	variants, err = e.Analyze("123", WithConfig(DefaultConfig()))
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "IntNumber", variants[0].Parser)

	variants, err = e.Analyze("123", WithConfig(DefaultConfig()), WithParsers("Latin"))
	require.NoError(t, err)
	assert.Empty(t, variants)
}

func TestEngine_AutoTypos(t *testing.T) {
	exact, err := engine.Analyze("магажин")
	require.NoError(t, err)
	assert.Empty(t, byParser(exact, "Dictionary"), "без опечаток слова нет в словаре")

	variants, err := engine.Analyze("магажин", WithAutoTypos())
	require.NoError(t, err)
	dict := byParser(variants, "Dictionary")
	require.Len(t, dict, 2)
	for _, v := range dict {
		assert.Equal(t, "магазин", v.Word)
		assert.Equal(t, 1, v.TyposCnt)
	}
}

func TestEngine_Normalization(t *testing.T) {
	composed, err := engine.Analyze("мёд")
	require.NoError(t, err)
	decomposed, err := engine.Analyze("ме\u0308д")
	require.NoError(t, err)

	require.NotEmpty(t, composed)
	if diff := cmp.Diff(summarize(composed), summarize(decomposed)); diff != "" {
		t.Errorf("разложенная ё разбирается иначе (-want +got):\n%s", diff)
	}
}

func TestEngine_AnalyzeList(t *testing.T) {
	base := []string{"магазин", "интернет-магазин", "гугловый", "ВК", "123", "XIV", "где-то", "ЪЪЪ", "И"}
	// Больше одного пакета, чтобы проверить сборку результатов по индексам.
	words := make([]string, 0, 2500)
	for len(words) < cap(words) {
		words = append(words, base[len(words)%len(base)])
	}

	results, err := engine.AnalyzeList(words)
	require.NoError(t, err)
	require.Len(t, results, len(words))

	want := make(map[string][]summary, len(base))
	for _, word := range base {
		variants, err := engine.Analyze(word)
		require.NoError(t, err)
		want[word] = summarize(variants)
	}
	for i, word := range words {
		if diff := cmp.Diff(want[word], summarize(results[i])); diff != "" {
			t.Fatalf("слово %d (%s) разобрано иначе (-want +got):\n%s", i, word, diff)
		}
	}

	empty, err := engine.AnalyzeList(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestEngine_Concurrent(t *testing.T) {
	want, err := engine.Analyze("интернет-магазину")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := engine.Analyze("интернет-магазину")
				if err != nil {
					errs <- err
					return
				}
				if diff := cmp.Diff(summarize(want), summarize(got)); diff != "" {
					errs <- fmt.Errorf("разбор отличается:\n%s", diff)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
