package analyzer

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steosofficial/fuzzymorph/dawg"
)

// writeFixtureDir сохраняет тестовый словарь в каталог в формате файлов словаря.
func writeFixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeGraph := func(name string, g *dawg.Graph) {
		var buf bytes.Buffer
		_, err := g.WriteTo(&buf)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644))
	}
	writeJSON := func(name string, v any) {
		data, err := sonic.Marshal(v)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}

	writeGraph(AssetWords, fixtureWords())
	for i, g := range fixturePrediction() {
		writeGraph(AssetPredictionSuffixes(i), g)
	}
	writeGraph(AssetProbabilities, fixtureProbabilities())
	writeJSON(AssetGrammemes, fixtureGrammemes())
	writeJSON(AssetTagsInt, fixtureTagsInt)
	writeJSON(AssetTagsExt, fixtureTagsExt)
	writeJSON(AssetSuffixes, fixtureSuffixes)

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, EncodeParadigms(fixtureParadigms)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, AssetParadigms), buf.Bytes(), 0o644))
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeFixtureDir(t)

	e, err := Load(context.Background(), dir, WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	require.True(t, e.Ready())

	// Словарь, загруженный с диска, разбирает так же, как построенный в памяти.
	for _, word := range []string{"магааазин", "интернет-магазину", "гугловый", "наизападнейший"} {
		fromDisk, err := e.Analyze(word)
		require.NoError(t, err)
		inMemory, err := engine.Analyze(word)
		require.NoError(t, err)
		assert.Equal(t, summarize(inMemory), summarize(fromDisk), word)
	}
}

func TestLoad_MissingAsset(t *testing.T) {
	for _, asset := range []string{AssetGrammemes, AssetWords, AssetPredictionSuffixes(2), AssetParadigms} {
		t.Run(asset, func(t *testing.T) {
			dir := writeFixtureDir(t)
			require.NoError(t, os.Remove(filepath.Join(dir, asset)))

			e := New(WithLogger(zerolog.Nop()))
			err := e.Init(context.Background(), dir)
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, asset, loadErr.Asset)
			assert.ErrorIs(t, err, fs.ErrNotExist)

			assert.False(t, e.Ready())
			_, err = e.Analyze("стол")
			assert.ErrorIs(t, err, ErrNotInitialized)
		})
	}
}

func TestLoad_Corrupted(t *testing.T) {
	testCases := []struct {
		name  string
		asset string
		data  []byte
	}{
		{name: "Нечетная длина массива парадигм", asset: AssetParadigms, data: []byte{1, 0, 3}},
		{name: "Чужой файл вместо автомата", asset: AssetWords, data: bytes.Repeat([]byte("x"), 128)},
		{name: "Битый JSON", asset: AssetTagsInt, data: []byte("[\"NOUN\",")},
		{name: "Число тегов не совпадает", asset: AssetTagsExt, data: []byte("[\"СУЩ\"]")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeFixtureDir(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, tc.asset), tc.data, 0o644))

			e := New(WithLogger(zerolog.Nop()))
			err := e.Init(context.Background(), dir)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr), "ошибка %v", err)
			assert.Equal(t, tc.asset, loadErr.Asset)
			assert.False(t, e.Ready())
		})
	}
}

func TestLoad_SplitParts(t *testing.T) {
	dir := writeFixtureDir(t)
	path := filepath.Join(dir, AssetWords)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	half := len(data) / 2
	require.NoError(t, os.WriteFile(path+"_aa", data[:half], 0o644))
	require.NoError(t, os.WriteFile(path+"_ab", data[half:], 0o644))

	e, err := Load(context.Background(), dir, WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	merged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, merged)

	variants, err := e.Analyze("столом", WithParsers("Dictionary"))
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "NOUN,inan,masc sing,ablt", variants[0].Tag.String())
}

func TestNewParadigmTable(t *testing.T) {
	table, err := NewParadigmTable(EncodeParadigms(fixtureParadigms))
	require.NoError(t, err)
	require.Equal(t, len(fixtureParadigms), table.Len())

	p, ok := table.Get(paradigmAdj)
	require.True(t, ok)
	assert.Equal(t, 6, p.FormCount())
	assert.Equal(t, uint16(12), p.SuffixID(5))
	assert.Equal(t, uint16(13), p.TagID(5))
	assert.Equal(t, uint16(2), p.PrefixID(5))

	_, ok = table.Get(len(fixtureParadigms))
	assert.False(t, ok)
	_, ok = table.Get(-1)
	assert.False(t, ok)

	testCases := []struct {
		name string
		raw  []uint16
	}{
		{name: "Пустой массив", raw: nil},
		{name: "Размер не кратен трем", raw: []uint16{1, 4, 0, 0, 0, 0}},
		{name: "Данных меньше размера", raw: []uint16{1, 6, 0, 0, 0}},
		{name: "Парадигм меньше заявленного", raw: []uint16{2, 3, 0, 0, 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewParadigmTable(tc.raw)
			assert.Error(t, err)
		})
	}
}

func TestNewTables_DanglingIndex(t *testing.T) {
	registry := fixtureRegistry(t)
	tags := []*Tag{NewTag(registry, "ADVB")}

	testCases := []struct {
		name     string
		paradigm []uint16
	}{
		{name: "Нет суффикса", paradigm: []uint16{5, 0, 0}},
		{name: "Нет тега", paradigm: []uint16{0, 3, 0}},
		{name: "Нет приставки", paradigm: []uint16{0, 0, 7}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := NewParadigmTable(EncodeParadigms([][]uint16{tc.paradigm}))
			require.NoError(t, err)
			_, err = NewTables(tags, []string{""}, table)
			assert.Error(t, err)
		})
	}

	table, err := NewParadigmTable(EncodeParadigms([][]uint16{{0, 0, 0}}))
	require.NoError(t, err)
	_, err = NewTables(tags, []string{""}, table)
	assert.NoError(t, err)
}
