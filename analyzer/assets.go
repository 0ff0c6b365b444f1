// assets.go загружает словари анализатора из каталога.
// Автоматы и массив парадигм отображаются в память (mmap) без копирования в кучу,
// JSON-таблицы читаются целиком. Все файлы грузятся параллельно, и анализатор
// становится готовым только после успешной загрузки всех.

package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/edsrzf/mmap-go"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/steosofficial/fuzzymorph/dawg"
)

// Имена файлов словаря.
const (
	AssetWords         = "words.dawg"
	AssetProbabilities = "p_t_given_w.intdawg"
	AssetGrammemes     = "grammemes.json"
	AssetTagsInt       = "gramtab-opencorpora-int.json"
	AssetTagsExt       = "gramtab-opencorpora-ext.json"
	AssetSuffixes      = "suffixes.json"
	AssetParadigms     = "paradigms.array"
)

// AssetPredictionSuffixes возвращает имя автомата суффиксов для приставки парадигмы i.
func AssetPredictionSuffixes(i int) string {
	return fmt.Sprintf("prediction-suffixes-%d.dawg", i)
}

// Assets - все данные, необходимые анализатору.
type Assets struct {
	Words         WordDictionary
	Prediction    [3]SuffixDictionary
	Probabilities CountDictionary

	Grammemes   [][]*string // Строки [имя, родитель, русское имя, описание].
	TagsInt     []string    // Теги с внутренними именами граммем.
	TagsExt     []string    // Те же теги с русскими именами, в том же порядке.
	SuffixTable []string    // Суффиксы форм.
	Paradigms   []uint16    // Массив парадигм в формате paradigms.array.

	// Closers освобождаются при закрытии анализатора.
	Closers []io.Closer
}

// buildLexicon проверяет данные и строит словарь.
func buildLexicon(a *Assets, log zerolog.Logger) (*lexicon, error) {
	if a.Words == nil {
		return nil, &LoadError{Asset: AssetWords, Err: errors.New("словарь не задан")}
	}
	registry, err := NewGrammemeRegistry(a.Grammemes)
	if err != nil {
		return nil, &LoadError{Asset: AssetGrammemes, Err: err}
	}
	if len(a.TagsInt) != len(a.TagsExt) {
		return nil, &LoadError{
			Asset: AssetTagsExt,
			Err:   fmt.Errorf("число тегов %d не совпадает с %d", len(a.TagsExt), len(a.TagsInt)),
		}
	}
	tags := make([]*Tag, len(a.TagsInt))
	for i := range a.TagsInt {
		tags[i] = newTagPair(registry, a.TagsInt[i], a.TagsExt[i])
	}
	paradigms, err := NewParadigmTable(a.Paradigms)
	if err != nil {
		return nil, &LoadError{Asset: AssetParadigms, Err: err}
	}
	tables, err := NewTables(tags, a.SuffixTable, paradigms)
	if err != nil {
		return nil, &LoadError{Asset: AssetParadigms, Err: err}
	}

	lx := newLexicon(a.Words, a.Prediction, a.Probabilities, tables, registry, log)
	lx.closers = a.Closers
	return lx, nil
}

// loadAssets параллельно читает все файлы словаря из каталога dir.
// При ошибке уже отображенные файлы освобождаются.
func loadAssets(ctx context.Context, dir string, log zerolog.Logger) (*Assets, error) {
	a := &Assets{}
	var mu sync.Mutex
	track := func(c io.Closer) {
		mu.Lock()
		a.Closers = append(a.Closers, c)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	loadGraph := func(name string, set func(*dawg.Graph)) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &LoadError{Asset: name, Err: err}
			}
			path, err := resolveAsset(dir, name, log)
			if err != nil {
				return &LoadError{Asset: name, Err: err}
			}
			graph, err := dawg.Load(path)
			if err != nil {
				return &LoadError{Asset: name, Err: err}
			}
			track(graph)
			set(graph)
			log.Debug().Str("asset", name).Int("nodes", graph.Len()).Msg("автомат загружен")
			return nil
		})
	}
	loadJSON := func(name string, dst any) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &LoadError{Asset: name, Err: err}
			}
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return &LoadError{Asset: name, Err: err}
			}
			if err := sonic.Unmarshal(data, dst); err != nil {
				return &LoadError{Asset: name, Err: err}
			}
			log.Debug().Str("asset", name).Int("bytes", len(data)).Msg("таблица загружена")
			return nil
		})
	}

	loadGraph(AssetWords, func(gr *dawg.Graph) { a.Words = dawg.NewWords(gr) })
	for i := range a.Prediction {
		i := i
		loadGraph(AssetPredictionSuffixes(i), func(gr *dawg.Graph) { a.Prediction[i] = dawg.NewSuffixes(gr) })
	}
	loadGraph(AssetProbabilities, func(gr *dawg.Graph) { a.Probabilities = dawg.NewCounts(gr) })
	loadJSON(AssetGrammemes, &a.Grammemes)
	loadJSON(AssetTagsInt, &a.TagsInt)
	loadJSON(AssetTagsExt, &a.TagsExt)
	loadJSON(AssetSuffixes, &a.SuffixTable)
	g.Go(func() error {
		paradigms, m, err := loadParadigms(filepath.Join(dir, AssetParadigms))
		if err != nil {
			return &LoadError{Asset: AssetParadigms, Err: err}
		}
		track(m)
		a.Paradigms = paradigms
		return nil
	})

	if err := g.Wait(); err != nil {
		closeAll(a.Closers)
		return nil, err
	}
	return a, nil
}

// mappedFile освобождает отображение файла при закрытии.
type mappedFile struct {
	mmap.MMap
}

func (m mappedFile) Close() error {
	return m.Unmap()
}

// loadParadigms отображает paradigms.array в память и возвращает его как []uint16.
func loadParadigms(path string) ([]uint16, io.Closer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка mmap.Map: %w", err)
	}
	if len(data)%2 != 0 {
		_ = data.Unmap()
		return nil, nil, fmt.Errorf("нечетная длина файла: %d байт", len(data))
	}
	return dawg.BytesToSlice[uint16](data), mappedFile{data}, nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}

// resolveAsset возвращает путь к файлу словаря. Большие файлы могут
// поставляться частями (words.dawg_aa, words.dawg_ab, ...): в этом случае
// части объединяются в один файл при первой загрузке.
func resolveAsset(dir, name string, log zerolog.Logger) (string, error) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}
	if err := mergeParts(dir, name+"_", path, log); err != nil {
		return "", err
	}
	return path, nil
}

// mergeParts склеивает части файла с префиксом prefix в outputPath.
func mergeParts(dir, prefix, outputPath string, log zerolog.Logger) error {
	var parts []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasPrefix(d.Name(), prefix) {
			parts = append(parts, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ошибка при поиске частей: %w", err)
	}
	if len(parts) == 0 {
		return fmt.Errorf("файл %s не найден: %w", outputPath, fs.ErrNotExist)
	}
	// split нумерует части aa, ab, ac, так что лексикографический порядок верный.
	sort.Strings(parts)

	tmpPath := outputPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("ошибка создания файла %s: %w", tmpPath, err)
	}
	for _, part := range parts {
		in, err := os.Open(part)
		if err != nil {
			out.Close()
			return fmt.Errorf("ошибка открытия части %s: %w", part, err)
		}
		_, err = io.Copy(out, in)
		in.Close()
		if err != nil {
			out.Close()
			return fmt.Errorf("ошибка копирования %s: %w", part, err)
		}
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return err
	}
	log.Info().Str("file", outputPath).Int("parts", len(parts)).Msg("части словаря объединены")
	return nil
}
