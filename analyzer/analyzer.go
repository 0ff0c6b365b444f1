// Этот файл содержит точку входа морфологического анализатора.
// Engine загружает словари (words.dawg, автоматы суффиксов, таблицы тегов
// и парадигм), после чего разбирает слова с учетом заиканий и опечаток.
// Загруженный словарь неизменяем, поэтому Analyze можно вызывать из любого
// числа горутин. Close дожидается окончания начатых разборов.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/steosofficial/fuzzymorph/logger"
)

// Engine - морфологический анализатор.
type Engine struct {
	lex    atomic.Pointer[lexicon]
	initMu sync.Mutex
	// Разборы держат closeMu на чтение, Close на запись: файлы не
	// освобождаются, пока их читает хотя бы один разбор.
	closeMu  sync.RWMutex
	defaults Config
	log      zerolog.Logger
}

// Option настраивает Engine при создании.
type Option func(*Engine)

// WithLogger задает логгер анализатора.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithDefaults задает настройки по умолчанию для всех вызовов Analyze.
func WithDefaults(cfg Config) Option {
	return func(e *Engine) { e.defaults = cfg.clone() }
}

// New создает анализатор без словарей. До вызова Init разбор возвращает ErrNotInitialized.
func New(opts ...Option) *Engine {
	e := &Engine{
		defaults: DefaultConfig(),
		log:      logger.NewLogger("analyzer"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load создает анализатор и загружает словари из каталога dir.
func Load(ctx context.Context, dir string, opts ...Option) (*Engine, error) {
	e := New(opts...)
	if err := e.Init(ctx, dir); err != nil {
		return nil, err
	}
	return e, nil
}

// LoadDefault создает анализатор по настройкам окружения: каталог словарей
// берется из FUZZYMORPH_DICT_PATH, а если она не задана, из каталога dicts
// рядом с пакетом. FUZZYMORPH_CONFIG может указывать на YAML-файл настроек.
func LoadDefault(ctx context.Context) (*Engine, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}
	log := logger.NewLoggerWithLevel("analyzer", settings.LogLevel)

	defaults := DefaultConfig()
	if settings.ConfigFile != "" {
		if defaults, err = LoadConfig(settings.ConfigFile); err != nil {
			return nil, err
		}
		log.Info().Str("file", settings.ConfigFile).Msg("настройки загружены")
	}

	dir := settings.DictPath
	if dir == "" {
		_, currentFilePath, _, ok := runtime.Caller(0)
		if !ok {
			return nil, errors.New("не удалось определить путь к пакету analyzer")
		}
		dir = filepath.Join(filepath.Dir(currentFilePath), "dicts")
	}

	e, err := Load(ctx, dir, WithLogger(log), WithDefaults(defaults))
	if err != nil {
		return nil, fmt.Errorf("%w (каталог можно задать переменной %s)", err, EnvDictPath)
	}
	return e, nil
}

// Init загружает словари из каталога dir. Анализатор становится готовым
// только если загрузились все файлы; при ошибке возвращается *LoadError.
func (e *Engine) Init(ctx context.Context, dir string) error {
	e.initMu.Lock()
	defer e.initMu.Unlock()
	if e.lex.Load() != nil {
		return ErrAlreadyInitialized
	}

	start := time.Now()
	e.log.Info().Str("dir", dir).Msg("загрузка словарей")
	assets, err := loadAssets(ctx, dir, e.log)
	if err != nil {
		e.log.Error().Err(err).Msg("словари не загружены")
		return err
	}
	lx, err := buildLexicon(assets, e.log)
	if err != nil {
		closeAll(assets.Closers)
		e.log.Error().Err(err).Msg("словари повреждены")
		return err
	}
	e.lex.Store(lx)
	e.log.Info().Dur("elapsed", time.Since(start)).Int("tags", len(assets.TagsInt)).Msg("словари загружены")
	return nil
}

// InitAssets инициализирует анализатор уже загруженными данными.
// При ошибке закрывает a.Closers.
func (e *Engine) InitAssets(a *Assets) error {
	e.initMu.Lock()
	defer e.initMu.Unlock()
	if e.lex.Load() != nil {
		return ErrAlreadyInitialized
	}
	lx, err := buildLexicon(a, e.log)
	if err != nil {
		closeAll(a.Closers)
		return err
	}
	e.lex.Store(lx)
	return nil
}

// Ready сообщает, загружены ли словари.
func (e *Engine) Ready() bool {
	return e.lex.Load() != nil
}

// Defaults возвращает копию настроек по умолчанию.
func (e *Engine) Defaults() Config {
	return e.defaults.clone()
}

// Close освобождает отображенные в память файлы. После Close анализатор не готов.
// Close ждет завершения идущих разборов. Варианты, полученные раньше,
// ссылаются на таблицы словаря, и Inflect, Normalize и Forms на них
// после Close вызывать нельзя.
func (e *Engine) Close() error {
	e.closeMu.Lock()
	defer e.closeMu.Unlock()
	lx := e.lex.Swap(nil)
	if lx == nil {
		return nil
	}
	return lx.Close()
}

// Analyze разбирает слово и возвращает варианты разбора по убыванию оценки.
// Отсутствие разборов не является ошибкой.
//
//	variants, err := engine.Analyze("стали", analyzer.WithAutoTypos())
func (e *Engine) Analyze(word string, opts ...ConfigOption) ([]*Variant, error) {
	e.closeMu.RLock()
	defer e.closeMu.RUnlock()
	lx := e.lex.Load()
	if lx == nil {
		return nil, ErrNotInitialized
	}
	return e.analyze(lx, word, e.runConfig(opts)), nil
}

func (e *Engine) runConfig(opts []ConfigOption) *runConfig {
	cfg := e.defaults.clone()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newRunConfig(cfg)
}

func (e *Engine) analyze(lx *lexicon, word string, cfg *runConfig) []*Variant {
	// Разложенные «ё» и «й» собираются в одну букву, как в словаре.
	word = norm.NFC.String(word)
	variants := runPipeline(lx, word, cfg)
	scoreVariants(lx, variants, cfg)
	return variants
}

// AnalyzeList разбирает список слов параллельно.
// Результат i соответствует слову words[i].
func (e *Engine) AnalyzeList(words []string, opts ...ConfigOption) ([][]*Variant, error) {
	e.closeMu.RLock()
	defer e.closeMu.RUnlock()
	lx := e.lex.Load()
	if lx == nil {
		return nil, ErrNotInitialized
	}
	cfg := e.runConfig(opts)

	const chunkSize = 1000
	numWorkers := runtime.NumCPU()
	results := make([][]*Variant, len(words))

	// Канал для отправки «пакетов» в воркеры: индекс начала и сами слова.
	type chunk struct {
		start int
		words []string
	}
	chunksCh := make(chan chunk, numWorkers)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for c := range chunksCh {
				for j, word := range c.words {
					results[c.start+j] = e.analyze(lx, word, cfg)
				}
			}
		}()
	}

	for i := 0; i < len(words); i += chunkSize {
		end := min(i+chunkSize, len(words))
		chunksCh <- chunk{start: i, words: words[i:end]}
	}
	close(chunksCh)
	wg.Wait()

	return results, nil
}
