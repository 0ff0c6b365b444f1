package analyzer

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Unlimited снимает ограничение на число исправленных заиканий.
const Unlimited = math.MaxInt

// Typos - допустимое число опечаток: фиксированное или подбираемое по длине слова.
type Typos struct {
	Auto bool
	N    int
}

// AutoTypos - режим, в котором число опечаток растет с длиной слова.
var AutoTypos = Typos{Auto: true}

// FixedTypos задает фиксированное число опечаток.
func FixedTypos(n int) Typos {
	return Typos{N: n}
}

func (t Typos) String() string {
	if t.Auto {
		return "auto"
	}
	return strconv.Itoa(t.N)
}

// UnmarshalYAML принимает число или строку "auto".
func (t *Typos) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("typos: ожидается число или \"auto\"")
	}
	if strings.EqualFold(value.Value, "auto") {
		*t = AutoTypos
		return nil
	}
	n, err := strconv.Atoi(value.Value)
	if err != nil {
		return fmt.Errorf("typos: %w", err)
	}
	*t = FixedTypos(n)
	return nil
}

// Config - настройки одного вызова анализа.
type Config struct {
	// IgnoreCase - не учитывать регистр (например, для текста, набранного капсом).
	IgnoreCase bool
	// Replacements - допустимые замены букв при поиске в словаре (е -> ё).
	Replacements map[string]string
	// Stutter - сколько «заиканий» можно исправлять.
	Stutter int
	// Typos - сколько опечаток можно исправлять.
	Typos Typos
	// Parsers - порядок парсеров. Имя с '?' на конце - нетерминальный парсер.
	Parsers []string
	// ForceParse - при отсутствии разборов вернуть слово с тегом UNKN.
	ForceParse bool
	// NormalizeScore - нормировать оценки так, чтобы их сумма была равна 1.
	NormalizeScore bool
}

// DefaultParsers - порядок парсеров по умолчанию.
var DefaultParsers = []string{
	"Dictionary?", "AbbrName?", "AbbrPatronymic",
	"IntNumber", "RealNumber", "Punctuation", "RomanNumber?", "Latin",
	"HyphenParticle", "HyphenAdverb", "HyphenWords",
	"PrefixKnown", "PrefixUnknown?", "SuffixKnown?", "Abbr",
}

// DefaultConfig возвращает новую копию настроек по умолчанию.
func DefaultConfig() Config {
	return Config{
		Replacements:   map[string]string{"е": "ё"},
		Stutter:        Unlimited,
		Typos:          FixedTypos(0),
		Parsers:        append([]string(nil), DefaultParsers...),
		NormalizeScore: true,
	}
}

func (c Config) clone() Config {
	out := c
	out.Parsers = append([]string(nil), c.Parsers...)
	if c.Replacements != nil {
		out.Replacements = make(map[string]string, len(c.Replacements))
		for k, v := range c.Replacements {
			out.Replacements[k] = v
		}
	}
	return out
}

// ConfigOption меняет настройки одного вызова поверх настроек анализатора.
type ConfigOption func(*Config)

func WithIgnoreCase(v bool) ConfigOption {
	return func(c *Config) { c.IgnoreCase = v }
}

func WithReplacements(r map[string]string) ConfigOption {
	return func(c *Config) { c.Replacements = r }
}

func WithStutter(n int) ConfigOption {
	return func(c *Config) { c.Stutter = n }
}

func WithTypos(n int) ConfigOption {
	return func(c *Config) { c.Typos = FixedTypos(n) }
}

func WithAutoTypos() ConfigOption {
	return func(c *Config) { c.Typos = AutoTypos }
}

func WithParsers(names ...string) ConfigOption {
	return func(c *Config) { c.Parsers = names }
}

func WithForceParse(v bool) ConfigOption {
	return func(c *Config) { c.ForceParse = v }
}

func WithNormalizeScore(v bool) ConfigOption {
	return func(c *Config) { c.NormalizeScore = v }
}

// WithConfig заменяет все настройки разом.
func WithConfig(cfg Config) ConfigOption {
	return func(c *Config) { *c = cfg.clone() }
}

// configFile - настройки в YAML. Незаданные поля остаются из настроек по умолчанию.
type configFile struct {
	IgnoreCase     *bool             `yaml:"ignore_case"`
	Replacements   map[string]string `yaml:"replacements"`
	Stutter        *int              `yaml:"stutter"`
	Typos          *Typos            `yaml:"typos"`
	Parsers        []string          `yaml:"parsers"`
	ForceParse     *bool             `yaml:"force_parse"`
	NormalizeScore *bool             `yaml:"normalize_score"`
}

// ParseConfig читает настройки из YAML поверх base.
func ParseConfig(data []byte, base Config) (Config, error) {
	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return base, fmt.Errorf("ошибка разбора настроек: %w", err)
	}
	cfg := base.clone()
	if f.IgnoreCase != nil {
		cfg.IgnoreCase = *f.IgnoreCase
	}
	if f.Replacements != nil {
		cfg.Replacements = f.Replacements
	}
	if f.Stutter != nil {
		cfg.Stutter = *f.Stutter
		if cfg.Stutter < 0 {
			cfg.Stutter = Unlimited
		}
	}
	if f.Typos != nil {
		cfg.Typos = *f.Typos
	}
	if f.Parsers != nil {
		cfg.Parsers = f.Parsers
	}
	if f.ForceParse != nil {
		cfg.ForceParse = *f.ForceParse
	}
	if f.NormalizeScore != nil {
		cfg.NormalizeScore = *f.NormalizeScore
	}
	return cfg, nil
}

// LoadConfig читает YAML-файл настроек поверх DefaultConfig.
// Отрицательное значение stutter означает отсутствие ограничения.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("ошибка чтения настроек: %w", err)
	}
	return ParseConfig(data, DefaultConfig())
}

// EnvDictPath - переменная окружения для переопределения каталога словарей.
const EnvDictPath = "FUZZYMORPH_DICT_PATH"

// Settings - параметры процесса из окружения.
type Settings struct {
	DictPath   string `envconfig:"FUZZYMORPH_DICT_PATH"`
	LogLevel   string `envconfig:"FUZZYMORPH_LOGLEVEL" default:"INFO"`
	ConfigFile string `envconfig:"FUZZYMORPH_CONFIG"`
}

// LoadSettings читает Settings из окружения.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return s, fmt.Errorf("ошибка чтения окружения: %w", err)
	}
	return s, nil
}

// runConfig - настройки, подготовленные к одному вызову.
type runConfig struct {
	Config
	replacements map[rune]rune
}

func newRunConfig(cfg Config) *runConfig {
	rc := &runConfig{Config: cfg}
	if len(cfg.Replacements) > 0 {
		rc.replacements = make(map[rune]rune, len(cfg.Replacements))
		for from, to := range cfg.Replacements {
			f, fs := utf8.DecodeRuneInString(from)
			t, ts := utf8.DecodeRuneInString(to)
			// Замены длиннее одной буквы не поддерживаются и пропускаются.
			if fs != len(from) || ts != len(to) || fs == 0 || ts == 0 {
				continue
			}
			rc.replacements[f] = t
		}
	}
	return rc
}
