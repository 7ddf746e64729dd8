// Package recognizer selects and caches datetime models by culture.
package recognizer

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/datetimex/plugin/datetime"
	"github.com/hrygo/datetimex/plugin/datetime/english"
)

// ErrUnsupportedCulture is returned for a culture with no locale.
var ErrUnsupportedCulture = errors.New("unsupported culture")

// DefaultCulture is used when the caller names none.
const DefaultCulture = english.Culture

type localeFactory func(opts datetime.Options) (datetime.Locale, error)

var factories = map[string]localeFactory{
	english.Culture: func(opts datetime.Options) (datetime.Locale, error) {
		return english.New(opts)
	},
}

// Cultures lists the supported culture codes.
func Cultures() []string {
	codes := make([]string, 0, len(factories))
	for code := range factories {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// NearestCulture maps a culture code onto a supported one: an exact match
// wins, otherwise any supported culture of the same language. An empty code
// is DefaultCulture.
func NearestCulture(culture string) (string, bool) {
	culture = strings.ToLower(strings.TrimSpace(culture))
	if culture == "" {
		return DefaultCulture, true
	}
	culture = strings.ReplaceAll(culture, "_", "-")
	if _, ok := factories[culture]; ok {
		return culture, true
	}
	lang, _, _ := strings.Cut(culture, "-")
	for _, code := range Cultures() {
		if strings.HasPrefix(code, lang+"-") {
			return code, true
		}
	}
	return "", false
}

// New builds a model for culture.
func New(culture string, opts datetime.Options) (*datetime.Model, error) {
	code, ok := NearestCulture(culture)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedCulture, "culture %q", culture)
	}
	locale, err := factories[code](opts)
	if err != nil {
		return nil, errors.Wrapf(err, "build locale %s", code)
	}
	return datetime.NewModel(locale, opts), nil
}

type cacheKey struct {
	culture             string
	inclusiveEndPeriod  bool
	skipAmbiguityFilter bool
	matchTimeout        time.Duration
}

// Cache builds each culture and option combination once. Models are safe
// for concurrent use, so one instance serves every caller.
type Cache struct {
	mu     sync.Mutex
	models map[cacheKey]*datetime.Model
}

// NewCache returns an empty model cache.
func NewCache() *Cache {
	return &Cache{models: make(map[cacheKey]*datetime.Model)}
}

// Get returns the cached model for culture and opts, building it on first
// use. The logger of opts is taken from the first call.
func (c *Cache) Get(culture string, opts datetime.Options) (*datetime.Model, error) {
	code, ok := NearestCulture(culture)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedCulture, "culture %q", culture)
	}
	key := cacheKey{
		culture:             code,
		inclusiveEndPeriod:  opts.InclusiveEndPeriod,
		skipAmbiguityFilter: opts.SkipAmbiguityFilter,
		matchTimeout:        opts.MatchTimeout,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.models[key]; ok {
		return m, nil
	}
	m, err := New(code, opts)
	if err != nil {
		return nil, err
	}
	c.models[key] = m
	return m, nil
}
