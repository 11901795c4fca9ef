package segment

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a Segmenter for one language.
type Factory func(opts Options) (Segmenter, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a factory for a language code.
// Panics if the code is already registered.
func Register(lang string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[lang]; exists {
		panic(fmt.Sprintf("segmenter %q already registered", lang))
	}
	registry[lang] = factory
}

// New builds the segmenter registered for lang.
// Returns ErrUnsupportedLanguage if lang is not registered and ErrModel if
// the factory fails.
//
// Loading a punkt model is not free; call New once at startup and share the
// result.
func New(lang string, opts Options) (Segmenter, error) {
	registryMu.RLock()
	factory, ok := registry[lang]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnsupportedLanguage, lang, Available())
	}

	seg, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrModel, lang, err)
	}
	if opts.FixUnicode {
		seg = Fixing{Inner: seg}
	}
	return seg, nil
}

// Available returns the registered language codes, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a segmenter exists for lang.
func IsRegistered(lang string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, ok := registry[lang]
	return ok
}

// Unregister removes a language code. Primarily useful for testing.
func Unregister(lang string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	delete(registry, lang)
}
