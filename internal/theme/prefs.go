package theme

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/storage"
)

var themeLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	themeLogger = l
}

// Prefs persists the dark-mode preference under its own storage key,
// independent of the post collection.
type Prefs struct {
	mu      sync.Mutex
	storage storage.Store
	dark    bool
}

// LoadPrefs reads the persisted preference; missing or corrupt data
// falls back to the configured default theme.
func LoadPrefs(backend storage.Store) *Prefs {
	prefs := &Prefs{
		storage: backend,
		dark:    ThemeName(config.AppConfig.Theme.Default) == config.DarkTheme,
	}

	data, err := backend.Read(config.StorageKeyDarkMode)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			themeLogger.Warn().Err(err).Msg("Error reading theme preference")
		}
		return prefs
	}

	var dark bool
	if err := json.Unmarshal(data, &dark); err != nil {
		themeLogger.Warn().Err(err).Msg("Theme preference is corrupt, using default")
		return prefs
	}

	prefs.dark = dark
	return prefs
}

func (p *Prefs) DarkMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dark
}

// Theme returns the CSS class name for the current preference.
func (p *Prefs) Theme() string {
	if p.DarkMode() {
		return config.DarkTheme
	}
	return config.LightTheme
}

// Toggle flips the preference and persists it. The new dark-mode state
// is returned; a storage failure only loses durability, not the flip.
func (p *Prefs) Toggle() bool {
	p.mu.Lock()
	p.dark = !p.dark
	dark := p.dark
	p.mu.Unlock()

	data, _ := json.Marshal(dark)
	if err := p.storage.Write(config.StorageKeyDarkMode, data); err != nil {
		themeLogger.Warn().Err(err).Msg("Error persisting theme preference")
	}
	return dark
}
