package theme

import (
	"testing"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/storage"
)

func setTestConfig(t *testing.T, defaultTheme string) {
	t.Helper()
	previous := config.AppConfig

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Theme.Default = defaultTheme
	config.AppConfig = cfg

	t.Cleanup(func() { config.AppConfig = previous })
}

func TestLoadPrefs(t *testing.T) {
	t.Run("Missing key falls back to the configured default", func(t *testing.T) {
		setTestConfig(t, "dark")

		prefs := LoadPrefs(storage.NewMemoryStore())
		if !prefs.DarkMode() {
			t.Error("Expected dark mode by default")
		}
		if prefs.Theme() != config.DarkTheme {
			t.Errorf("Expected %q, got %q", config.DarkTheme, prefs.Theme())
		}
	})

	t.Run("Light default", func(t *testing.T) {
		setTestConfig(t, "light")

		prefs := LoadPrefs(storage.NewMemoryStore())
		if prefs.DarkMode() {
			t.Error("Expected light mode by default")
		}
	})

	t.Run("Persisted value wins over the default", func(t *testing.T) {
		setTestConfig(t, "dark")

		backend := storage.NewMemoryStore()
		backend.Write(config.StorageKeyDarkMode, []byte("false"))

		prefs := LoadPrefs(backend)
		if prefs.DarkMode() {
			t.Error("Expected persisted light preference to win")
		}
	})

	t.Run("Corrupt value falls back to the default", func(t *testing.T) {
		setTestConfig(t, "dark")

		backend := storage.NewMemoryStore()
		backend.Write(config.StorageKeyDarkMode, []byte("not json"))

		prefs := LoadPrefs(backend)
		if !prefs.DarkMode() {
			t.Error("Expected the default to survive corrupt data")
		}
	})
}

func TestToggle(t *testing.T) {
	setTestConfig(t, "dark")
	backend := storage.NewMemoryStore()

	prefs := LoadPrefs(backend)
	if dark := prefs.Toggle(); dark {
		t.Error("Expected toggle away from dark")
	}

	// The flip must survive a reload.
	reloaded := LoadPrefs(backend)
	if reloaded.DarkMode() {
		t.Error("Expected persisted preference after toggle")
	}

	if dark := reloaded.Toggle(); !dark {
		t.Error("Expected toggle back to dark")
	}
}

func TestThemeName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"Dark shorthand", "dark", config.DarkTheme},
		{"Light shorthand", "light", config.LightTheme},
		{"Class name passes through", config.DarkTheme, config.DarkTheme},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ThemeName(c.input); got != c.want {
				t.Errorf("Expected %q, got %q", c.want, got)
			}
		})
	}
}

func TestGetThemeIcon(t *testing.T) {
	if got := GetThemeIcon(config.LightTheme); got != config.DarkThemeIcon {
		t.Errorf("Expected %q, got %q", config.DarkThemeIcon, got)
	}
	if got := GetThemeIcon(config.DarkTheme); got != config.LightThemeIcon {
		t.Errorf("Expected %q, got %q", config.LightThemeIcon, got)
	}
}
