// loader.go - layered config loading: defaults, then an optional YAML file,
// then environment variables (highest precedence), via koanf. Adapted from
// the retrieved logistics pack's pkg/config/loader.go, trimmed to the three
// sources that matter for a CLI (no remote config backends) and with an
// added fsnotify-driven Watch for hot-reloading the file layer.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PARAHPF_"

// Loader loads Config from defaults, an optional file, and the environment.
type Loader struct {
	k          *koanf.Koanf
	configPath string
	envPrefix  string
}

// LoaderOption customizes a Loader before Load is called.
type LoaderOption func(*Loader)

// WithConfigPath sets the YAML file to load, if it exists.
func WithConfigPath(path string) LoaderOption {
	return func(l *Loader) { l.configPath = path }
}

// NewLoader builds a Loader with the given options applied over defaults.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{k: koanf.New("."), envPrefix: envPrefix}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load applies defaults, then the config file (if configPath is set and
// exists), then environment variables, and unmarshals into a validated
// Config.
func (l *Loader) Load() (*Config, error) {
	defaults := map[string]any{
		"app.name":        "parahpf",
		"app.environment": "development",

		"solver.tolerance":      1e-8,
		"solver.round_negative": false,

		"log.level":       "info",
		"log.format":      "json",
		"log.output":      "stdout",
		"log.max_size":    100,
		"log.max_backups": 3,
		"log.max_age":     7,
		"log.compress":    true,

		"metrics.enabled": false,
		"metrics.addr":    ":9090",

		"history.enabled": false,
		"history.path":    "parahpf-history.db",
	}
	if err := l.k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading config defaults: %w", err)
	}

	if l.configPath != "" {
		if err := l.k.Load(file.Provider(l.configPath), yaml.Parser()); err != nil {
			// a missing file is not fatal - the CLI may run on defaults/env alone.
		}
	}

	if err := l.k.Load(env.Provider(l.envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, l.envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Watch invokes onChange whenever the loader's config file is written to,
// reloading and re-validating before calling back. It runs until the
// watcher's Events channel is closed or an unrecoverable setup error occurs.
func (l *Loader) Watch(onChange func(*Config, error)) (*fsnotify.Watcher, error) {
	if l.configPath == "" {
		return nil, fmt.Errorf("no config path set; nothing to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := watcher.Add(l.configPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", l.configPath, err)
	}

	go func() {
		for event := range watcher.Events {
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := l.Load()
			onChange(cfg, err)
		}
	}()

	return watcher, nil
}
