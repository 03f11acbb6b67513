package commands

import (
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/storyreader/pkg/commands/options"
	"tableflip.dev/storyreader/pkg/config"
	"tableflip.dev/storyreader/pkg/content"
	"tableflip.dev/storyreader/pkg/logging"
	"tableflip.dev/storyreader/pkg/prefs"
	"tableflip.dev/storyreader/pkg/reader"
	"tableflip.dev/storyreader/pkg/site"
)

// env is what a command needs to talk to a site.
type env struct {
	cfg     *config.Config
	log     *zap.SugaredLogger
	src     site.Source
	fetcher *content.Fetcher
}

// loadConfig reads the config file and env, then applies flag overrides.
func loadConfig(so *options.SiteOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if so != nil {
		if so.Site != "" {
			cfg.Site = so.Site
		}
		if so.Catalog != "" {
			cfg.Catalog = so.Catalog
		}
	}
	return cfg, nil
}

// loadEnv builds the site, cache and logger. logPath overrides the
// configured log destination; the reader passes "" to keep the terminal
// clean.
func loadEnv(so *options.SiteOptions, logPath string) (*env, error) {
	cfg, err := loadConfig(so)
	if err != nil {
		return nil, err
	}
	if logPath == "" {
		logPath = cfg.LogFile
	}
	log, err := logging.New(logPath, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	src, err := site.New(cfg.Site)
	if err != nil {
		return nil, fmt.Errorf("open site %q: %w", cfg.Site, err)
	}
	fetcher, err := content.NewFetcher(src, cfg.CacheSize, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, src: src, fetcher: fetcher}, nil
}

func (e *env) readerOptions() reader.Options {
	return reader.OptionsFromConfig(e.cfg)
}

// openPrefs opens the on-disk store, or a throwaway one when persist is off.
func (e *env) openPrefs(persist bool) (prefs.Store, error) {
	if !persist {
		return prefs.NewMemory(), nil
	}
	return prefs.OpenDisk(e.cfg.PrefsPath)
}

// readerPrefs is openPrefs for the reader: a store that cannot be opened
// degrades to memory so the reader still starts.
func (e *env) readerPrefs(persist bool) prefs.Store {
	store, err := e.openPrefs(persist)
	if err != nil {
		e.log.Warnw("preferences unavailable, not persisting", "path", e.cfg.PrefsPath, "error", err)
		return prefs.NewMemory()
	}
	return store
}
