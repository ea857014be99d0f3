package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Options controls where properties are read from.
type Options struct {
	// BasePath is the directory holding the properties file.
	BasePath string
	// FileName is the file name without extension. A "<FileName>.local"
	// file next to it is merged on top.
	FileName string
	// FileType is the file extension and format (yaml, json, toml, properties).
	FileType string
	// EnvPrefix is prepended to environment variable names, e.g. APP_JCDP_LEVEL.
	EnvPrefix string
	// WatchAble re-reads the file when it changes.
	WatchAble bool
	// OnChange is called after a watched file was re-read.
	OnChange func(e fsnotify.Event)
}

// DefaultOptions reads config/jcdp.yaml, or $CONFIG_PATH/jcdp.yaml.
func DefaultOptions() Options {
	basePath := os.Getenv("CONFIG_PATH")
	if basePath == "" {
		basePath = "config"
	}

	return Options{
		BasePath: basePath,
		FileName: "jcdp",
		FileType: "yaml",
	}
}

// Properties is a process-wide key/value store.
//
// Values come, from lowest to highest priority, from the properties file,
// the environment (jcdp.file.path <- JCDP_FILE_PATH) and Set. Keys are
// case-insensitive.
type Properties struct {
	opts Options

	mu        sync.RWMutex
	instance  *viper.Viper
	files     []string
	overrides map[string]string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewProperties builds a store from opts, or DefaultOptions if none.
// Missing files are not an error.
func NewProperties(optsArr ...Options) (*Properties, error) {
	opts := DefaultOptions()
	if len(optsArr) > 0 {
		opts = optsArr[0]
	}

	v, files, err := createViper(opts)
	if err != nil {
		return nil, err
	}

	p := &Properties{
		opts:      opts,
		instance:  v,
		files:     files,
		overrides: make(map[string]string),
	}
	if opts.WatchAble {
		if err := p.watch(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func createViper(opts Options) (*viper.Viper, []string, error) {
	v := viper.New()
	if opts.FileType != "" {
		v.SetConfigType(opts.FileType)
	}

	files := configFilePaths(opts)
	for i, file := range files {
		v.SetConfigFile(file)
		var err error
		if i == 0 {
			err = v.ReadInConfig()
		} else {
			err = v.MergeInConfig()
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read properties file %s: %w", file, err)
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if opts.EnvPrefix != "" {
		v.SetEnvPrefix(opts.EnvPrefix)
	}
	v.AutomaticEnv()

	return v, files, nil
}

func configFilePaths(opts Options) []string {
	if opts.FileName == "" || opts.FileType == "" {
		return nil
	}

	var files []string
	for _, name := range []string{opts.FileName, opts.FileName + ".local"} {
		file := filepath.Join(opts.BasePath, name+"."+opts.FileType)
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			files = append(files, file)
		}
	}
	return files
}

// watch re-reads the files whenever one of them is written, created or
// replaced in BasePath.
func (p *Properties) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch properties: %w", err)
	}
	if err := watcher.Add(filepath.Clean(p.opts.BasePath)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch properties in %s: %w", p.opts.BasePath, err)
	}

	watched := make(map[string]struct{})
	for _, name := range []string{p.opts.FileName, p.opts.FileName + ".local"} {
		watched[filepath.Join(filepath.Clean(p.opts.BasePath), name+"."+p.opts.FileType)] = struct{}{}
	}

	p.watcher = watcher
	p.done = make(chan struct{})
	go func() {
		defer close(p.done)
		for {
			select {
			case e, ok := <-watcher.Events:
				if !ok {
					return
				}
				if _, hit := watched[filepath.Clean(e.Name)]; !hit {
					continue
				}
				if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) && !e.Has(fsnotify.Rename) {
					continue
				}
				if err := p.Reload(); err != nil {
					fmt.Fprintf(os.Stderr, "properties reload error: %v\n", err)
					continue
				}
				if p.opts.OnChange != nil {
					p.opts.OnChange(e)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "properties watch error: %v\n", err)
			}
		}
	}()
	return nil
}

// Reload re-reads the files and the environment. Values from Set are kept.
// On error the previous values stay in effect.
func (p *Properties) Reload() error {
	v, files, err := createViper(p.opts)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.instance = v
	p.files = files
	return nil
}

// Close stops watching. It is a no-op for a store that does not watch.
func (p *Properties) Close() error {
	if p.watcher == nil {
		return nil
	}
	err := p.watcher.Close()
	<-p.done
	p.watcher = nil
	return err
}

// Get returns the value for key and whether it is set anywhere.
func (p *Properties) Get(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if v, ok := p.overrides[strings.ToLower(key)]; ok {
		return v, true
	}
	if !p.instance.IsSet(key) {
		return "", false
	}
	return p.instance.GetString(key), true
}

// Set overrides key for every later Get, reloads included.
func (p *Properties) Set(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.overrides[strings.ToLower(key)] = value
}

// Unset removes a value given to Set.
func (p *Properties) Unset(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.overrides, strings.ToLower(key))
}

// Keys returns the known keys starting with prefix, lowercased and sorted.
// Keys only present in the environment are not listed.
func (p *Properties) Keys(prefix string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	prefix = strings.ToLower(prefix)
	seen := make(map[string]struct{})
	for _, key := range p.instance.AllKeys() {
		seen[key] = struct{}{}
	}
	for key := range p.overrides {
		seen[key] = struct{}{}
	}

	var keys []string
	for key := range seen {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns the current value of every key starting with prefix.
func (p *Properties) Snapshot(prefix string) map[string]string {
	snapshot := make(map[string]string)
	for _, key := range p.Keys(prefix) {
		if v, ok := p.Get(key); ok {
			snapshot[key] = v
		}
	}
	return snapshot
}

// Files returns the properties files that were read, base file first.
func (p *Properties) Files() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return append([]string(nil), p.files...)
}
