package catalog

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// overlayFile is the on-disk shape of a catalog overlay.
type overlayFile struct {
	Products []Product `yaml:"products"`
}

// Load reads a YAML overlay file and merges it over the built-in catalog.
// Overlay products with a name already in the catalog replace that product;
// new names are appended in file order.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog overlay: %w", err)
	}
	var overlay overlayFile
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse catalog overlay: %w", err)
	}
	return merge(defaultProducts(), overlay.Products), nil
}

func merge(base, overlay []Product) *Catalog {
	index := make(map[string]int, len(base))
	for i, p := range base {
		index[p.Name] = i
	}
	for _, p := range overlay {
		if i, ok := index[p.Name]; ok {
			base[i] = p
			continue
		}
		index[p.Name] = len(base)
		base = append(base, p)
	}
	return New(base)
}

// Holder hands out the current catalog and lets a watcher swap it atomically.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// NewHolder creates a holder seeded with the given catalog.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.current.Store(c)
	return h
}

// Get returns the current catalog.
func (h *Holder) Get() *Catalog {
	return h.current.Load()
}

// Set replaces the current catalog.
func (h *Holder) Set(c *Catalog) {
	h.current.Store(c)
}

// Watch reloads the overlay file into the holder whenever it changes, until
// the context is cancelled. Reload errors are reported through onError and
// leave the current catalog in place.
func Watch(ctx context.Context, path string, holder *Holder, onError func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create catalog watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch catalog overlay: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				c, err := Load(path)
				if err != nil {
					if onError != nil {
						onError(err)
					}
					continue
				}
				holder.Set(c)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(err)
				}
			}
		}
	}()
	return nil
}
