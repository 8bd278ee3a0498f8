package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// watchDebounce is how long a file must stay quiet before a change is reported.
const watchDebounce = 50 * time.Millisecond

// Loader reads a machine definition from a YAML or JSON file.
type Loader struct {
	Path string
}

// NewLoader creates a loader for the file at path.
func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

// Load reads and decodes the file. The machine name defaults to the file name.
func (l *Loader) Load(ctx context.Context) (*domain.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, l.Path)
		}
		return nil, fmt.Errorf("failed to read machine file: %w", err)
	}

	def, err := Parse(data, filepath.Ext(l.Path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	if def.Name == "" {
		base := filepath.Base(l.Path)
		def.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return def, nil
}

// Parse decodes a machine document. ext selects the syntax (".json" for JSON,
// anything else is treated as YAML).
// Scalars keep their literal text, so inputs such as 0011 stay "0011".
func Parse(data []byte, ext string) (*domain.Definition, error) {
	var raw any

	if strings.EqualFold(ext, ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	} else {
		// Default to YAML
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
		raw = plainValue(&node)
	}
	if _, ok := raw.(map[string]any); !ok {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidDefinition)
	}

	var doc dto.MachineDocument
	if err := dto.Decode(raw, &doc); err != nil {
		return nil, err
	}
	m := doc.Machine()
	return m.ToDefinition()
}

// plainValue converts a YAML tree to maps and slices of strings.
// yaml.v3 would otherwise resolve 0011 to the integer 9 before the
// weakly typed decode turns it back into text.
func plainValue(node *yaml.Node) any {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil
		}
		return plainValue(node.Content[0])
	case yaml.AliasNode:
		return plainValue(node.Alias)
	case yaml.MappingNode:
		out := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			out[node.Content[i].Value] = plainValue(node.Content[i+1])
		}
		return out
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			out = append(out, plainValue(item))
		}
		return out
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return nil
		}
		return node.Value
	}
	return nil
}

// Watch implements ports.Watchable. The parent directory is watched so a file
// replaced on save (rename over the original) is still seen. Bursts of events
// are coalesced into one notification carrying the path.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	abs, err := filepath.Abs(l.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", l.Path, err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		defer watcher.Close()

		settle := time.NewTimer(watchDebounce)
		settle.Stop()
		defer settle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs || evt.Op == fsnotify.Chmod {
					continue
				}
				settle.Reset(watchDebounce)
			case _, ok := <-watcher.Errors:
				// Overflow errors only mean events were dropped; keep watching.
				if !ok {
					return
				}
			case <-settle.C:
				select {
				case ch <- l.Path:
				default:
				}
			}
		}
	}()
	return ch, nil
}

// Marshal renders a definition in the nested layout understood by Parse.
func Marshal(def *domain.Definition) ([]byte, error) {
	m := dto.FromDefinition(def)
	inputs := m.Inputs
	m.Inputs = nil

	doc := struct {
		MT     dto.MachineMetadata `yaml:"mt"`
		Inputs []string            `yaml:"inputs,omitempty"`
	}{MT: m, Inputs: inputs}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal machine: %w", err)
	}
	return out, nil
}
