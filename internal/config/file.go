package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// fileBackend holds the YAML config file flattened to dotted keys, so the
// key specs can address "server.port" regardless of nesting depth.
type fileBackend struct {
	values map[string]any
}

// openFileBackend parses the config file at path. A missing file yields an
// empty backend; defaults and environment cover everything.
func openFileBackend(path string) (*fileBackend, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &fileBackend{values: map[string]any{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	b := &fileBackend{values: map[string]any{}}
	flatten("", tree, b.values)
	return b, nil
}

func flatten(prefix string, tree map[string]any, out map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			flatten(key, sub, out)
			continue
		}
		out[key] = v
	}
}

func (b *fileBackend) getString(key string) (string, bool, error) {
	v, ok := b.values[key]
	if !ok {
		return "", false, nil
	}
	switch t := v.(type) {
	case string:
		return t, true, nil
	case int:
		return strconv.Itoa(t), true, nil
	default:
		return "", false, fmt.Errorf("config key %s: expected string, got %T", key, v)
	}
}

func (b *fileBackend) getInt(key string) (int, bool, error) {
	v, ok := b.values[key]
	if !ok {
		return 0, false, nil
	}
	switch t := v.(type) {
	case int:
		return t, true, nil
	case string:
		i, err := strconv.Atoi(t)
		if err != nil {
			return 0, false, fmt.Errorf("config key %s: %w", key, err)
		}
		return i, true, nil
	default:
		return 0, false, fmt.Errorf("config key %s: expected integer, got %T", key, v)
	}
}

func (b *fileBackend) getBool(key string) (bool, bool, error) {
	v, ok := b.values[key]
	if !ok {
		return false, false, nil
	}
	switch t := v.(type) {
	case bool:
		return t, true, nil
	case string:
		bv, err := strconv.ParseBool(t)
		if err != nil {
			return false, false, fmt.Errorf("config key %s: %w", key, err)
		}
		return bv, true, nil
	default:
		return false, false, fmt.Errorf("config key %s: expected bool, got %T", key, v)
	}
}
