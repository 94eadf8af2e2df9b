// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in os.UserConfigDir.
const FileName = "dbba.yaml"

// Type is the loaded configuration. Source is the file it came from and Data
// the raw YAML tree. When Namespace is set (the dbba command being run),
// "<Namespace>.<key>" is preferred over "<key>".
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config holds the global, lazily-initialized configuration instance.
var Config Type

// A missing config file is not an error at startup; getters retry the load.
func init() {
	_, _ = Load()
}

// GetInt returns the integer at the dotted key. YAML numbers may decode as
// int, int64 or float64; floats are truncated.
func GetInt(key string, defaultValue ...int) (int, error) {
	return lookup(key, defaultValue, func(val any) (int, error) {
		switch v := val.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			return int(v), nil
		}
		return 0, errors.New("value is not an int")
	})
}

// GetBool returns the boolean at the dotted key.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	return lookup(key, defaultValue, func(val any) (bool, error) {
		if b, ok := val.(bool); ok {
			return b, nil
		}
		return false, errors.New("value is not a bool")
	})
}

// GetString returns the string at the dotted key.
func GetString(key string, defaultValue ...string) (string, error) {
	return lookup(key, defaultValue, func(val any) (string, error) {
		if s, ok := val.(string); ok {
			return s, nil
		}
		return "", errors.New("value is not a string")
	})
}

// GetStringSlice returns the list of strings at the dotted key, e.g. a named
// argument set such as "run.ci".
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	return lookup(key, defaultValue, func(val any) ([]string, error) {
		switch v := val.(type) {
		case []string:
			return v, nil
		case []interface{}:
			result := make([]string, len(v))
			for i, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, errors.New("slice element is not a string")
				}
				result[i] = s
			}
			return result, nil
		}
		return nil, errors.New("value is not a slice")
	})
}

// lookup resolves key and converts it. A single default is returned when the
// key is missing; conversion errors are returned as is.
func lookup[T any](key string, defaultValue []T, convert func(any) (T, error)) (T, error) {
	var zero T
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return zero, err
	}
	return convert(val)
}

// Load reads the YAML config file and replaces the global Config. A single
// namespace argument becomes Config.Namespace.
func Load(namespace ...string) (Type, error) {
	path, err := getConfigFile()
	if err != nil {
		return Type{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{Source: path, Data: data}
	if len(namespace) == 1 {
		Config.Namespace = namespace[0]
	}

	return Config, nil
}

// get walks the tree along a dotted key such as "run.format", trying the
// namespaced key first.
func (cfg *Type) get(kspec string) (any, error) {
	if len(cfg.Data) == 0 && cfg.Source == "" {
		_, _ = Load()
	}

	var candidates []string
	if cfg.Namespace != "" {
		candidates = append(candidates, cfg.Namespace+"."+kspec)
	}
	candidates = append(candidates, kspec)

	for _, key := range candidates {
		if v, ok := walk(cfg.Data, strings.Split(key, ".")); ok {
			return v, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidates)
}

func walk(node any, keys []string) (any, bool) {
	for _, k := range keys {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if node, ok = m[k]; !ok {
			return nil, false
		}
	}
	return node, true
}

// getConfigFile returns the config file path: DBBA_CFG_FILE when set,
// otherwise FileName in os.UserConfigDir. The file must exist and not be a
// directory.
func getConfigFile() (string, error) {
	if cfgPath := os.Getenv("DBBA_CFG_FILE"); cfgPath != "" {
		info, err := os.Stat(cfgPath)
		switch {
		case err != nil:
			return "", fmt.Errorf("config file not found at DBBA_CFG_FILE path: %s", cfgPath)
		case info.IsDir():
			return "", fmt.Errorf("DBBA_CFG_FILE points to a directory: %s", cfgPath)
		}
		log.Debugf("using config file from DBBA_CFG_FILE: %s", cfgPath)
		return cfgPath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, FileName)
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		log.Debugf("using config file: %s", file)
		return file, nil
	}

	return "", fmt.Errorf("no config file found in standard locations")
}
