// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alsctl/alsctl/internal/log"
)

// EnvVar names the environment variable holding an explicit config path.
const EnvVar = "ALSCTL_CFG_FILE"

// FileName is the config file looked up in os.UserConfigDir.
const FileName = "alsctl.yaml"

// ErrNotFound is returned by getters for keys that are not present.
var ErrNotFound = errors.New("config key not found")

// Type is the loaded configuration. Namespace, when set, is tried as a
// prefix before the bare key, so "tq" makes "tq.sort" win over "sort".
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config is the process-wide configuration, loaded lazily.
var Config Type

// Load reads the YAML config from path, or from the default location when
// path is empty, and installs it as Config. The namespace survives a reload.
func Load(path ...string) (Type, error) {
	file := ""
	if len(path) > 0 {
		file = path[0]
	}
	if file == "" {
		var err error
		if file, err = File(); err != nil {
			return Type{}, err
		}
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	if data == nil {
		data = map[string]interface{}{}
	}

	Config = Type{Source: file, Namespace: Config.Namespace, Data: data}
	log.Debugf("config loaded: path=%s", file)
	return Config, nil
}

// SetNamespace sets the preferred key prefix for subsequent lookups.
func SetNamespace(ns string) {
	Config.Namespace = ns
}

// File returns the config path: ALSCTL_CFG_FILE when set, else alsctl.yaml in
// the user config directory. The file must exist and not be a directory.
func File() (string, error) {
	if p := os.Getenv(EnvVar); p != "" {
		info, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("config file not found at %s path: %s", EnvVar, p)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s points to a directory: %s", EnvVar, p)
		}
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	file := filepath.Join(dir, FileName)
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		return file, nil
	}
	return "", fmt.Errorf("no config file found in standard locations")
}

// Get returns the raw value for a dotted key. The first call loads the
// config; a missing file leaves an empty one in place.
func Get(key string) (interface{}, error) {
	if Config.Data == nil {
		if _, err := Load(); err != nil {
			log.Debugf("no config: %v", err)
			Config.Data = map[string]interface{}{}
		}
	}
	return Config.get(key)
}

// GetString returns a string value. A single default is returned when the
// key is missing.
func GetString(key string, defaultValue ...string) (string, error) {
	val, err := Get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}
	switch v := val.(type) {
	case string:
		return v, nil
	case int, float64, bool:
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("value of %s is not a string", key)
}

// GetInt returns an int value. A single default is returned when the key is
// missing.
func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := Get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	}
	return 0, fmt.Errorf("value of %s is not an int", key)
}

// GetBool returns a bool value. A single default is returned when the key is
// missing.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	val, err := Get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return false, err
	}
	if b, ok := val.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("value of %s is not a bool", key)
}

// GetStringSlice returns a list of strings. A single default is returned
// when the key is missing.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := Get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}
	switch v := val.(type) {
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("element %d of %s is not a string", i, key)
			}
			result[i] = s
		}
		return result, nil
	case string:
		return strings.Fields(v), nil
	}
	return nil, fmt.Errorf("value of %s is not a list", key)
}

// get walks the tree along a dotted key, trying the namespaced key first.
func (cfg *Type) get(kspec string) (interface{}, error) {
	candidates := []string{kspec}
	if cfg.Namespace != "" {
		candidates = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidates {
		var current interface{} = cfg.Data
		found := true
		for _, k := range strings.Split(key, ".") {
			m, ok := current.(map[string]interface{})
			if !ok {
				found = false
				break
			}
			if current, ok = m[k]; !ok {
				found = false
				break
			}
		}
		if found {
			return current, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.Join(candidates, ", "))
}
