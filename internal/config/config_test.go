// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfig points ALSCTL_CFG_FILE at a testdata file and resets Config.
func withConfig(t *testing.T, file string) {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join("testdata", file))
	require.NoError(t, err)
	t.Setenv(EnvVar, abs)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })
}

func TestLoad(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		withConfig(t, "basic.yaml")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Contains(t, cfg.Source, "basic.yaml")
		assert.NotEmpty(t, cfg.Data)
	})

	t.Run("empty", func(t *testing.T) {
		withConfig(t, "empty.yaml")
		cfg, err := Load()
		require.NoError(t, err)
		assert.NotNil(t, cfg.Data)
	})

	t.Run("invalid", func(t *testing.T) {
		withConfig(t, "invalid.yaml")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("explicit path", func(t *testing.T) {
		t.Setenv(EnvVar, "")
		Config = Type{}
		cfg, err := Load(filepath.Join("testdata", "basic.yaml"))
		require.NoError(t, err)
		assert.Contains(t, cfg.Source, "basic.yaml")
	})

	t.Run("keeps namespace", func(t *testing.T) {
		withConfig(t, "basic.yaml")
		SetNamespace("tq")
		_, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "tq", Config.Namespace)
	})
}

func TestFile(t *testing.T) {
	t.Run("env file", func(t *testing.T) {
		withConfig(t, "basic.yaml")
		got, err := File()
		require.NoError(t, err)
		assert.Equal(t, "basic.yaml", filepath.Base(got))
	})

	t.Run("env directory", func(t *testing.T) {
		t.Setenv(EnvVar, t.TempDir())
		_, err := File()
		assert.ErrorContains(t, err, "directory")
	})

	t.Run("env missing", func(t *testing.T) {
		t.Setenv(EnvVar, filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := File()
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("user config dir", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvVar, "")
		t.Setenv("XDG_CONFIG_HOME", dir)
		base, err := os.UserConfigDir()
		if err != nil || !strings.HasPrefix(base, dir) {
			t.Skip("user config dir does not follow XDG_CONFIG_HOME here")
		}

		_, err = File()
		assert.Error(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(base, FileName), []byte("a: 1\n"), 0o600))
		got, err := File()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, FileName), got)
	})
}

func TestGetters(t *testing.T) {
	withConfig(t, "basic.yaml")

	s, err := GetString("parser.gate")
	require.NoError(t, err)
	assert.Equal(t, "permissive", s)

	s, err = GetString("label")
	require.NoError(t, err)
	assert.Equal(t, "7", s)

	s, err = GetString("nope", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", s)

	_, err = GetString("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = GetString("parser")
	assert.Error(t, err)

	n, err := GetInt("parser.max_anomalies")
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	n, err = GetInt("count")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = GetInt("cache.missing", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = GetInt("parser.gate")
	assert.Error(t, err)

	b, err := GetBool("parser.strict")
	require.NoError(t, err)
	assert.True(t, b)

	b, err = GetBool("parser.other", true)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = GetBool("parser.gate")
	assert.Error(t, err)

	list, err := GetStringSlice("tq.defaults")
	require.NoError(t, err)
	assert.Equal(t, []string{"--titles", "--color"}, list)

	list, err = GetStringSlice("sort")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, list)

	list, err = GetStringSlice("x.defaults", []string{"-o", "json"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-o", "json"}, list)

	_, err = GetStringSlice("parser.max_anomalies")
	assert.Error(t, err)
}

func TestNamespace(t *testing.T) {
	withConfig(t, "basic.yaml")

	s, err := GetString("sort")
	require.NoError(t, err)
	assert.Equal(t, "name", s)

	SetNamespace("tq")
	s, err = GetString("sort")
	require.NoError(t, err)
	assert.Equal(t, "-devices", s)

	s, err = GetString("aws.region")
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", s)
}

func TestMissingConfigIsEmpty(t *testing.T) {
	t.Setenv(EnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	n, err := GetInt("cache.clean_hours", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.NotNil(t, Config.Data)
}
