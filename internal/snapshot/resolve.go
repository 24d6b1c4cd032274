// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Resolve picks versions from a most-recent-first list. With no specs the
// latest version is returned. Each spec is one of:
//
//	~N or CSV~N  the Nth version back, ~0 being the latest
//	0, -N        the same, as a bare non-positive number
//	N            the version with serial N
//	path         a snapshot file on disk
//	prefix       the first version whose ID starts with prefix
func Resolve(versions []*Version, specs ...string) ([]*Version, error) {
	if len(specs) == 0 {
		specs = []string{"~0"}
	}

	result := make([]*Version, 0, len(specs))
	for _, spec := range specs {
		v, err := resolveSpec(spec, versions)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func resolveSpec(spec string, versions []*Version) (*Version, error) {
	upper := strings.ToUpper(spec)
	switch {
	case strings.HasPrefix(upper, "~"), strings.HasPrefix(upper, "CSV~"):
		return resolveRelative(spec, versions)
	case isNumeric(spec):
		return resolveNumeric(spec, versions)
	case isFile(spec):
		return &Version{ID: spec, Path: spec}, nil
	}
	return resolveID(spec, versions)
}

func resolveRelative(spec string, versions []*Version) (*Version, error) {
	_, n, _ := strings.Cut(spec, "~")
	index, err := strconv.Atoi(n)
	if err != nil || index < 0 {
		return nil, fmt.Errorf("invalid version index: %s", spec)
	}
	return at(index, versions)
}

func resolveNumeric(spec string, versions []*Version) (*Version, error) {
	i, _ := strconv.Atoi(spec)
	if i <= 0 {
		return at(-i, versions)
	}
	for _, v := range versions {
		if v.Serial == int64(i) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("failed to find snapshot with serial %d", i)
}

func resolveID(spec string, versions []*Version) (*Version, error) {
	for _, v := range versions {
		if strings.HasPrefix(v.ID, spec) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("failed to find snapshot with ID prefix: %s", spec)
}

func at(index int, versions []*Version) (*Version, error) {
	if index > len(versions)-1 {
		return nil, fmt.Errorf("index %d out of range for %d snapshots", index, len(versions))
	}
	return versions[index], nil
}

func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func isFile(s string) bool {
	info, err := os.Stat(s)
	return err == nil && !info.IsDir()
}
