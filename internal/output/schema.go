// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/alsctl/alsctl/internal/log"
)

// DumpSchema writes the row keys of typ that --attrs, --filter and --sort
// accept, sorted.
func DumpSchema(typ reflect.Type, w io.Writer) {
	fmt.Fprintln(w, "Row attributes available to the --attrs, --filter and --sort flags.")
	fmt.Fprintln(w, "")

	keys := schemaKeys(typ)
	if len(keys) == 0 {
		log.Debugf("no json tags found for type: %s", typ.Name())
		return
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintln(w, k)
	}
}

// schemaKeys returns the json names of typ's exported fields. Slices are
// marked with [] to hint at the driller index syntax.
func schemaKeys(typ reflect.Type) []string {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	keys := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag, ok := field.Tag.Lookup("json")
		if !ok || !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		if field.Type.Kind() == reflect.Slice {
			name += "[]"
		}
		keys = append(keys, name)
	}
	return keys
}
