// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/alsctl/alsctl/internal/attrs"
	"github.com/alsctl/alsctl/internal/filters"
	"github.com/alsctl/alsctl/internal/log"
)

// Formats accepted by --output.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatRaw  = "raw"
)

// InterfaceToString renders a row value for a table cell. Zero values render
// as emptyValue, "" by default.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	empty := ""
	if len(emptyValue) > 0 {
		empty = emptyValue[0]
	}
	if value == nil || reflect.ValueOf(value).IsZero() {
		return empty
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}

// SliceDiceSpit filters, transforms, sorts and renders a JSON array of rows
// according to the command's --output, --filter and --sort flags. raw output
// writes the array untouched. postProcess, when given, runs on the text path
// only, after sorting.
func SliceDiceSpit(raw []byte,
	list attrs.AttrList,
	cmd *cli.Command,
	w io.Writer,
	postProcess func([]map[string]interface{}) error) error {

	if w == nil {
		w = os.Stdout
	}

	format := cmd.String("output")
	if format == FormatRaw {
		_, err := w.Write(raw)
		return err
	}

	list.SetGlobalTransformSpec()
	dataset := filters.FilterDataset(gjson.ParseBytes(raw), list, cmd.String("filter"))

	for _, row := range dataset {
		for i := range list {
			if list[i].TransformSpec != "" && list[i].Key != "*" {
				row[list[i].OutputKey] = list[i].Transform(row[list[i].OutputKey])
			}
		}
	}

	SortDataset(dataset, cmd.String("sort"))
	log.Debugf("rows: count=%d format=%s", len(dataset), format)

	switch format {
	case FormatJSON:
		b, err := json.Marshal(project(dataset, list))
		if err != nil {
			return fmt.Errorf("failed to marshal rows: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatYAML:
		b, err := yaml.Marshal(project(dataset, list))
		if err != nil {
			return fmt.Errorf("failed to marshal rows: %w", err)
		}
		_, err = w.Write(b)
		return err
	}

	if postProcess != nil {
		if err := postProcess(dataset); err != nil {
			return err
		}
	}
	TableWriter(dataset, list, cmd, w)
	return nil
}

// project drops hidden columns from each row.
func project(dataset []map[string]interface{}, list attrs.AttrList) []map[string]interface{} {
	included := list.Included()
	out := make([]map[string]interface{}, 0, len(dataset))
	for _, row := range dataset {
		m := make(map[string]interface{}, len(included))
		for _, attr := range included {
			m[attr.OutputKey] = row[attr.OutputKey]
		}
		out = append(out, m)
	}
	return out
}
