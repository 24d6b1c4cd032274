// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/alsctl/alsctl/internal/attrs"
	"github.com/alsctl/alsctl/internal/driller"
	"github.com/alsctl/alsctl/internal/log"
)

// DelimEnvVar overrides the filter separator.
const DelimEnvVar = "ALSCTL_FILTER_DELIM"

var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is one parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses spec. Malformed entries are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter
	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv(DelimEnvVar); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		key := strings.TrimSpace(parts[1])
		if key == "" {
			log.Errorf("invalid filter: empty key in %s", filterSpec)
			continue
		}
		if parts[2] == "" {
			log.Errorf("invalid filter: no operator in %s", filterSpec)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: strings.TrimPrefix(operand, "!"),
			Value:   parts[3],
		})
	}

	return filters
}

// FilterDataset keeps the rows of candidates that pass spec and projects
// each onto attrs. Values are left untransformed.
func FilterDataset(candidates gjson.Result, list attrs.AttrList, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)
	known := knownKeys(candidates, list, filters)

	//nolint:prealloc
	var result []map[string]interface{}
	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, list, filters, known) {
			continue
		}
		row := make(map[string]interface{}, len(list))
		for _, attr := range list {
			if attr.Key == "*" {
				continue
			}
			row[attr.OutputKey] = driller.Driller(candidate.Raw, attr.Key).Value()
		}
		result = append(result, row)
	}
	return result
}

// resolveKey maps a filter key to a row path via the attr titles.
func resolveKey(list attrs.AttrList, key string) string {
	for _, attr := range list {
		if attr.OutputKey == key {
			return attr.Key
		}
	}
	return key
}

// knownKeys reports which filter keys exist in at least one row. Filters on
// unknown keys are reported once and ignored.
func knownKeys(candidates gjson.Result, list attrs.AttrList, filters []Filter) map[string]bool {
	known := make(map[string]bool, len(filters))
	rows := candidates.Array()
	for _, f := range filters {
		path := resolveKey(list, f.Key)
		for _, row := range rows {
			if driller.Driller(row.Raw, path).Exists() {
				known[f.Key] = true
				break
			}
		}
		if !known[f.Key] && len(rows) > 0 {
			msg := fmt.Sprintf("filter key not found: %s", f.Key)
			log.Errorf("%s", msg)
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
		}
	}
	return known
}

func applyFilters(candidate gjson.Result, list attrs.AttrList, filters []Filter, known map[string]bool) bool {
	for _, filter := range filters {
		if !known[filter.Key] {
			continue
		}

		value := driller.Driller(candidate.Raw, resolveKey(list, filter.Key)).Value()
		if value == nil {
			// A null only matches a negated test against the empty string,
			// so "user!=" keeps renamed tracks.
			if filter.Operand == "=" && filter.Value == "" {
				if filter.Negate {
					return false
				}
				continue
			}
			if !filter.Negate {
				return false
			}
			continue
		}

		var ok bool
		switch v := value.(type) {
		case string:
			ok = checkStringOperand(v, filter)
		case bool:
			ok = checkStringOperand(strconv.FormatBool(v), filter)
		case float64:
			ok = checkNumericOperand(v, filter)
		default:
			ok = checkContainsOperand(value, filter)
		}
		if !ok {
			return false
		}
	}
	return true
}

// checkContainsOperand handles list and object values, which only support @.
func checkContainsOperand(value interface{}, filter Filter) bool {
	if filter.Operand != "@" {
		log.Errorf("unsupported operand %s for %T", filter.Operand, value)
		return false
	}
	switch val := value.(type) {
	case []interface{}:
		for _, item := range val {
			if fmt.Sprint(item) == filter.Value {
				return !filter.Negate
			}
		}
		return filter.Negate
	case map[string]interface{}:
		_, found := val[filter.Value]
		return found != filter.Negate
	}
	log.Errorf("unsupported type for contains filtering: %T", value)
	return false
}

// checkNumericOperand compares numerically when the target parses as a
// number and falls back to string comparison otherwise.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	switch filter.Operand {
	case "=", "~":
		return (value == tgt) != filter.Negate
	case ">":
		return (value > tgt) != filter.Negate
	case "<":
		return (value < tgt) != filter.Negate
	}
	return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
}

func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return (value == filter.Value) != filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) != filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) != filter.Negate
	case ">":
		return (value > filter.Value) != filter.Negate
	case "<":
		return (value < filter.Value) != filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) != filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched != filter.Negate
	}
	log.Errorf("unsupported filtering operand: %s", filter.Operand)
	return false
}
