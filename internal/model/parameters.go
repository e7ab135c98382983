/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import (
	"strings"
)

// Parameter is a single stack parameter key/value pair
type Parameter struct {
	Key   string
	Value string
}

// ParseParameters parses a "Key=Value,Key2=Value2" string into parameters.
//
// Order is preserved and duplicate keys are passed through verbatim. Each
// element is split on its first "=", so values may themselves contain "=".
// An element without "=" yields a parameter with an empty value.
func ParseParameters(raw string) []Parameter {
	if strings.TrimSpace(raw) == "" {
		return []Parameter{}
	}

	elements := strings.Split(raw, ",")
	params := make([]Parameter, 0, len(elements))
	for _, element := range elements {
		key, value, _ := strings.Cut(element, "=")
		params = append(params, Parameter{Key: key, Value: value})
	}
	return params
}

// FormatParameters renders parameters back into the "Key=Value,..." form
func FormatParameters(params []Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Key + "=" + p.Value
	}
	return strings.Join(parts, ",")
}
