/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToJSON converts a YAML or JSON template body into JSON, expanding
// CloudFormation's short-form intrinsic function tags (!Ref, !Sub, !GetAtt,
// ...) into their long forms.
func ToJSON(content []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, fmt.Errorf("template is empty")
	}

	value, err := convertNode(doc.Content[0])
	if err != nil {
		return nil, err
	}

	result, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode template as JSON: %w", err)
	}
	return result, nil
}

func convertNode(node *yaml.Node) (any, error) {
	if name, ok := intrinsicName(node.Tag); ok {
		return convertIntrinsic(name, node)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return convertNode(node.Content[0])
	case yaml.AliasNode:
		return convertNode(node.Alias)
	case yaml.MappingNode:
		return convertMapping(node)
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := convertNode(child)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case yaml.ScalarNode:
		return convertScalar(node)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", node.Line)
	}
}

func convertMapping(node *yaml.Node) (*object, error) {
	obj := newObject()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		if key.Tag == "!!merge" {
			if err := mergeInto(obj, value); err != nil {
				return nil, err
			}
			continue
		}

		converted, err := convertNode(value)
		if err != nil {
			return nil, err
		}
		obj.set(key.Value, converted)
	}
	return obj, nil
}

// mergeInto applies a "<<" merge key; explicit keys already set take precedence
func mergeInto(obj *object, value *yaml.Node) error {
	sources := []*yaml.Node{value}
	if value.Kind == yaml.SequenceNode {
		sources = value.Content
	}

	for _, source := range sources {
		converted, err := convertNode(source)
		if err != nil {
			return err
		}
		merged, ok := converted.(*object)
		if !ok {
			return fmt.Errorf("line %d: merge value is not a mapping", source.Line)
		}
		for _, k := range merged.keys {
			if _, exists := obj.values[k]; !exists {
				obj.set(k, merged.values[k])
			}
		}
	}
	return nil
}

func convertScalar(node *yaml.Node) (any, error) {
	switch node.Tag {
	case "!!timestamp", "!!binary":
		// Keep dates such as AWSTemplateFormatVersion verbatim
		return node.Value, nil
	case "!!str":
		return node.Value, nil
	}

	var value any
	if err := node.Decode(&value); err != nil {
		return nil, fmt.Errorf("line %d: %w", node.Line, err)
	}
	return value, nil
}

// intrinsicName maps a short-form tag to its long-form key
func intrinsicName(tag string) (string, bool) {
	if !strings.HasPrefix(tag, "!") || strings.HasPrefix(tag, "!!") {
		return "", false
	}
	name := strings.TrimPrefix(tag, "!")
	switch name {
	case "Ref", "Condition":
		return name, true
	default:
		return "Fn::" + name, true
	}
}

func convertIntrinsic(name string, node *yaml.Node) (any, error) {
	obj := newObject()

	if node.Kind == yaml.ScalarNode {
		if name == "Fn::GetAtt" {
			resource, attribute, _ := strings.Cut(node.Value, ".")
			obj.set(name, []any{resource, attribute})
			return obj, nil
		}
		obj.set(name, node.Value)
		return obj, nil
	}

	untagged := *node
	untagged.Tag = ""
	value, err := convertNode(&untagged)
	if err != nil {
		return nil, err
	}
	obj.set(name, value)
	return obj, nil
}

// object is a JSON object that keeps its keys in document order
type object struct {
	keys   []string
	values map[string]any
}

func newObject() *object {
	return &object{values: make(map[string]any)}
}

func (o *object) set(key string, value any) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
