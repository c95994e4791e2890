// Package reconcile compares a primary track bundle against verification
// sources field by field and aggregates the verdicts into a report.
package reconcile

import (
	"encoding/json"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/trackverify/internal/coververdict"
)

// Status is the outcome of a single field comparison.
type Status string

const (
	Confirmed    Status = "confirmed"
	Questionable Status = "questionable"
	NotFound     Status = "not_found"
)

// Node is either a *Verdict or a Group of further nodes.
type Node interface {
	isNode()
}

// Verdict is the reconciliation result for one field.
type Verdict struct {
	Value          any                   `json:"value" yaml:"value"`
	ValueFormatted string                `json:"value_formatted,omitempty" yaml:"value_formatted,omitempty"`
	Status         Status                `json:"status" yaml:"status"`
	ConfirmedBy    []string              `json:"confirmed_by,omitempty" yaml:"confirmed_by,omitempty"`
	Note           string                `json:"note,omitempty" yaml:"note,omitempty"`
	Similarity     *float64              `json:"similarity,omitempty" yaml:"similarity,omitempty"`
	Sources        map[string]any        `json:"sources" yaml:"sources"`
	AIComparison   *coververdict.Verdict `json:"ai_comparison,omitempty" yaml:"ai_comparison,omitempty"`
}

// Group is a named collection of nodes, such as per-role credits.
type Group map[string]Node

func (*Verdict) isNode() {}
func (Group) isNode()    {}

func newVerdict(value any) *Verdict {
	return &Verdict{Value: value, Status: NotFound, Sources: map[string]any{}}
}

// Fold visits every verdict under n depth-first, in key order, threading acc
// through fn. Groups contribute only through their leaves.
func Fold[T any](n Node, acc T, fn func(acc T, path string, v *Verdict) T) T {
	return fold(n, "", acc, fn)
}

func fold[T any](n Node, path string, acc T, fn func(T, string, *Verdict) T) T {
	switch n := n.(type) {
	case *Verdict:
		if n != nil {
			acc = fn(acc, path, n)
		}
	case Group:
		for _, k := range n.Keys() {
			child := k
			if path != "" {
				child = path + "." + k
			}
			acc = fold(n[k], child, acc, fn)
		}
	}
	return acc
}

// Keys returns the group's names in sorted order.
func (g Group) Keys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup follows a dotted path such as "credits.composer".
func (g Group) Lookup(path string) (Node, bool) {
	var cur Node = g
	for _, part := range splitPath(path) {
		grp, ok := cur.(Group)
		if !ok {
			return nil, false
		}
		if cur, ok = grp[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Verdict returns the verdict at path, or nil.
func (g Group) Verdict(path string) *Verdict {
	n, ok := g.Lookup(path)
	if !ok {
		return nil
	}
	v, _ := n.(*Verdict)
	return v
}

func splitPath(path string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			parts = append(parts, path[start:i])
			start = i + 1
		}
	}
	return parts
}

// UnmarshalJSON rebuilds the tree from a serialized report. Objects that
// carry a status are verdicts, everything else is a group.
func (g *Group) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "decode field group")
	}
	out := make(Group, len(raw))
	for k, msg := range raw {
		if gjson.GetBytes(msg, "status").Exists() {
			var v Verdict
			if err := json.Unmarshal(msg, &v); err != nil {
				return errors.Wrapf(err, "decode field %s", k)
			}
			out[k] = &v
			continue
		}
		var sub Group
		if err := json.Unmarshal(msg, &sub); err != nil {
			return errors.Wrapf(err, "decode group %s", k)
		}
		out[k] = sub
	}
	*g = out
	return nil
}

// UnmarshalYAML is the YAML counterpart of UnmarshalJSON.
func (g *Group) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return errors.Newf("field group must be a mapping, got kind %d", value.Kind)
	}
	out := make(Group, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i].Value, value.Content[i+1]
		if hasKey(val, "status") {
			var v Verdict
			if err := val.Decode(&v); err != nil {
				return errors.Wrapf(err, "decode field %s", key)
			}
			out[key] = &v
			continue
		}
		var sub Group
		if err := val.Decode(&sub); err != nil {
			return errors.Wrapf(err, "decode group %s", key)
		}
		out[key] = sub
	}
	*g = out
	return nil
}

func hasKey(n *yaml.Node, key string) bool {
	if n.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}
