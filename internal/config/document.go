// Package config reads and writes rule-set documents: the JSON shape
// shared with the rule editor and the persistence API. Decoding keeps
// every block's raw parameters so a document round-trips losslessly even
// through fields this binary does not interpret.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDocument wraps structural failures in a rule-set document.
var ErrInvalidDocument = errors.New("config: invalid document")

// Document is a complete rule-set configuration.
type Document struct {
	Name            string             `json:"name,omitempty"`
	Description     string             `json:"description,omitempty"`
	Rules           []RuleConfig       `json:"rules"`
	CategoryWeights map[string]float64 `json:"categoryWeights,omitempty"`
}

// RuleConfig is one rule entry in a document.
type RuleConfig struct {
	ID        string      `json:"id,omitempty"`
	Name      string      `json:"name,omitempty"`
	Category  string      `json:"category,omitempty"`
	Enabled   *bool       `json:"enabled,omitempty"`
	Condition BlockConfig `json:"condition"`
	Target    BlockConfig `json:"target"`
	Value     BlockConfig `json:"value"`
}

// IsEnabled reports the rule's enabled state; an absent flag means
// enabled.
func (r *RuleConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// BlockConfig is a tagged block: a type string plus free-form parameters.
// The wire shape is flat ({"type": "...", "param": ...}); Params holds
// everything except the tag.
type BlockConfig struct {
	Type   string
	Params map[string]json.RawMessage
}

// UnmarshalJSON splits the flat block object into tag and parameters.
func (b *BlockConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if t, ok := raw["type"]; ok {
		if err := json.Unmarshal(t, &b.Type); err != nil {
			return fmt.Errorf("block type: %w", err)
		}
		delete(raw, "type")
	}
	b.Params = raw
	return nil
}

// MarshalJSON flattens the block back to its wire shape.
func (b BlockConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(b.Params)+1)
	for k, v := range b.Params {
		out[k] = v
	}
	tag, err := json.Marshal(b.Type)
	if err != nil {
		return nil, err
	}
	out["type"] = tag
	return json.Marshal(out)
}

// RawParams converts plain values into block parameters. It is meant for
// building documents in code; values that cannot marshal are dropped.
func RawParams(params map[string]any) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(params))
	for k, v := range params {
		raw, err := json.Marshal(v)
		if err != nil {
			continue
		}
		out[k] = raw
	}
	return out
}

// stringParam reads a string parameter, empty when absent or mistyped.
func (b BlockConfig) stringParam(key string) string {
	raw, ok := b.Params[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// floatParam reads a numeric parameter with a fallback default.
func (b BlockConfig) floatParam(key string, def float64) float64 {
	raw, ok := b.Params[key]
	if !ok {
		return def
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return def
	}
	return f
}

// intParam reads an integer parameter with a fallback default.
func (b BlockConfig) intParam(key string, def int) int {
	raw, ok := b.Params[key]
	if !ok {
		return def
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return def
	}
	return n
}

// blockList reads a nested block-list parameter, for logical conditions.
func (b BlockConfig) blockList(key string) ([]BlockConfig, error) {
	raw, ok := b.Params[key]
	if !ok {
		return nil, nil
	}
	var blocks []BlockConfig
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, fmt.Errorf("parameter %q: %w", key, err)
	}
	return blocks, nil
}

// Parse decodes a rule-set document. Structural problems fail here;
// semantic problems (unknown block types, bad formulas) fail in Build.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// Marshal encodes the document in the wire shape, indented for human
// editing.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling document: %w", err)
	}
	return data, nil
}
