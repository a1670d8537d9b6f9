package account

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/passforge/passforge/core/apperr"
	"github.com/passforge/passforge/core/generator"
	"github.com/passforge/passforge/core/obscure"
)

// DecodeValueNode recursively decodes one YAML node into the Value ADT. A
// single-key mapping whose key is "generate", "obscure", "script", or
// "write_file" is a production of that variant; any other mapping is a
// plain Mapping value; a sequence is a Sequence; a scalar is a Constant.
// core/loader calls this while parsing an account file's fields block;
// ParseNested calls it again over a decrypted obscured field's plaintext,
// per spec §4.3's "the plaintext may itself be any value variant."
func DecodeValueNode(node *yaml.Node, culprit string) (Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!int" {
			var n int64
			if err := node.Decode(&n); err == nil {
				return ConstantInt(n), nil
			}
		}
		var s string
		if err := node.Decode(&s); err != nil {
			return nil, apperr.Wrap(apperr.BadRecipe, culprit, err, "decoding scalar field value")
		}
		return ConstantString(s), nil

	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := DecodeValueNode(child, culprit)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil

	case yaml.MappingNode:
		if variant, ok := singleKey(node); ok {
			switch variant {
			case "generate":
				return decodeGenerate(valueOf(node, variant), culprit)
			case "obscure":
				return decodeObscure(valueOf(node, variant), culprit)
			case "script":
				return decodeScript(valueOf(node, variant), culprit)
			case "write_file":
				return decodeWriteFile(valueOf(node, variant), culprit)
			}
		}
		m := NewMapping()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			v, err := DecodeValueNode(node.Content[i+1], culprit)
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		return m, nil

	default:
		return nil, apperr.New(apperr.BadRecipe, culprit, "unsupported field value shape")
	}
}

// singleKey reports whether node is a mapping with exactly one key, and
// that key's name.
func singleKey(node *yaml.Node) (string, bool) {
	if len(node.Content) != 2 {
		return "", false
	}
	return node.Content[0].Value, true
}

// valueOf returns the value node paired with key in a single-key mapping.
func valueOf(node *yaml.Node, key string) *yaml.Node {
	return node.Content[1]
}

func decodeGenerate(node *yaml.Node, culprit string) (Value, error) {
	var spec generator.Spec
	if err := node.Decode(&spec); err != nil {
		return nil, apperr.Wrap(apperr.BadRecipe, culprit, err, "decoding generate block")
	}
	return Generated{Spec: spec}, nil
}

func decodeObscure(node *yaml.Node, culprit string) (Value, error) {
	var spec obscure.Spec
	if err := node.Decode(&spec); err != nil {
		return nil, apperr.Wrap(apperr.BadRecipe, culprit, err, "decoding obscure block")
	}
	return Obscured{Spec: spec}, nil
}

func decodeScript(node *yaml.Node, culprit string) (Value, error) {
	var s string
	if err := node.Decode(&s); err != nil {
		return nil, apperr.Wrap(apperr.BadRecipe, culprit, err, "script value must be a string")
	}
	return Script{Template: s}, nil
}

type writeFileRecord struct {
	Path    string    `yaml:"path"`
	Mode    uint32    `yaml:"mode"`
	Content yaml.Node `yaml:"content"`
}

func decodeWriteFile(node *yaml.Node, culprit string) (Value, error) {
	var rec writeFileRecord
	if err := node.Decode(&rec); err != nil {
		return nil, apperr.Wrap(apperr.BadRecipe, culprit, err, "decoding write_file block")
	}
	if rec.Path == "" {
		return nil, apperr.New(apperr.BadRecipe, culprit, "write_file block missing path")
	}
	content, err := DecodeValueNode(&rec.Content, culprit)
	if err != nil {
		return nil, fmt.Errorf("write_file %s content: %w", rec.Path, err)
	}
	return WriteFile{Path: rec.Path, Content: content, Mode: rec.Mode}, nil
}

// ParseNested attempts to parse raw as another field Value, per spec §4.3's
// "an obscured field's plaintext may itself be any value variant; if it
// parses as such it is nested." Invalid YAML, or YAML that is just the same
// scalar text, falls back to a plain string Constant, so an ordinary
// decrypted password is never second-guessed as some other variant.
func ParseNested(raw string, culprit string) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil || len(doc.Content) == 0 {
		return ConstantString(raw), nil
	}
	if doc.Content[0].Kind == yaml.ScalarNode {
		return ConstantString(doc.Content[0].Value), nil
	}
	return DecodeValueNode(doc.Content[0], culprit)
}
