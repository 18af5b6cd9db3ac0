// Package docparse decodes and validates Rojo project documents, and
// discovers project files in a directory.
//
// Decoding goes through buger/jsonparser rather than encoding/json:
// child declaration order inside a tree node decides partition priority
// downstream, and a map[string]any round-trip would destroy it.
package docparse

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/go-git/go-billy/v5"

	"github.com/rbxkit/instancemap/api"
)

const (
	// DefaultFilename is the reserved project file name preferred during
	// discovery.
	DefaultFilename = "default.project.json"
	// Suffix matched by the "*.project.json" naming pattern.
	Suffix = ".project.json"
	// LegacyFilename is the one recognized pre-suffix project file name.
	LegacyFilename = "roblox-project.json"
)

// ErrNoProject is returned by FindProjectFile when a directory contains
// no project document.
var ErrNoProject = errors.New("no project file found")

// SchemaError describes a document that failed structural validation.
// At is a dotted location inside the document, e.g. "tree.Workspace.$path".
type SchemaError struct {
	At  string
	Msg string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("project schema: %s: %s", e.At, e.Msg)
}

// IsProjectFilename reports whether name looks like a project document:
// the default name, any "*.project.json", or the legacy name.
func IsProjectFilename(name string) bool {
	if name == DefaultFilename || name == LegacyFilename {
		return true
	}
	return strings.HasSuffix(name, Suffix) && len(name) > len(Suffix)
}

// Decode parses and validates a project document.
func Decode(data []byte) (*api.Document, error) {
	doc := &api.Document{}

	name, err := jsonparser.GetString(data, "name")
	if err != nil || name == "" {
		return nil, &SchemaError{At: "name", Msg: "required non-empty string"}
	}
	doc.Name = name

	treeRaw, dt, _, err := jsonparser.Get(data, "tree")
	if err != nil || dt != jsonparser.Object {
		return nil, &SchemaError{At: "tree", Msg: "required object"}
	}
	tree, err := decodeNode(treeRaw, "tree")
	if err != nil {
		return nil, err
	}
	doc.Tree = tree

	if raw, dt, _, _ := jsonparser.Get(data, "globIgnorePaths"); dt != jsonparser.NotExist {
		if dt != jsonparser.Array {
			return nil, &SchemaError{At: "globIgnorePaths", Msg: "must be an array of strings"}
		}
		var badElem bool
		_, _ = jsonparser.ArrayEach(raw, func(value []byte, dt jsonparser.ValueType, _ int, _ error) {
			if dt != jsonparser.String {
				badElem = true
				return
			}
			s, err := jsonparser.ParseString(value)
			if err != nil {
				badElem = true
				return
			}
			doc.GlobIgnorePaths = append(doc.GlobIgnorePaths, s)
		})
		if badElem {
			return nil, &SchemaError{At: "globIgnorePaths", Msg: "must be an array of strings"}
		}
	}

	if raw, dt, _, _ := jsonparser.Get(data, "servePort"); dt != jsonparser.NotExist {
		if dt != jsonparser.Number {
			return nil, &SchemaError{At: "servePort", Msg: "must be a number"}
		}
		port, err := jsonparser.ParseInt(raw)
		if err != nil {
			return nil, &SchemaError{At: "servePort", Msg: "must be an integer"}
		}
		doc.ServePort = int(port)
	}

	return doc, nil
}

func decodeNode(raw []byte, at string) (*api.Node, error) {
	node := &api.Node{}
	var decodeErr error

	err := jsonparser.ObjectEach(raw, func(key, value []byte, dt jsonparser.ValueType, _ int) error {
		k := string(key)
		switch {
		case k == "$className":
			if dt != jsonparser.String {
				decodeErr = &SchemaError{At: at + ".$className", Msg: "must be a string"}
				return decodeErr
			}
			s, err := jsonparser.ParseString(value)
			if err != nil {
				decodeErr = &SchemaError{At: at + ".$className", Msg: "invalid string"}
				return decodeErr
			}
			node.ClassName = s

		case k == "$path":
			spec, err := decodePathSpec(value, dt, at+".$path")
			if err != nil {
				decodeErr = err
				return err
			}
			node.Path = spec

		case k == "$properties":
			if dt != jsonparser.Object {
				decodeErr = &SchemaError{At: at + ".$properties", Msg: "must be an object"}
				return decodeErr
			}
			props, err := decodeValueMap(value, at+".$properties")
			if err != nil {
				decodeErr = err
				return err
			}
			node.Properties = props

		case k == "$ignoreUnknownInstances":
			if dt != jsonparser.Boolean {
				decodeErr = &SchemaError{At: at + ".$ignoreUnknownInstances", Msg: "must be a boolean"}
				return decodeErr
			}
			b, _ := jsonparser.ParseBoolean(value)
			node.IgnoreUnknownInstances = &b

		case strings.HasPrefix(k, "$"):
			decodeErr = &SchemaError{At: at + "." + k, Msg: "unknown reserved key"}
			return decodeErr

		default:
			if dt != jsonparser.Object {
				decodeErr = &SchemaError{At: at + "." + k, Msg: "child must be an object"}
				return decodeErr
			}
			child, err := decodeNode(value, at+"."+k)
			if err != nil {
				decodeErr = err
				return err
			}
			node.Children = append(node.Children, api.Child{Name: k, Node: child})
		}
		return nil
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	if err != nil {
		return nil, &SchemaError{At: at, Msg: "must be an object"}
	}
	return node, nil
}

func decodePathSpec(value []byte, dt jsonparser.ValueType, at string) (*api.PathSpec, error) {
	switch dt {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil || s == "" {
			return nil, &SchemaError{At: at, Msg: "must be a non-empty string"}
		}
		return &api.PathSpec{Value: s}, nil
	case jsonparser.Object:
		s, err := jsonparser.GetString(value, "optional")
		if err != nil || s == "" {
			return nil, &SchemaError{At: at, Msg: `object form requires an "optional" string`}
		}
		return &api.PathSpec{Value: s, Optional: true}, nil
	default:
		return nil, &SchemaError{At: at, Msg: "must be a string or {optional: string}"}
	}
}

// decodeValueMap converts a JSON object into generic Go values. Property
// payloads are opaque to resolution, so order does not matter here.
func decodeValueMap(raw []byte, at string) (map[string]any, error) {
	out := map[string]any{}
	var decodeErr error
	err := jsonparser.ObjectEach(raw, func(key, value []byte, dt jsonparser.ValueType, _ int) error {
		v, err := decodeValue(value, dt, at+"."+string(key))
		if err != nil {
			decodeErr = err
			return err
		}
		out[string(key)] = v
		return nil
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	if err != nil {
		return nil, &SchemaError{At: at, Msg: "must be an object"}
	}
	return out, nil
}

func decodeValue(value []byte, dt jsonparser.ValueType, at string) (any, error) {
	switch dt {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, &SchemaError{At: at, Msg: "invalid string"}
		}
		return s, nil
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(value)
		if err != nil {
			return nil, &SchemaError{At: at, Msg: "invalid number"}
		}
		return f, nil
	case jsonparser.Boolean:
		b, _ := jsonparser.ParseBoolean(value)
		return b, nil
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Object:
		return decodeValueMap(value, at)
	case jsonparser.Array:
		var out []any
		var decodeErr error
		_, _ = jsonparser.ArrayEach(value, func(elem []byte, dt jsonparser.ValueType, _ int, _ error) {
			if decodeErr != nil {
				return
			}
			v, err := decodeValue(elem, dt, at+"[]")
			if err != nil {
				decodeErr = err
				return
			}
			out = append(out, v)
		})
		if decodeErr != nil {
			return nil, decodeErr
		}
		return out, nil
	default:
		return nil, &SchemaError{At: at, Msg: "unsupported value"}
	}
}

// FindProjectFile locates the project document for dir. The exact
// default name wins outright. Otherwise every "*.project.json" file plus
// the legacy name is collected in name order and the first is chosen;
// the remaining candidates come back in ignored so the caller can record
// the ambiguity. No candidate at all yields ErrNoProject.
func FindProjectFile(fsys billy.Filesystem, dir string) (chosen string, ignored []string, err error) {
	def := path.Join(dir, DefaultFilename)
	if info, err := fsys.Stat(def); err == nil && !info.IsDir() {
		return def, nil, nil
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return "", nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsProjectFilename(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", nil, ErrNoProject
	}
	sort.Strings(names)
	for _, name := range names[1:] {
		ignored = append(ignored, path.Join(dir, name))
	}
	return path.Join(dir, names[0]), ignored, nil
}
