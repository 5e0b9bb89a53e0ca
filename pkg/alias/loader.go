// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ahmedeladl00/aliascraft/pkg/cueutil"

	"cuelang.org/go/cue"
	"cuelang.org/go/encoding/yaml"
	"github.com/pelletier/go-toml/v2"
)

// LoadFromConfigFile registers the aliases declared in the document at path
// and returns how many were registered.
//
// The document must evaluate to a mapping of alias name to
//
//	{ action: <action>, options?: { group?: string, args?: [...string] } }
//
// The format follows the extension: .yaml/.yml, .toml, .json, anything else
// is read as CUE. A missing file is a NotFoundError and a document that is not
// a mapping is a FormatError. Entries that are malformed or whose action is
// not invocable are skipped; the rest of the document still loads.
func (r *Registry) LoadFromConfigFile(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, &NotFoundError{Path: path}
		}
		return 0, fmt.Errorf("failed to stat alias config file: %w", err)
	}
	if info.IsDir() {
		return 0, &FormatError{Path: path, Kind: "directory"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read alias config file: %w", err)
	}

	doc, err := decodeDocument(path, data)
	if err != nil {
		return 0, &FormatError{Path: path, Cause: err}
	}

	if kind := doc.IncompleteKind(); kind != cue.StructKind {
		return 0, &FormatError{Path: path, Kind: kind.String()}
	}

	iter, err := doc.Fields()
	if err != nil {
		return 0, &FormatError{Path: path, Cause: cueutil.FormatError(err, path)}
	}

	registered := 0
	for iter.Next() {
		name := iter.Selector().Unquoted()

		var raw any
		if err := iter.Value().Decode(&raw); err != nil {
			r.skip(path, name, "entry is not concrete")
			continue
		}
		if r.loadEntry(path, name, raw) {
			registered++
		}
	}

	r.logger.Debug("loaded alias config file", "path", path, "registered", registered)
	return registered, nil
}

// LoadEntries applies the same lenient import as LoadFromConfigFile to an
// already-decoded mapping. source only labels log lines. Entries are
// registered in name order.
func (r *Registry) LoadEntries(source string, entries map[string]any) int {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	registered := 0
	for _, name := range names {
		if r.loadEntry(source, name, entries[name]) {
			registered++
		}
	}
	return registered
}

func decodeDocument(path string, data []byte) (cue.Value, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return cue.Value{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err := yaml.Extract(path, data)
		if err != nil {
			return cue.Value{}, cueutil.FormatError(err, path)
		}
		return cueutil.Build(f, cueutil.WithFilename(path))
	case ".toml":
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return cue.Value{}, fmt.Errorf("%s: %w", path, err)
		}
		return cueutil.Encode(doc, cueutil.WithFilename(path))
	default:
		return cueutil.Compile(data, cueutil.WithFilename(path))
	}
}

// loadEntry registers one document entry and reports whether it did.
func (r *Registry) loadEntry(source, name string, raw any) bool {
	entry, ok := raw.(map[string]any)
	if !ok {
		r.skip(source, name, "entry is not a mapping")
		return false
	}

	rawAction, ok := entry["action"]
	if !ok || rawAction == nil {
		r.skip(source, name, "missing action")
		return false
	}

	opts, err := decodeOptions(entry["options"])
	if err != nil {
		r.skip(source, name, err.Error())
		return false
	}

	action, ok := r.resolve(name, rawAction)
	if !ok {
		r.skip(source, name, "action is not invocable")
		return false
	}

	return r.Register(name, action, opts) == nil
}

func (r *Registry) resolve(name string, raw any) (Action, bool) {
	switch fn := raw.(type) {
	case Action:
		return fn, fn != nil
	case func(context.Context, []any) (any, error):
		return fn, fn != nil
	}

	if r.resolver == nil {
		return nil, false
	}
	action, ok := r.resolver.Resolve(name, raw)
	return action, ok && action != nil
}

func (r *Registry) skip(source, name, reason string) {
	r.logger.Debug("skipping alias entry", "source", source, "alias", name, "reason", reason)
}

func decodeOptions(raw any) (Options, error) {
	if raw == nil {
		return Options{}, nil
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return Options{}, fmt.Errorf("options must be a mapping, got %T", raw)
	}

	var opts Options

	switch g := m["group"].(type) {
	case nil:
	case string:
		opts.Group = g
	default:
		return Options{}, fmt.Errorf("options.group must be a string, got %T", g)
	}

	switch a := m["args"].(type) {
	case nil:
	case []string:
		opts.Args = a
	case []any:
		opts.Args = make([]string, 0, len(a))
		for i, v := range a {
			s, ok := v.(string)
			if !ok {
				return Options{}, fmt.Errorf("options.args[%d] must be a string, got %T", i, v)
			}
			opts.Args = append(opts.Args, s)
		}
	default:
		return Options{}, fmt.Errorf("options.args must be a list, got %T", a)
	}

	return opts, nil
}
