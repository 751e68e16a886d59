// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

// Loader loads schemas from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load reads a schema file and resolves its external file refs relative to
// the file's directory.
func (l *Loader) Load(filePath string) (*Document, error) {
	doc, err := l.LoadFile(filePath)
	if err != nil {
		return nil, err
	}
	if err := l.ResolveRefs(doc, path.Dir(filePath)); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadFile loads and parses a schema file.
// The format is determined from the file extension.
func (l *Loader) LoadFile(filePath string) (*Document, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	doc, err := NewDocument(data, FormatFromPath(filePath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return doc, nil
}

// ResolveRefs resolves all external file $refs in the document in-place.
// It recursively loads referenced schemas and replaces the ref with the loaded
// content. A fragment after the file name selects a definition inside it.
// Definitions of loaded files are hoisted into the root so their internal refs
// keep resolving. Internal refs (starting with #/) are left unchanged.
func (l *Loader) ResolveRefs(doc *Document, basePath string) error {
	var refs []*Schema
	for s := range Traverse(doc.Schema, nil) {
		if IsFileRef(s.Ref) {
			refs = append(refs, s)
		}
	}

	for _, s := range refs {
		file, fragment, _ := strings.Cut(s.Ref, "#")
		refPath := path.Join(basePath, file)
		loaded, err := l.LoadFile(refPath)
		if err != nil {
			return err
		}
		if err := l.ResolveRefs(loaded, path.Dir(refPath)); err != nil {
			return err
		}

		target := loaded.Schema
		if fragment != "" {
			if target = loaded.Lookup("#" + fragment); target == nil {
				return fmt.Errorf("%s: unresolved fragment %q", refPath, fragment)
			}
		}
		if err := hoistDefs(doc.Schema, loaded.Schema, refPath); err != nil {
			return err
		}

		doc.merge(loaded)
		if keys, ok := loaded.order[target]; ok {
			doc.order[s] = keys
		}
		*s = *target
	}
	return nil
}

func hoistDefs(root, loaded *Schema, refPath string) error {
	for name, def := range loaded.Defs {
		if existing, ok := root.Defs[name]; ok && existing != def {
			return fmt.Errorf("%s: $defs %q conflicts with a definition of the same name", refPath, name)
		}
		if root.Defs == nil {
			root.Defs = make(map[string]*Schema)
		}
		root.Defs[name] = def
	}
	for name, def := range loaded.Definitions {
		if existing, ok := root.Definitions[name]; ok && existing != def {
			return fmt.Errorf("%s: definitions %q conflicts with a definition of the same name", refPath, name)
		}
		if root.Definitions == nil {
			root.Definitions = make(map[string]*Schema)
		}
		root.Definitions[name] = def
	}
	return nil
}
