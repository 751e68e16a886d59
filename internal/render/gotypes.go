// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package render

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"text/template"

	"github.com/dacolabs/autofuzz/pkg/schema"
)

//go:embed gotypes.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.ParseFS(tmplFS, "gotypes.go.tmpl"))

// GoTypes renders d as Go type declarations in package pkg, with the root
// type named after name.
func GoTypes(pkg, name string, d *schema.Descriptor) ([]byte, error) {
	data := Prepare(pkg, name, d)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "gotypes.go.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return src, nil
}
