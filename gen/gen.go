// Package gen assembles whole header/source files from a codefile
// configuration: include guards and includes around the declaration
// surface, the matching out-of-line definitions in the source surface.
package gen

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rubiojr/cppgen/config"
	"github.com/rubiojr/cppgen/cpp"
	"github.com/rubiojr/cppgen/genfs"
)

// Generator turns codefile configurations into generated files.
// The zero value uses tabs and the conventional .h/.cpp extensions.
type Generator struct {
	Style     cpp.Style
	HeaderExt string
	SourceExt string
}

func (g *Generator) headerExt() string {
	if g.HeaderExt == "" {
		return ".h"
	}
	return g.HeaderExt
}

func (g *Generator) sourceExt() string {
	if g.SourceExt == "" {
		return ".cpp"
	}
	return g.SourceExt
}

// Generate renders every codefile in cfg and returns the collected
// files. Codefiles whose definition surface is empty produce a header
// only.
func (g *Generator) Generate(cfg *config.Config) (*genfs.FS, error) {
	fs := genfs.New()
	for i := range cfg.Codefiles {
		cf := &cfg.Codefiles[i]
		header, source, err := g.Render(cf)
		if err != nil {
			return nil, err
		}
		headerName := cf.Name + g.headerExt()
		if err := fs.Add(headerName, []byte(header)); err != nil {
			return nil, err
		}
		logrus.WithField("file", headerName).Debug("rendered header")
		if source == "" {
			continue
		}
		sourceName := cf.Name + g.sourceExt()
		if err := fs.Add(sourceName, []byte(source)); err != nil {
			return nil, err
		}
		logrus.WithField("file", sourceName).Debug("rendered source")
	}
	return fs, nil
}

// Render produces the header and source text of one codefile. The
// source text is empty when nothing needs an out-of-line definition.
func (g *Generator) Render(cf *config.Codefile) (header, source string, err error) {
	entities, err := cf.Build()
	if err != nil {
		return "", "", err
	}
	header, err = g.renderHeader(cf, entities)
	if err != nil {
		return "", "", errors.WithMessagef(err, "codefile %s: declaration surface", cf.Name)
	}
	source, err = g.renderSource(cf, entities)
	if err != nil {
		return "", "", errors.WithMessagef(err, "codefile %s: definition surface", cf.Name)
	}
	return header, source, nil
}

func (g *Generator) renderHeader(cf *config.Codefile, entities []cpp.Entity) (string, error) {
	e := cpp.NewEmitter(g.Style)
	if cf.Guard != "" {
		e.Line("#ifndef " + cf.Guard)
		e.Line("#define " + cf.Guard)
		e.Blank()
	}
	if len(cf.Includes) > 0 || len(cf.LocalIncludes) > 0 {
		for _, inc := range cf.Includes {
			e.Line("#include <" + inc + ">")
		}
		for _, inc := range cf.LocalIncludes {
			e.Line(`#include "` + inc + `"`)
		}
		e.Blank()
	}
	for i, en := range entities {
		text, err := cpp.RenderDeclaration(en, g.Style)
		if err != nil {
			return "", err
		}
		if i > 0 {
			e.Blank()
		}
		for _, line := range strings.Split(text, "\n") {
			e.Line(line)
		}
	}
	if cf.Guard != "" {
		e.Blank()
		e.Line("#endif")
	}
	return e.Text() + "\n", nil
}

func (g *Generator) renderSource(cf *config.Codefile, entities []cpp.Entity) (string, error) {
	var parts []string
	for _, en := range entities {
		// File-scope variables carry their initializer in the header
		// declaration already; only classes and function bodies have
		// anything to define out of line.
		if _, ok := en.(*cpp.Variable); ok {
			continue
		}
		text, err := cpp.RenderDefinition(en, g.Style)
		if err != nil {
			return "", err
		}
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		return "", nil
	}
	e := cpp.NewEmitter(g.Style)
	e.Line(`#include "` + cf.Name + g.headerExt() + `"`)
	e.Blank()
	for i, p := range parts {
		if i > 0 {
			e.Blank()
		}
		for _, line := range strings.Split(p, "\n") {
			e.Line(line)
		}
	}
	return e.Text() + "\n", nil
}
