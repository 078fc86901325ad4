//go:build mage

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mesh-intelligence/toolbox/internal/registry"
)

type categoryStats struct {
	ID       string `json:"id"`
	Tools    int    `json:"tools"`
	Fields   int    `json:"fields"`
	Aliases  int    `json:"aliases"`
	Guidance int    `json:"guidance"`
}

type packageStats struct {
	Package string `json:"package"`
	Files   int    `json:"files"`
	Lines   int    `json:"lines"`
	Tests   int    `json:"test_lines"`
}

type toolboxStats struct {
	Tools      int             `json:"tools"`
	Categories []categoryStats `json:"categories"`
	Widgets    []packageStats  `json:"widgets"`
	Templates  int             `json:"templates"`
	GoLines    int             `json:"go_lines"`
	TestLines  int             `json:"go_test_lines"`
}

// Stats prints the tool catalog per category and the size of each widget
// package as JSON. Notes and planner need a store and are not counted.
func Stats() error {
	reg, err := registry.Default(registry.Deps{})
	if err != nil {
		return err
	}
	out := toolboxStats{Tools: reg.Len()}
	for _, sec := range reg.Categories() {
		c := categoryStats{ID: sec.ID, Tools: len(sec.Tools)}
		for _, tool := range sec.Tools {
			c.Fields += len(tool.Fields)
			c.Aliases += len(tool.Aliases)
			if tool.Guidance {
				c.Guidance++
			}
		}
		out.Categories = append(out.Categories, c)
	}

	widgets := map[string]*packageStats{}
	for _, root := range []string{"cmd", "internal", "pkg"} {
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() || filepath.Ext(path) != ".go" {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			n := bytes.Count(data, []byte("\n"))
			isTest := strings.HasSuffix(path, "_test.go")
			if isTest {
				out.TestLines += n
			} else {
				out.GoLines += n
			}

			rel, err := filepath.Rel(filepath.Join("internal", "widgets"), filepath.Dir(path))
			if err != nil || strings.HasPrefix(rel, "..") {
				return nil
			}
			p := widgets[rel]
			if p == nil {
				p = &packageStats{Package: filepath.ToSlash(rel)}
				widgets[rel] = p
			}
			p.Files++
			if isTest {
				p.Tests += n
			} else {
				p.Lines += n
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	for _, p := range widgets {
		out.Widgets = append(out.Widgets, *p)
	}
	sort.Slice(out.Widgets, func(i, j int) bool { return out.Widgets[i].Package < out.Widgets[j].Package })

	templates, err := filepath.Glob(filepath.Join("internal", "page", "templates", "*.html"))
	if err != nil {
		return err
	}
	out.Templates = len(templates)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
