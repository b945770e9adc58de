// Package catalog supplies the read-only, built-in skill library: one
// directory per skill under skills/, each holding a SKILL.md with a YAML
// frontmatter header (name, description) and a Markdown body. Grounded on
// original_source/backend/app/domain/skill/repository.py's folder-based
// discovery, ported from a filesystem walk to a compile-time go:embed.
package catalog

import (
	"embed"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"chatcore.dev/chatstream/skill"
)

//go:embed skills
var skillsFS embed.FS

const skillsRoot = "skills"

type frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type entry struct {
	meta    frontmatter
	content string
}

// Catalog implements skill.FileCatalog over the embedded skills/ tree.
type Catalog struct {
	byName map[string]entry
	order  []string
}

// New parses every skills/<dir>/SKILL.md found in the embedded tree,
// skipping (as the source does) any entry whose frontmatter name disagrees
// with its directory name.
func New() *Catalog {
	c := &Catalog{byName: make(map[string]entry)}

	dirs, err := fs.ReadDir(skillsFS, skillsRoot)
	if err != nil {
		return c
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name() < dirs[j].Name() })

	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		raw, err := skillsFS.ReadFile(skillsRoot + "/" + d.Name() + "/SKILL.md")
		if err != nil {
			continue
		}
		meta, body, ok := splitFrontmatter(raw)
		if !ok || meta.Name == "" || meta.Name != d.Name() {
			continue
		}
		c.byName[meta.Name] = entry{meta: meta, content: strings.TrimSpace(body)}
		c.order = append(c.order, meta.Name)
	}
	return c
}

func splitFrontmatter(raw []byte) (frontmatter, string, bool) {
	const delim = "---"
	s := string(raw)
	if !strings.HasPrefix(s, delim) {
		return frontmatter{}, "", false
	}
	rest := s[len(delim):]
	end := strings.Index(rest, delim)
	if end < 0 {
		return frontmatter{}, "", false
	}
	header := rest[:end]
	body := rest[end+len(delim):]

	var meta frontmatter
	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return frontmatter{}, "", false
	}
	return meta, body, true
}

// ContentByName returns the Markdown body for a built-in skill.
func (c *Catalog) ContentByName(name string) (string, bool) {
	e, ok := c.byName[name]
	if !ok {
		return "", false
	}
	return e.content, true
}

// Metadata returns every built-in skill's name and description, in
// directory order.
func (c *Catalog) Metadata() []skill.Metadata {
	out := make([]skill.Metadata, 0, len(c.order))
	for _, name := range c.order {
		e := c.byName[name]
		out = append(out, skill.Metadata{Name: e.meta.Name, Description: e.meta.Description})
	}
	return out
}
