// Package prompt holds the caller-selectable system-prompt library: one
// Markdown file per prompt under prompts/, with a YAML frontmatter id and
// name. Grounded on
// original_source/backend/app/domain/prompt/{repository,service}.py's
// frontmatter-file loader and get_by_id lookup.
package prompt

import (
	"embed"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts
var promptsFS embed.FS

const promptsRoot = "prompts"

type frontmatter struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

var byID = loadPrompts()

func loadPrompts() map[string]string {
	out := make(map[string]string)
	entries, err := fs.ReadDir(promptsFS, promptsRoot)
	if err != nil {
		return out
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		raw, err := promptsFS.ReadFile(promptsRoot + "/" + e.Name())
		if err != nil {
			continue
		}
		meta, body, ok := splitFrontmatter(raw)
		if !ok || meta.ID == "" {
			continue
		}
		out[meta.ID] = strings.TrimSpace(body)
	}
	return out
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

// GetByID returns the prompt content for id, or false if id is unknown.
func GetByID(id string) (string, bool) {
	content, ok := byID[id]
	return content, ok
}
