package engine

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n?`)

// skillFrontmatter is the optional YAML front-matter of a skill's
// SKILL.md.
type skillFrontmatter struct {
	Description string   `yaml:"description"`
	Domains     []string `yaml:"domains"`
}

// discoverSkills lists skill directories under roots, skipping hidden
// entries, unless explicit paths are given.
func discoverSkills(roots, explicit []string) ([]skillInput, error) {
	var dirs []string
	if len(explicit) > 0 {
		dirs = explicit
	} else {
		for _, root := range roots {
			entries, err := os.ReadDir(root)
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
					continue
				}
				dirs = append(dirs, filepath.Join(root, e.Name()))
			}
		}
	}

	skills := make([]skillInput, 0, len(dirs))
	for _, dir := range dirs {
		name := filepath.Base(dir)
		desc, domains := readSkillFrontmatter(dir, name)
		skills = append(skills, skillInput{name: name, path: dir, description: desc, domains: domains})
	}
	return skills, nil
}

// readSkillFrontmatter reads <dir>/SKILL.md's YAML front-matter. Absent
// front-matter (or the file itself), the skill name is the sole domain
// and the description falls back to the first non-empty, non-heading
// line of SKILL.md, or "" if there is none.
func readSkillFrontmatter(dir, name string) (string, []string) {
	data, err := os.ReadFile(filepath.Join(dir, "SKILL.md"))
	if err != nil {
		return "", []string{name}
	}

	content := string(data)
	if m := frontmatterPattern.FindStringSubmatch(content); m != nil {
		var fm skillFrontmatter
		if yaml.Unmarshal([]byte(m[1]), &fm) == nil && (fm.Description != "" || len(fm.Domains) > 0) {
			domains := fm.Domains
			if len(domains) == 0 {
				domains = []string{name}
			}
			return fm.Description, domains
		}
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "---") {
			continue
		}
		return trimmed, []string{name}
	}
	return "", []string{name}
}

// readFile reads a file's raw bytes.
func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// relName returns path relative to base, falling back to the base name
// if it cannot be made relative.
func relName(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.Base(path)
	}
	return rel
}

// discoverMarkdownFiles walks dir for *.md files, excluding dotfiles.
func discoverMarkdownFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
