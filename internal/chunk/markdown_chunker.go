package chunk

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// headerPattern matches markdown headings of levels 1-3 only; deeper
// headings are left inside the body of their enclosing section.
var headerPattern = regexp.MustCompile(`(?m)^(#{1,3})\s+(.+)$`)

// descriptionPattern matches a `description:` line, with or without
// surrounding quotes on the value.
var descriptionPattern = regexp.MustCompile(`(?i)^description:\s*(.*)$`)

// MarkdownChunker splits a skill's markdown files into header-delimited
// sections, then further splits long sections into overlapping token
// windows.
type MarkdownChunker struct {
	opts Options
}

// New returns a MarkdownChunker. A zero Options uses the spec defaults.
func New(opts Options) *MarkdownChunker {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultOptions().MaxTokens
	}
	if opts.OverlapTokens <= 0 {
		opts.OverlapTokens = DefaultOptions().OverlapTokens
	}
	return &MarkdownChunker{opts: opts}
}

type section struct {
	title string
	body  string
}

// Chunk decodes a file's raw bytes (replacing invalid UTF-8), splits the
// content into sections on H1-H3 headings, and emits one Chunk per token
// window within each section.
func (c *MarkdownChunker) Chunk(raw []byte, skill, file, filePath string, domains []string) []Chunk {
	content := sanitizeUTF8(raw)
	if strings.TrimSpace(content) == "" {
		return nil
	}

	context := extractContext(content, skill, file)
	sections := splitSections(content)

	var out []Chunk
	for _, sec := range sections {
		windows := splitWindows(sec.body, c.opts.MaxTokens, c.opts.OverlapTokens)
		for _, body := range windows {
			if strings.TrimSpace(body) == "" {
				continue
			}
			id := chunkID(skill, file, sec.title, body)
			out = append(out, Chunk{
				ID:             id,
				Skill:          skill,
				File:           file,
				FilePath:       filePath,
				Section:        sec.title,
				Text:           body,
				ContextualText: fmt.Sprintf("[%s | %s]\n%s\n\n%s", skill, file, context, body),
				Domains:        domains,
			})
		}
	}
	return out
}

// sanitizeUTF8 replaces invalid UTF-8 sequences with the replacement
// character, mirroring a decode-with-errors-replaced read.
func sanitizeUTF8(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	var b strings.Builder
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		b.WriteRune(r)
		raw = raw[size:]
	}
	return b.String()
}

// extractContext scans the first eight lines for a `description:` line;
// absent one, it falls back to "<skill> — <file>".
func extractContext(content, skill, file string) string {
	lines := strings.Split(content, "\n")
	limit := 8
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		if m := descriptionPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return strings.Trim(strings.TrimSpace(m[1]), `"'`)
		}
	}
	return fmt.Sprintf("%s — %s", skill, file)
}

// splitSections splits body on H1-H3 headings. Text preceding the first
// heading, if non-empty, becomes a section titled "intro". A file with no
// headings at all yields a single section titled "main".
func splitSections(content string) []section {
	locs := headerPattern.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return []section{{title: "main", body: content}}
	}

	var sections []section
	if intro := strings.TrimSpace(content[:locs[0][0]]); intro != "" {
		sections = append(sections, section{title: "intro", body: intro})
	}

	for i, loc := range locs {
		titleStart, titleEnd := loc[4], loc[5]
		title := strings.TrimSpace(strings.TrimLeft(content[titleStart:titleEnd], "# \t"))
		bodyStart := loc[1]
		bodyEnd := len(content)
		if i+1 < len(locs) {
			bodyEnd = locs[i+1][0]
		}
		body := strings.TrimSpace(content[bodyStart:bodyEnd])
		sections = append(sections, section{title: title, body: body})
	}
	return sections
}

// splitWindows splits body's whitespace-separated tokens into windows of at
// most maxTokens, with an overlapTokens overlap between consecutive
// windows. Empty sub-chunks are dropped by the caller.
func splitWindows(body string, maxTokens, overlapTokens int) []string {
	tokens := strings.Fields(body)
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) <= maxTokens {
		return []string{strings.Join(tokens, " ")}
	}

	stride := maxTokens - overlapTokens
	if stride <= 0 {
		stride = maxTokens
	}

	var windows []string
	for start := 0; start < len(tokens); start += stride {
		end := start + maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		windows = append(windows, strings.Join(tokens[start:end], " "))
		if end == len(tokens) {
			break
		}
	}
	return windows
}

// chunkID derives a stable 128-bit fingerprint from (skill, file, section,
// first 50 chars of body).
func chunkID(skill, file, sectionTitle, body string) string {
	prefix := body
	if runes := []rune(body); len(runes) > 50 {
		prefix = string(runes[:50])
	}
	h := md5.Sum([]byte(skill + "/" + file + "/" + sectionTitle + "/" + prefix))
	return hex.EncodeToString(h[:])
}
