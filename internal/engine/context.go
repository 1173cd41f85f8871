package engine

import (
	"context"
	"fmt"
	"strings"
)

// charsPerToken approximates spec's tokens ≈ len(block) / 4 accounting.
const charsPerToken = 4

// GetContext runs Search and serialises the results into a single
// markdown context block sized to maxTokens, greedily appending result
// blocks until the next one would exceed the budget.
func (e *Engine) GetContext(ctx context.Context, query string, maxTokens int) (string, error) {
	resp, err := e.Search(ctx, query, e.cfg.TopK)
	if err != nil {
		return "", err
	}
	if len(resp.Results) == 0 {
		return "", nil
	}

	header := fmt.Sprintf("# Relevant Knowledge (%s)\n\n", strings.Join(resp.SkillsUsed, ", "))

	var b strings.Builder
	b.WriteString(header)
	budget := maxTokens * charsPerToken

	for _, r := range resp.Results {
		block := fmt.Sprintf("## [%s] %s — %s\n\n%s\n---\n", r.Skill, r.File, r.Section, r.Text)
		if b.Len()+len(block) > budget {
			break
		}
		b.WriteString(block)
	}

	if b.Len() == len(header) {
		return "", nil
	}
	return b.String(), nil
}
