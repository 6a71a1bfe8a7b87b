package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// defaultProhibitedTerms are claims that commonly trip advertising
// standards. Extend per legal/compliance requirements.
var defaultProhibitedTerms = []string{
	"guaranteed",
	"miracle",
	"cure",
}

// ModerationResult is the outcome of screening one piece of text.
type ModerationResult struct {
	Flagged         bool
	ProhibitedTerms []string
}

// IsSafe reports whether the text passed every moderation check.
func (r ModerationResult) IsSafe() bool {
	return !r.Flagged && len(r.ProhibitedTerms) == 0
}

// TextCheck is a pluggable moderation check. Checks are combined with
// the keyword filter: text is safe only when no check flags it.
type TextCheck interface {
	Name() string
	Flagged(ctx context.Context, text string) (bool, error)
}

// noopTextCheck stands in until a classifier-based check is enabled.
type noopTextCheck struct{}

func (noopTextCheck) Name() string { return "ai_moderation" }

func (noopTextCheck) Flagged(ctx context.Context, text string) (bool, error) {
	return false, nil
}

// OpenAIModerationCheck screens text through the OpenAI moderation API.
type OpenAIModerationCheck struct {
	client *openai.Client
}

func NewOpenAIModerationCheck(apiKey string) *OpenAIModerationCheck {
	return &OpenAIModerationCheck{client: openai.NewClient(apiKey)}
}

func (c *OpenAIModerationCheck) Name() string { return "openai_moderation" }

func (c *OpenAIModerationCheck) Flagged(ctx context.Context, text string) (bool, error) {
	resp, err := c.client.Moderations(ctx, openai.ModerationRequest{
		Input: text,
		Model: openai.ModerationOmniLatest,
	})
	if err != nil {
		return false, fmt.Errorf("moderation request failed: %w", err)
	}
	if len(resp.Results) == 0 {
		return false, nil
	}
	return resp.Results[0].Flagged, nil
}

// ContentModerator screens free text against a prohibited term list and
// any configured additional checks.
type ContentModerator struct {
	prohibitedTerms []string
	checks          []TextCheck
}

// NewContentModerator builds a moderator. A nil term list selects the
// defaults; with no extra checks the stub check is installed so a real
// classifier can be swapped in without changing callers.
func NewContentModerator(prohibitedTerms []string, checks ...TextCheck) *ContentModerator {
	if prohibitedTerms == nil {
		prohibitedTerms = defaultProhibitedTerms
	}
	if len(checks) == 0 {
		checks = []TextCheck{noopTextCheck{}}
	}
	return &ContentModerator{prohibitedTerms: prohibitedTerms, checks: checks}
}

// CheckProhibitedTerms returns every configured term the text contains,
// matched case-insensitively as a substring.
func (m *ContentModerator) CheckProhibitedTerms(text string) []string {
	var found []string
	lower := strings.ToLower(text)
	for _, term := range m.prohibitedTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}
	return found
}

// ModerateText runs the keyword filter and every pluggable check. A
// failing check is logged and skipped rather than blocking the result.
func (m *ContentModerator) ModerateText(ctx context.Context, text string) ModerationResult {
	result := ModerationResult{
		ProhibitedTerms: m.CheckProhibitedTerms(text),
	}
	for _, check := range m.checks {
		flagged, err := check.Flagged(ctx, text)
		if err != nil {
			log.Printf("WARNING: %s check failed: %v", check.Name(), err)
			continue
		}
		if flagged {
			result.Flagged = true
		}
	}
	return result
}

// ModerateCampaignMessage screens the campaign message. In strict mode
// an unsafe message is an error; otherwise it is logged as a warning and
// the caller decides whether to continue.
func (m *ContentModerator) ModerateCampaignMessage(ctx context.Context, message string, strict bool) (ModerationResult, error) {
	result := m.ModerateText(ctx, message)
	if result.IsSafe() {
		return result, nil
	}

	detail := "flagged by moderation"
	if len(result.ProhibitedTerms) > 0 {
		detail = fmt.Sprintf("prohibited terms found: %s", strings.Join(result.ProhibitedTerms, ", "))
	}
	if strict {
		return result, &ValidationError{Reason: fmt.Sprintf("campaign message failed moderation: %s", detail)}
	}
	log.Printf("WARNING: campaign message failed moderation: %s", detail)
	return result, nil
}
