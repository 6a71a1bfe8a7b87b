package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Brand element defaults applied when the block is present but fields
// are left empty.
const (
	defaultPrimaryColor = "#000000"
	defaultBrandFont    = "Arial"
	defaultLanguage     = "en-US"
)

// ParseBrief loads and decodes a campaign brief from a YAML file. The
// decode is strict: unknown fields are rejected so typos in the brief
// surface as validation errors instead of silently dropped settings.
func ParseBrief(briefPath string) (*CampaignBrief, error) {
	data, err := os.ReadFile(briefPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Resource: "brief file", Path: briefPath}
		}
		return nil, fmt.Errorf("failed to read brief %s: %w", briefPath, err)
	}

	var brief CampaignBrief
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&brief); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid brief format: %v", err)}
	}

	if missing := missingRequiredFields(&brief); len(missing) > 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid brief format: missing required fields: %s", strings.Join(missing, ", "))}
	}

	applyBriefDefaults(&brief)
	return &brief, nil
}

func missingRequiredFields(brief *CampaignBrief) []string {
	var missing []string
	if brief.CampaignID == "" {
		missing = append(missing, "campaign_id")
	}
	if brief.Products == nil {
		missing = append(missing, "products")
	}
	for i, p := range brief.Products {
		if p.ID == "" {
			missing = append(missing, fmt.Sprintf("products[%d].id", i))
		}
		if p.Name == "" {
			missing = append(missing, fmt.Sprintf("products[%d].name", i))
		}
		if p.Description == "" {
			missing = append(missing, fmt.Sprintf("products[%d].description", i))
		}
	}
	if brief.TargetMarket.Region == "" {
		missing = append(missing, "target_market.region")
	}
	if brief.TargetAudience == "" {
		missing = append(missing, "target_audience")
	}
	if brief.CampaignMessage == "" {
		missing = append(missing, "campaign_message")
	}
	return missing
}

func applyBriefDefaults(brief *CampaignBrief) {
	if brief.TargetMarket.Language == "" {
		brief.TargetMarket.Language = defaultLanguage
	}
	if brief.BrandElements != nil {
		if brief.BrandElements.PrimaryColor == "" {
			brief.BrandElements.PrimaryColor = defaultPrimaryColor
		}
		if brief.BrandElements.Font == "" {
			brief.BrandElements.Font = defaultBrandFont
		}
	}
}

// ValidateBrief checks a parsed brief for completeness. Only the product
// count can invalidate a brief; the other rules produce advisory
// warnings the caller is expected to log.
func ValidateBrief(brief *CampaignBrief) (bool, []string) {
	var warnings []string

	if len(brief.Products) < 2 {
		warnings = append(warnings, fmt.Sprintf("Brief requires at least 2 products, found %d", len(brief.Products)))
	}

	var missingImages []string
	for _, p := range brief.Products {
		if p.HeroImage == "" {
			missingImages = append(missingImages, p.Name)
		}
	}
	if len(missingImages) > 0 {
		warnings = append(warnings, fmt.Sprintf("Products without hero images (will generate): %s", strings.Join(missingImages, ", ")))
	}

	if brief.BrandElements == nil {
		warnings = append(warnings, "No brand elements specified")
	}

	return len(brief.Products) >= 2, warnings
}
