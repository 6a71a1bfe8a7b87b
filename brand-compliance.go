package main

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	colorSampleSize = 100 // downsample size for pixel scanning
	colorTolerance  = 30  // max per-channel distance to count as a match
)

// CheckResult is the outcome of a single compliance check.
type CheckResult struct {
	Name    string
	Passed  bool
	Score   float64
	Message string
	Details map[string]string
}

// ImageCheck inspects a rendered creative. Checks must not modify the
// image.
type ImageCheck interface {
	Name() string
	Check(img image.Image) CheckResult
}

// ColorPresenceCheck verifies the brand color appears somewhere in the
// creative. The image is downsampled first so the scan cost does not
// depend on the render size.
type ColorPresenceCheck struct {
	BrandColor string
}

func (c ColorPresenceCheck) Name() string { return "color_presence" }

func (c ColorPresenceCheck) Check(img image.Image) CheckResult {
	if c.BrandColor == "" {
		return CheckResult{
			Name:    c.Name(),
			Passed:  true,
			Score:   100,
			Message: "No brand color specified - skipped",
		}
	}
	r, g, b, err := hexToRGB(c.BrandColor)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Passed:  false,
			Score:   0,
			Message: fmt.Sprintf("Color check failed: %v", err),
		}
	}

	// NearestNeighbor keeps original pixel values instead of blending
	// them away.
	sample := imaging.Resize(img, colorSampleSize, colorSampleSize, imaging.NearestNeighbor)
	for y := 0; y < sample.Bounds().Dy(); y++ {
		for x := 0; x < sample.Bounds().Dx(); x++ {
			px := sample.NRGBAAt(x, y)
			if absDiff(px.R, r) < colorTolerance && absDiff(px.G, g) < colorTolerance && absDiff(px.B, b) < colorTolerance {
				return CheckResult{
					Name:    c.Name(),
					Passed:  true,
					Score:   100,
					Message: fmt.Sprintf("Brand color %s detected", c.BrandColor),
				}
			}
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Passed:  false,
		Score:   50,
		Message: fmt.Sprintf("Brand color %s not prominently featured", c.BrandColor),
		Details: map[string]string{"brand_color": c.BrandColor},
	}
}

// MinResolutionCheck verifies the creative meets a minimum pixel size.
type MinResolutionCheck struct {
	MinWidth  int
	MinHeight int
}

func (c MinResolutionCheck) Name() string { return "min_resolution" }

func (c MinResolutionCheck) Check(img image.Image) CheckResult {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w >= c.MinWidth && h >= c.MinHeight {
		return CheckResult{
			Name:    c.Name(),
			Passed:  true,
			Score:   100,
			Message: fmt.Sprintf("Resolution %dx%d meets minimum %dx%d", w, h, c.MinWidth, c.MinHeight),
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Passed:  false,
		Score:   50,
		Message: fmt.Sprintf("Resolution %dx%d below minimum %dx%d", w, h, c.MinWidth, c.MinHeight),
		Details: map[string]string{
			"width":      strconv.Itoa(w),
			"height":     strconv.Itoa(h),
			"min_width":  strconv.Itoa(c.MinWidth),
			"min_height": strconv.Itoa(c.MinHeight),
		},
	}
}

// CheckReport is one check's outcome as written to the report.
type CheckReport struct {
	Passed  bool              `yaml:"passed"`
	Score   float64           `yaml:"score"`
	Message string            `yaml:"message"`
	Details map[string]string `yaml:"details"`
}

// ComplianceSummary aggregates every check run against one creative.
type ComplianceSummary struct {
	OverallPassed bool                   `yaml:"overall_passed"`
	OverallScore  float64                `yaml:"overall_score"`
	Checks        map[string]CheckReport `yaml:"checks"`
}

// BrandComplianceChecker runs a fixed set of checks against rendered
// creatives.
type BrandComplianceChecker struct {
	checks []ImageCheck
}

// NewBrandComplianceChecker builds a checker with the color presence
// check plus any extras.
func NewBrandComplianceChecker(brandColor string, extra ...ImageCheck) *BrandComplianceChecker {
	checks := []ImageCheck{ColorPresenceCheck{BrandColor: brandColor}}
	checks = append(checks, extra...)
	return &BrandComplianceChecker{checks: checks}
}

// RunBrandChecks runs every check and aggregates the outcomes: overall
// passes only when every check passes, and the score is the mean of the
// check scores rounded to one decimal.
func (b *BrandComplianceChecker) RunBrandChecks(img image.Image) *ComplianceSummary {
	summary := &ComplianceSummary{
		OverallPassed: true,
		Checks:        make(map[string]CheckReport, len(b.checks)),
	}
	var total float64
	for _, check := range b.checks {
		result := check.Check(img)
		if !result.Passed {
			summary.OverallPassed = false
		}
		total += result.Score

		details := result.Details
		if details == nil {
			details = map[string]string{}
		}
		summary.Checks[result.Name] = CheckReport{
			Passed:  result.Passed,
			Score:   result.Score,
			Message: result.Message,
			Details: details,
		}
	}
	if len(b.checks) > 0 {
		summary.OverallScore = round1(total / float64(len(b.checks)))
	}
	return summary
}

// hexToRGB parses a "#RRGGBB" color into its components.
func hexToRGB(hex string) (r, g, b uint8, err error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
