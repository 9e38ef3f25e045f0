package lookup

import (
	"regexp"
	"strconv"
	"strings"
)

// Retail product titles append packaging noise after the film title:
// "The Matrix (Blu-ray) (1999)", "Inception [4K UHD + Digital Copy]".
var (
	trailingYearRe  = regexp.MustCompile(`\s*[(\[]((?:19|20)\d{2})[)\]]\s*$`)
	formatMarkerRe  = regexp.MustCompile(`(?i)[(\[][^()\[\]]*(?:blu-?ray|4k|uhd|ultra\s*hd|dvd|digital|combo|widescreen|steelbook|disc|edition)[^()\[\]]*[)\]]`)
	bareMarkerRe    = regexp.MustCompile(`(?i)\s+(?:blu-?ray|4k\s+uhd|4k\s+ultra\s*hd|combo\s+pack|widescreen\s+edition|special\s+edition|collector'?s\s+edition|steelbook)\s*$`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	trailingPunctRe = regexp.MustCompile(`[\s\-:;,.]+$`)
)

// NormalizeTitle strips retail packaging markers and a trailing release year
// from a product title. It returns the cleaned title and the extracted year,
// or 0 when no year is present. Normalization never fails: if cleaning would
// leave nothing usable, the original title is returned unchanged. The
// function is idempotent.
func NormalizeTitle(raw string) (string, int) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return raw, 0
	}

	title = formatMarkerRe.ReplaceAllString(title, " ")

	year := 0
	if m := trailingYearRe.FindStringSubmatch(title); m != nil {
		year, _ = strconv.Atoi(m[1])
		title = title[:len(title)-len(m[0])]
	}

	// Markers may follow the year too: "The Matrix (1999) (Blu-ray)".
	title = formatMarkerRe.ReplaceAllString(title, " ")
	title = bareMarkerRe.ReplaceAllString(title, " ")

	title = whitespaceRe.ReplaceAllString(title, " ")
	title = trailingPunctRe.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)

	if title == "" {
		return strings.TrimSpace(raw), 0
	}
	return title, year
}

// InferFormat derives a physical media format from retail product text.
// Returns "" when no format marker is recognizable.
func InferFormat(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "4k") || strings.Contains(lower, "uhd") || strings.Contains(lower, "ultra hd"):
		return "4K UHD"
	case strings.Contains(lower, "blu-ray") || strings.Contains(lower, "bluray") || strings.Contains(lower, "blu ray"):
		return "Blu-ray"
	case strings.Contains(lower, "dvd"):
		return "DVD"
	}
	return ""
}
