// Package variants parses free-text color/size blocks typed into the chat.
//
// Parsing is deliberately permissive: lines that do not match the expected
// shape are dropped silently, never rejected, because the input is chat
// text with no grammar enforced upstream.
package variants

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kitestore-next/internal/models"
)

// noneTokens are the accepted "no value" sentinels, lower-cased.
var noneTokens = map[string]struct{}{
	"нет":  {},
	"none": {},
	"no":   {},
	"-":    {},
}

// IsNone reports whether text is a sentinel meaning "no value".
func IsNone(text string) bool {
	_, ok := noneTokens[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

// Parse reads a combined variant block with COLORS/SIZES section markers
// and returns the structured variants. Sentinel "none" input yields empty
// lists without line parsing. Lines before the first marker belong to no
// section and are dropped.
func Parse(text string) ([]models.Color, []models.Size) {
	colors := []models.Color{}
	sizes := []models.Size{}
	if IsNone(text) {
		return colors, sizes
	}

	mode := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		upper := strings.ToUpper(line)
		if strings.Contains(upper, "ЦВЕТА") || strings.Contains(upper, "COLORS") {
			mode = "colors"
			continue
		}
		if strings.Contains(upper, "РАЗМЕРЫ") || strings.Contains(upper, "SIZES") {
			mode = "sizes"
			continue
		}
		switch mode {
		case "colors":
			if color, ok := parseColorLine(line); ok {
				colors = append(colors, color)
			}
		case "sizes":
			if size, ok := parseSizeLine(line); ok {
				sizes = append(sizes, size)
			}
		}
	}
	return colors, sizes
}

// ParseColors reads a single-section block where every line is a color;
// no marker is required. Used by the edit flow.
func ParseColors(text string) []models.Color {
	colors := []models.Color{}
	if IsNone(text) {
		return colors
	}
	for _, line := range strings.Split(text, "\n") {
		if color, ok := parseColorLine(strings.TrimSpace(line)); ok {
			colors = append(colors, color)
		}
	}
	return colors
}

// ParseSizes reads a single-section block where every line is a size.
func ParseSizes(text string) []models.Size {
	sizes := []models.Size{}
	if IsNone(text) {
		return sizes
	}
	for _, line := range strings.Split(text, "\n") {
		if size, ok := parseSizeLine(strings.TrimSpace(line)); ok {
			sizes = append(sizes, size)
		}
	}
	return sizes
}

// parseColorLine splits on the last space into a name and a #-code. The
// last-space split tolerates names containing spaces.
func parseColorLine(line string) (models.Color, bool) {
	idx := strings.LastIndex(line, " ")
	if idx <= 0 {
		return models.Color{}, false
	}
	name := strings.TrimSpace(line[:idx])
	value := strings.TrimSpace(line[idx+1:])
	if name == "" || !strings.HasPrefix(value, "#") {
		return models.Color{}, false
	}
	return models.Color{Name: name, Value: value}, true
}

// parseSizeLine splits on the last space into a label and an integer delta
// with an optional leading '+'.
func parseSizeLine(line string) (models.Size, bool) {
	idx := strings.LastIndex(line, " ")
	if idx <= 0 {
		return models.Size{}, false
	}
	label := strings.TrimSpace(line[:idx])
	raw := strings.TrimPrefix(strings.TrimSpace(line[idx+1:]), "+")
	if label == "" {
		return models.Size{}, false
	}
	delta, err := strconv.Atoi(raw)
	if err != nil {
		return models.Size{}, false
	}
	return models.Size{Label: label, PriceDelta: delta}, true
}

// Format renders variants as the canonical combined block accepted by
// Parse, so formatting and re-parsing round-trips.
func Format(colors []models.Color, sizes []models.Size) string {
	if len(colors) == 0 && len(sizes) == 0 {
		return "нет"
	}
	var b strings.Builder
	if len(colors) > 0 {
		b.WriteString("ЦВЕТА:\n")
		for _, c := range colors {
			fmt.Fprintf(&b, "%s %s\n", c.Name, c.Value)
		}
	}
	if len(sizes) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("РАЗМЕРЫ:\n")
		for _, s := range sizes {
			fmt.Fprintf(&b, "%s %d\n", s.Label, s.PriceDelta)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// SplitTags splits a comma-separated tag list, trimming whitespace and
// dropping empty entries.
func SplitTags(text string) []string {
	tags := []string{}
	for _, tag := range strings.Split(text, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ParsePrice parses an integer price, tolerating thousands separators
// (spaces and commas) typed by the admin.
func ParsePrice(text string) (int, error) {
	cleaned := strings.NewReplacer(" ", "", ",", "").Replace(strings.TrimSpace(text))
	value, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("not an integer price: %q", text)
	}
	return value, nil
}

// ParseOptionalPrice parses a price where the "none" sentinel maps to an
// absent value.
func ParseOptionalPrice(text string) (*int, error) {
	if IsNone(text) || strings.TrimSpace(text) == "" {
		return nil, nil
	}
	value, err := ParsePrice(text)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
