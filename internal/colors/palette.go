// Package colors serves the brand design-system color palette: brand,
// semantic, functional, and utility tokens plus per-family shade listings.
package colors

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/b-ciq/brand-assets-server/internal/observability"
)

//go:embed palette.json
var embeddedPalette []byte

// Shade is one step in a utility color family
type Shade struct {
	Shade    string `json:"shade"`
	Property string `json:"property"`
	Value    string `json:"value"`
}

// Token is a named color token within a category
type Token struct {
	Property string `json:"property"`
	Value    string `json:"value"`
	Usage    string `json:"usage,omitempty"`
}

// Palette is the loaded design-system palette. Immutable after load.
type Palette struct {
	Theme      string             `json:"theme"`
	Categories map[string][]Token `json:"categories"`
	Families   map[string][]Shade `json:"families"`
}

// Overview summarizes the palette for the top-level colors endpoint
type Overview struct {
	Theme           string         `json:"theme"`
	TotalProperties int            `json:"totalProperties"`
	Categories      map[string]int `json:"categories"`
	Families        []FamilyInfo   `json:"families"`
}

// FamilyInfo describes one utility family in the overview listing
type FamilyInfo struct {
	Family      string `json:"family"`
	ShadesCount int    `json:"shadesCount"`
	Lightest    string `json:"lightest"`
	Darkest     string `json:"darkest"`
}

// LoadPalette parses the embedded palette and validates its structure
func LoadPalette(logger observability.Logger) (*Palette, error) {
	var p Palette
	if err := json.Unmarshal(embeddedPalette, &p); err != nil {
		return nil, fmt.Errorf("invalid palette JSON: %w", err)
	}
	if p.Categories == nil || p.Families == nil {
		return nil, fmt.Errorf("invalid palette structure: missing categories or families section")
	}

	if logger != nil {
		logger.Info("Color palette loaded", map[string]interface{}{
			"theme":      p.Theme,
			"categories": len(p.Categories),
			"families":   len(p.Families),
		})
	}

	return &p, nil
}

// Overview returns the palette summary
func (p *Palette) Overview() Overview {
	o := Overview{
		Theme:      p.Theme,
		Categories: make(map[string]int, len(p.Categories)),
	}

	for name, tokens := range p.Categories {
		o.Categories[name] = len(tokens)
		o.TotalProperties += len(tokens)
	}

	for name, shades := range p.Families {
		o.TotalProperties += len(shades)
		info := FamilyInfo{Family: name, ShadesCount: len(shades)}
		if len(shades) > 0 {
			info.Lightest = shades[0].Shade
			info.Darkest = shades[len(shades)-1].Shade
		}
		o.Families = append(o.Families, info)
	}
	sort.Slice(o.Families, func(i, j int) bool { return o.Families[i].Family < o.Families[j].Family })

	return o
}

// Family returns the ordered shades of one utility family
func (p *Palette) Family(name string) ([]Shade, error) {
	shades, ok := p.Families[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown color family: %s", name)
	}
	return shades, nil
}

// Health reports the palette component status for the health endpoint
func (p *Palette) Health() string {
	if len(p.Families) == 0 {
		return "unhealthy: palette empty"
	}
	return "healthy"
}
