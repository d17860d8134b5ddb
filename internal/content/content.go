// Package content rotates keywords, business names, descriptions, and ring
// colors across generated sample points.
package content

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/geo-locator/internal/model"
)

// DefaultCenterColor is used for the ring-0 center point, which has no
// palette slot.
const DefaultCenterColor = "black"

// DefaultPalette is the ring color order.
var DefaultPalette = []string{
	"red", "blue", "green", "orange", "purple",
	"black", "gray", "pink", "cyan", "yellow",
}

// Lists holds the user-editable content lists.
type Lists struct {
	Keywords      []string `json:"keywords"`
	BusinessNames []string `json:"business_names"`
	Descriptions  []string `json:"descriptions"`
}

// Normalize returns a copy with entries trimmed and NFC-normalized. Blank
// entries are dropped.
func (l Lists) Normalize() Lists {
	return Lists{
		Keywords:      clean(l.Keywords),
		BusinessNames: clean(l.BusinessNames),
		Descriptions:  clean(l.Descriptions),
	}
}

// Validate reports the first empty list as a ConfigError.
func (l Lists) Validate() error {
	switch {
	case len(l.Keywords) == 0:
		return model.NewConfigError("content.keywords", "at least one keyword is required")
	case len(l.Descriptions) == 0:
		return model.NewConfigError("content.descriptions", "at least one description is required")
	case len(l.BusinessNames) == 0:
		return model.NewConfigError("content.business_names", "at least one business name is required")
	}
	return nil
}

// Variant is the content assigned to a single point.
type Variant struct {
	Keyword      string `json:"keyword"`
	BusinessName string `json:"business_name"`
	Description  string `json:"description"`
	Color        string `json:"color"`
}

// Assigner maps a point's sequence and ring index to a Variant. Lists are
// validated once at construction, so Assign never fails. It holds no mutable
// state and is safe for concurrent use.
type Assigner struct {
	lists       Lists
	palette     []string
	centerColor string
}

// NewAssigner validates the lists and palette and returns an Assigner.
// An empty centerColor falls back to DefaultCenterColor.
func NewAssigner(lists Lists, palette []string, centerColor string) (*Assigner, error) {
	lists = lists.Normalize()
	if err := lists.Validate(); err != nil {
		return nil, err
	}

	palette = clean(palette)
	if len(palette) == 0 {
		return nil, model.NewConfigError("content.palette", "at least one color is required")
	}

	centerColor = strings.TrimSpace(centerColor)
	if centerColor == "" {
		centerColor = DefaultCenterColor
	}

	return &Assigner{lists: lists, palette: palette, centerColor: centerColor}, nil
}

// Assign returns the content for the given point. Text fields rotate by
// sequenceIndex; color rotates by ring, with the center using the fixed
// center color.
func (a *Assigner) Assign(sequenceIndex, ringIndex int) Variant {
	v := Variant{
		Keyword:      pick(a.lists.Keywords, sequenceIndex),
		BusinessName: pick(a.lists.BusinessNames, sequenceIndex),
		Description:  pick(a.lists.Descriptions, sequenceIndex),
		Color:        a.centerColor,
	}
	if ringIndex >= 1 {
		v.Color = pick(a.palette, ringIndex-1)
	}
	return v
}

// Lists returns the normalized lists the Assigner rotates over.
func (a *Assigner) Lists() Lists {
	return Lists{
		Keywords:      append([]string(nil), a.lists.Keywords...),
		BusinessNames: append([]string(nil), a.lists.BusinessNames...),
		Descriptions:  append([]string(nil), a.lists.Descriptions...),
	}
}

// ParseList splits comma-separated bulk entry into a list, trimming
// whitespace and dropping empty entries.
func ParseList(s string) []string {
	return clean(strings.Split(s, ","))
}

// pick selects list[i mod len] with a non-negative modulus.
func pick(list []string, i int) string {
	n := len(list)
	return list[((i%n)+n)%n]
}

// clean trims and NFC-normalizes entries, dropping blanks. Pasted text can
// arrive decomposed; output should carry one encoding per character.
func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = norm.NFC.String(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
