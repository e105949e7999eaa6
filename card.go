package sitekit

import (
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-sitekit/internal/yamlutil"
)

// Card is one sampler entry from the site data file.
//
// The sampler struct tags describe what a publishable card needs; the
// builder itself only requires a title.
type Card struct {
	ID       string     `yaml:"id" sampler:"required"`
	Title    string     `yaml:"title" sampler:"required"`
	ImageSrc string     `yaml:"img_src" sampler:"required"`
	ImageAlt string     `yaml:"img_alt" sampler:"required"`
	Abstract string     `yaml:"abstract"`
	Aligns   []string   `yaml:"aligns"`
	Methods  []string   `yaml:"methods" sampler:"min=1"`
	Outcomes []string   `yaml:"outcomes" sampler:"min=1"`
	Teach    Teach      `yaml:"teach"`
	Links    []CardLink `yaml:"links"`
}

// Teach is the teach-with-this kit for a card.
type Teach struct {
	Goal   string `yaml:"goal" sampler:"required"`
	Lab60  string `yaml:"lab60" sampler:"required"`
	Assess string `yaml:"assess" sampler:"required"`
}

// IsZero reports whether no teach field is set.
func (t Teach) IsZero() bool {
	return t.Goal == "" && t.Lab60 == "" && t.Assess == ""
}

// CardLink is an outbound link from a card.
type CardLink struct {
	URL      string `yaml:"url"`
	Label    string `yaml:"label"`
	Disabled bool   `yaml:"disabled"`
}

// Renderable reports whether the link may appear in output: not disabled,
// with a label and a URL other than "#".
func (l CardLink) Renderable() bool {
	url := strings.TrimSpace(l.URL)
	return !l.Disabled && url != "" && url != "#" && strings.TrimSpace(l.Label) != ""
}

// RenderableLinks returns the links that pass Renderable, in order.
func (c Card) RenderableLinks() []CardLink {
	var out []CardLink
	for _, l := range c.Links {
		if l.Renderable() {
			out = append(out, l)
		}
	}
	return out
}

type cardFile struct {
	Cards []Card `yaml:"cards"`
}

// LoadCards reads and parses the card data file at path.
func LoadCards(path string) ([]Card, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadData, err)
	}
	return ParseCards(data, path)
}

// ParseCards decodes the "cards" list of a data document. source names the
// document in errors. Absent lists and mappings become empty values, and
// an empty collection is an error: a sampler without cards is never built.
func ParseCards(data []byte, source string) ([]Card, error) {
	if yamlutil.IsBlank(data) {
		return nil, noCards(source)
	}

	var f cardFile
	if err := yamlutil.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseData, source, err)
	}
	if len(f.Cards) == 0 {
		return nil, noCards(source)
	}

	seen := make(map[string]int, len(f.Cards))
	for i := range f.Cards {
		c := &f.Cards[i]
		normalize(c)
		if c.ID == "" {
			continue
		}
		if first, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("%w: %q at cards %d and %d in %s", ErrDuplicateCard, c.ID, first+1, i+1, source)
		}
		seen[c.ID] = i
	}
	return f.Cards, nil
}

func normalize(c *Card) {
	if c.Aligns == nil {
		c.Aligns = []string{}
	}
	if c.Methods == nil {
		c.Methods = []string{}
	}
	if c.Outcomes == nil {
		c.Outcomes = []string{}
	}
	if c.Links == nil {
		c.Links = []CardLink{}
	}
}

func noCards(source string) error {
	return fmt.Errorf("%w in %s; PDF would be a ghost", ErrNoCards, source)
}
