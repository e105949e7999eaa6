package sitekit

import (
	"fmt"
	"strings"
)

// Layout constants, in inches.
const (
	MaxImageWidth  = 6.5
	MaxImageHeight = 3.9
	CoverSpacer    = 1.2
	ImageSpacer    = 0.25

	// pointsPerInch converts intrinsic pixel sizes: a pixel is laid out as
	// one point, so a raster is never enlarged past its natural size.
	pointsPerInch = 72.0
)

// ElementKind identifies a layout element.
type ElementKind int

const (
	KindCoverTitle ElementKind = iota
	KindTagline
	KindStamp
	KindNote
	KindSpacer
	KindPageBreak
	KindSectionStart
	KindCardTitle
	KindTags
	KindImage
	KindParagraph
	KindHeading
	KindList
)

var kindNames = [...]string{
	KindCoverTitle:   "cover-title",
	KindTagline:      "tagline",
	KindStamp:        "stamp",
	KindNote:         "note",
	KindSpacer:       "spacer",
	KindPageBreak:    "page-break",
	KindSectionStart: "section-start",
	KindCardTitle:    "card-title",
	KindTags:         "tags",
	KindImage:        "image",
	KindParagraph:    "paragraph",
	KindHeading:      "heading",
	KindList:         "list",
}

func (k ElementKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ElementKind(%d)", int(k))
	}
	return kindNames[k]
}

// Element is one block of the laid-out document.
type Element struct {
	Kind   ElementKind
	Text   string     // inline Markdown for paragraphs and list items, plain otherwise
	CardID string     // set on KindSectionStart
	Class  string     // list flavor: "bullets", "teach", "links"
	Items  []ListItem // KindList
	Image  *HeroImage // KindImage
	Alt    string     // KindImage
	Width  float64    // KindImage: inches, 0 when the size is unknown
	Height float64    // KindImage and KindSpacer: inches
}

// ListItem is one bullet. Label is rendered bold before Text; a URL turns
// Text into a link.
type ListItem struct {
	Label string
	Text  string
	URL   string
}

// Cover is the text of the first page.
type Cover struct {
	Title   string
	Tagline string
	Stamp   string // "updated" value; the stamp line is omitted when empty
	Note    string
}

// DefaultCover returns the standard sampler cover without a stamp.
func DefaultCover() Cover {
	return Cover{
		Title:   "Critical Digital Studies — Sampler",
		Tagline: "Practice-based glimpses of how pedagogy, ethics, and tooling intertwine.",
		Note: "Each subsequent page is a card: hero image, methods, outcomes, and the teach-with-this kit " +
			"so a future instructor can reproduce the work without guessing.",
	}
}

// Document is the ordered element stream of the sampler.
type Document struct {
	Title    string
	Elements []Element
}

// Sections counts card sections.
func (d *Document) Sections() int {
	return d.count(KindSectionStart)
}

// PageBreaks counts every page break, the one after the cover included.
func (d *Document) PageBreaks() int {
	return d.count(KindPageBreak)
}

// SectionBreaks counts page breaks between card sections.
func (d *Document) SectionBreaks() int {
	n, started := 0, false
	for _, e := range d.Elements {
		switch e.Kind {
		case KindSectionStart:
			started = true
		case KindPageBreak:
			if started {
				n++
			}
		}
	}
	return n
}

func (d *Document) count(kind ElementKind) int {
	n := 0
	for _, e := range d.Elements {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Assemble lays out the cover and one section per card. images must be
// parallel to cards and hold a resolved image for every card with an
// img_src. Cards are not modified.
func Assemble(cover Cover, cards []Card, images []*HeroImage) (*Document, error) {
	if len(cards) == 0 {
		return nil, ErrNoCards
	}
	if len(images) != len(cards) {
		return nil, fmt.Errorf("assembling: %d images for %d cards", len(images), len(cards))
	}

	doc := &Document{Title: cover.Title}
	doc.add(Element{Kind: KindCoverTitle, Text: cover.Title})
	if cover.Tagline != "" {
		doc.add(Element{Kind: KindTagline, Text: cover.Tagline})
	}
	if cover.Stamp != "" {
		doc.add(Element{Kind: KindStamp, Text: "Unlisted page · Updated " + cover.Stamp})
	}
	doc.add(Element{Kind: KindSpacer, Height: CoverSpacer})
	if cover.Note != "" {
		doc.add(Element{Kind: KindNote, Text: cover.Note})
	}
	doc.add(Element{Kind: KindPageBreak})

	for i, card := range cards {
		if strings.TrimSpace(card.ImageSrc) != "" && images[i] == nil {
			return nil, fmt.Errorf("%w for card %s: not resolved", ErrImageNotFound, card.ID)
		}
		doc.addCard(card, images[i])
		if i < len(cards)-1 {
			doc.add(Element{Kind: KindPageBreak})
		}
	}
	return doc, nil
}

func (d *Document) add(e Element) {
	d.Elements = append(d.Elements, e)
}

func (d *Document) addCard(card Card, hero *HeroImage) {
	d.add(Element{Kind: KindSectionStart, CardID: card.ID})
	d.add(Element{Kind: KindCardTitle, Text: card.Title})

	if len(card.Aligns) > 0 {
		d.add(Element{Kind: KindTags, Text: "Alignment: " + strings.Join(card.Aligns, " · ")})
	}
	if hero != nil {
		w, h := FitImage(hero.Width, hero.Height, MaxImageWidth, MaxImageHeight)
		alt := card.ImageAlt
		if alt == "" {
			alt = card.Title
		}
		d.add(Element{Kind: KindImage, Image: hero, Alt: alt, Width: w, Height: h})
		d.add(Element{Kind: KindSpacer, Height: ImageSpacer})
	}
	if card.Abstract != "" {
		d.add(Element{Kind: KindParagraph, Text: card.Abstract})
	}

	d.addList("Methods & Ethics", "bullets", bullets(card.Methods))
	d.addList("Outcomes", "bullets", bullets(card.Outcomes))

	var teach []ListItem
	if card.Teach.Goal != "" {
		teach = append(teach, ListItem{Label: "Goal:", Text: card.Teach.Goal})
	}
	if card.Teach.Lab60 != "" {
		teach = append(teach, ListItem{Label: "60-min lab:", Text: card.Teach.Lab60})
	}
	if card.Teach.Assess != "" {
		teach = append(teach, ListItem{Label: "Assess:", Text: card.Teach.Assess})
	}
	d.addList("Teach with this", "teach", teach)

	var links []ListItem
	for _, l := range card.RenderableLinks() {
		links = append(links, ListItem{Text: l.Label, URL: strings.TrimSpace(l.URL)})
	}
	d.addList("Links", "links", links)
}

func (d *Document) addList(heading, class string, items []ListItem) {
	if len(items) == 0 {
		return
	}
	d.add(Element{Kind: KindHeading, Text: heading})
	d.add(Element{Kind: KindList, Class: class, Items: items})
}

// bullets drops empty entries.
func bullets(values []string) []ListItem {
	var items []ListItem
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		items = append(items, ListItem{Text: v})
	}
	return items
}

// FitImage scales a pixel size into the maxW × maxH inch box, keeping the
// aspect ratio and never enlarging. Unknown sizes return 0, 0 so the
// renderer falls back to CSS limits.
func FitImage(pxW, pxH int, maxW, maxH float64) (w, h float64) {
	if pxW <= 0 || pxH <= 0 {
		return 0, 0
	}
	w = float64(pxW) / pointsPerInch
	h = float64(pxH) / pointsPerInch
	scale := 1.0
	if w > maxW {
		scale = maxW / w
	}
	if h*scale > maxH {
		scale = maxH / h
	}
	return w * scale, h * scale
}
