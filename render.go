package sitekit

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/alnah/go-sitekit/internal/assets"
	"github.com/alnah/go-sitekit/internal/pipeline"
)

// RenderOptions controls Document.RenderHTML.
type RenderOptions struct {
	CSS      string // stylesheet content; empty loads the embedded sampler style
	Template string // page template source; empty loads the embedded sampler template
	SiteURL  string // published site, for site-root and relative links
}

type pageView struct {
	Title    string
	CSS      template.CSS
	Cover    []elementView
	Sections []sectionView
}

type sectionView struct {
	ID       string
	Elements []elementView
}

type elementView struct {
	Kind   string
	Text   template.HTML
	Class  string
	Height string
	Items  []itemView
	Image  *imageView
}

type itemView struct {
	Label string
	Text  template.HTML
	URL   string
}

type imageView struct {
	Src    template.URL
	Alt    string
	Width  string
	Height string
}

// RenderHTML lays the document out as a standalone HTML page ready for
// printing. Paragraphs and list items are inline Markdown; everything
// else is escaped text.
func (d *Document) RenderHTML(opts RenderOptions) (string, error) {
	css := opts.CSS
	if css == "" {
		var err error
		if css, err = assets.LoadStyle(assets.DefaultStyleName); err != nil {
			return "", fmt.Errorf("%w: %v", ErrHTMLRender, err)
		}
	}
	src := opts.Template
	if src == "" {
		var err error
		if src, err = assets.LoadTemplate(assets.DefaultTemplateName); err != nil {
			return "", fmt.Errorf("%w: %v", ErrHTMLRender, err)
		}
	}

	tmpl, err := template.New("page").Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: parsing template: %v", ErrHTMLRender, err)
	}

	view, err := d.view(pipeline.NewInlineRenderer())
	if err != nil {
		return "", err
	}
	// The stylesheet comes from the embedded assets or a trusted asset directory.
	view.CSS = template.CSS(css) // #nosec G203

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLRender, err)
	}

	out, err := pipeline.RewriteLinks(buf.String(), pipeline.LinkOptions{SiteURL: opts.SiteURL})
	if err != nil {
		return "", fmt.Errorf("%w: rewriting links: %v", ErrHTMLRender, err)
	}
	return out, nil
}

func (d *Document) view(md *pipeline.InlineRenderer) (*pageView, error) {
	v := &pageView{Title: d.Title}
	var current *sectionView

	for _, e := range d.Elements {
		if e.Kind == KindSectionStart {
			v.Sections = append(v.Sections, sectionView{ID: e.CardID})
			current = &v.Sections[len(v.Sections)-1]
			continue
		}

		ev, err := elementToView(e, md)
		if err != nil {
			return nil, err
		}
		if current == nil {
			v.Cover = append(v.Cover, ev)
		} else {
			current.Elements = append(current.Elements, ev)
		}
	}
	return v, nil
}

func elementToView(e Element, md *pipeline.InlineRenderer) (elementView, error) {
	ev := elementView{Kind: e.Kind.String(), Class: e.Class}

	switch e.Kind {
	case KindParagraph:
		h, err := md.Inline(e.Text)
		if err != nil {
			return ev, fmt.Errorf("%w: %v", ErrHTMLRender, err)
		}
		ev.Text = template.HTML(h) // #nosec G203 -- goldmark output with raw HTML disabled
	case KindList:
		for _, it := range e.Items {
			iv := itemView{Label: it.Label, URL: it.URL}
			if it.URL != "" {
				iv.Text = template.HTML(template.HTMLEscapeString(it.Text)) // #nosec G203 -- escaped
			} else {
				h, err := md.Inline(it.Text)
				if err != nil {
					return ev, fmt.Errorf("%w: %v", ErrHTMLRender, err)
				}
				iv.Text = template.HTML(h) // #nosec G203 -- goldmark output with raw HTML disabled
			}
			ev.Items = append(ev.Items, iv)
		}
	case KindSpacer:
		ev.Height = inches(e.Height)
	case KindImage:
		iv := &imageView{
			Src:    template.URL(e.Image.DataURI()), // #nosec G203 -- data URI built here or an http(s) URL
			Alt:    e.Alt,
			Width:  "auto",
			Height: "auto",
		}
		if e.Width > 0 && e.Height > 0 {
			iv.Width, iv.Height = inches(e.Width), inches(e.Height)
		}
		ev.Image = iv
	default:
		ev.Text = template.HTML(template.HTMLEscapeString(e.Text)) // #nosec G203 -- escaped
	}
	return ev, nil
}

func inches(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64) + "in"
}
