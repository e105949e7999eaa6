//go:build integration

package sitekit

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

func TestBuild_Integration(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "assets/images/walk.svg", []byte(testSVG))

	b, err := NewBuilder(WithTimeout(60 * time.Second))
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })

	cards := []Card{
		{
			ID:       "walk",
			Title:    "Data Walk",
			ImageSrc: "/assets/images/walk.svg",
			Abstract: "A *guided* walk.",
			Methods:  []string{"Observe"},
			Outcomes: []string{"Map"},
			Teach:    Teach{Goal: "Notice", Lab60: "Walk", Assess: "Reflect"},
		},
		{ID: "min", Title: "Minimal"},
	}

	for _, size := range []string{PageSizeLetter, PageSizeA4} {
		t.Run(size, func(t *testing.T) {
			b.cfg.page = PageSettings{Size: size}
			ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
			defer cancel()

			res, err := b.Build(ctx, Input{Root: root, Cards: cards, Cover: DefaultCover()})
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			assertValidPDF(t, res.PDF)
		})
	}
}
