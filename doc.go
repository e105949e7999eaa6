// Package sitekit builds the printable sampler for a static portfolio site.
//
// Cards are read from a YAML data file, their hero images are resolved
// under the site root, and the result is laid out as a cover followed by
// one section per card. The layout is rendered to HTML and printed to PDF
// by headless Chrome.
//
//	cards, err := sitekit.LoadCards("_data/cds.yml")
//	if err != nil {
//	    return err
//	}
//	b, err := sitekit.NewBuilder(sitekit.WithPageSize("letter"))
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//	res, err := b.Build(ctx, sitekit.Input{Root: ".", Cards: cards, Cover: sitekit.DefaultCover()})
package sitekit
