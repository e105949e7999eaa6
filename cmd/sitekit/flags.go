package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// projectFlags locate the site.
type projectFlags struct {
	root string
	data string
	page string
}

// renderFlags control how the sampler is rendered.
type renderFlags struct {
	pageSize    string
	style       string
	assetPath   string
	timeout     string
	siteURL     string
	rasterWidth int
}

// outputFlags holds output mode flags for debugging.
type outputFlags struct {
	path     string
	html     bool // Output HTML alongside PDF
	htmlOnly bool // Output HTML only, skip PDF
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	project projectFlags
	render  renderFlags
	output  outputFlags
}

// lintFlags holds flags for the lint command.
type lintFlags struct {
	common commonFlags
	root   string
	only   []string
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config string
	root   string
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

func addProjectFlags(fs *flag.FlagSet, f *projectFlags) {
	fs.StringVarP(&f.root, "root", "r", "", "site root directory")
	fs.StringVar(&f.data, "data", "", "card data file, relative to root")
	fs.StringVar(&f.page, "page", "", "sampler page holding the updated stamp, relative to root")
}

func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.siteURL, "site-url", "", "published site URL for site-root links")
	fs.IntVar(&f.rasterWidth, "raster-width", 0, "pixel width for rasterized SVG images")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.path, "output", "o", "", "output PDF path, relative to root")
	fs.BoolVar(&f.html, "html", false, "output HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip PDF")
}

// newBuildFlagSet registers every build flag on a new FlagSet.
// Completion reads the same FlagSet, so flags are declared once.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addProjectFlags(fs, &f.project)
	addRenderFlags(fs, &f.render)
	addOutputFlags(fs, &f.output)
	return fs
}

func newLintFlagSet(f *lintFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.root, "root", "r", "", "site root directory")
	fs.StringSliceVar(&f.only, "only", nil, "rule sets to run, e.g. hidden|nav or content,links")
	return fs
}

func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.StringVarP(&f.root, "root", "r", "", "site root directory")
	fs.BoolVar(&f.json, "json", false, "output results as JSON")
	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
// Usage text for -h goes to w.
func parseBuildFlags(args []string, w io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.SetOutput(w)
	fs.Usage = func() { printBuildUsage(w) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseLintFlags(args []string, w io.Writer) (*lintFlags, []string, error) {
	f := &lintFlags{}
	fs := newLintFlagSet(f)
	fs.SetOutput(w)
	fs.Usage = func() { printLintUsage(w) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, []string, error) {
	f := &doctorFlags{}
	fs := newDoctorFlagSet(f)
	fs.SetOutput(w)
	fs.Usage = func() { printDoctorUsage(w) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
