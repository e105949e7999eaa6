package lint

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-sitekit/internal/config"
)

// ErrUnknownRule is returned by Select for a name that is not a rule.
var ErrUnknownRule = errors.New("unknown lint rule")

// errStop is returned by a check when later rules cannot run meaningfully.
var errStop = errors.New("lint: stop")

// Rule is one named check.
type Rule struct {
	Name        string
	Description string
	check       func(c *checker) error
}

// Rules lists every rule in run order.
var Rules = []Rule{
	{Name: "content", Description: "required front matter and alt text in content collections", check: checkContent},
	{Name: "links", Description: "relative links in content bodies point at existing files", check: checkLinks},
	{Name: "docs", Description: "documents referenced from the about page exist", check: checkDocs},
	{Name: "hidden", Description: "the unlisted page keeps noindex, sitemap, and updated flags", check: checkHidden},
	{Name: "nav", Description: "navigation does not link the unlisted page", check: checkNav},
	{Name: "sampler", Description: "sampler card data is complete", check: checkSampler},
	{Name: "assets", Description: "placeholder images and the sampler PDF exist", check: checkAssets},
}

// Names returns the rule names in run order.
func Names() []string {
	names := make([]string, len(Rules))
	for i, r := range Rules {
		names[i] = r.Name
	}
	return names
}

// Select returns the rules named in only, in run order. Each entry may hold
// several names separated by "|" or ",". An empty selection means all rules.
func Select(only []string) ([]Rule, error) {
	want := make(map[string]bool)
	for _, entry := range only {
		for _, name := range strings.FieldsFunc(entry, func(r rune) bool { return r == '|' || r == ',' }) {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			if !isRule(name) {
				return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownRule, name, strings.Join(Names(), ", "))
			}
			want[name] = true
		}
	}
	if len(want) == 0 {
		return Rules, nil
	}

	selected := make([]Rule, 0, len(want))
	for _, r := range Rules {
		if want[r.Name] {
			selected = append(selected, r)
		}
	}
	return selected, nil
}

func isRule(name string) bool {
	for _, r := range Rules {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Run applies rules to the site described by cfg and returns the report.
// A rule that cannot proceed (the unlisted page is missing) ends the run;
// Report.Aborted names it. The returned error is reserved for failures
// outside the site content, such as an unreadable collection directory.
func Run(cfg *config.Config, rules []Rule) (*Report, error) {
	rep := &Report{}
	for _, rule := range rules {
		c := &checker{cfg: cfg, rule: rule.Name, rep: rep}
		err := rule.check(c)
		if errors.Is(err, errStop) {
			rep.aborted = rule.Name
			return rep, nil
		}
		if err != nil {
			return rep, fmt.Errorf("%s: %w", rule.Name, err)
		}
	}
	return rep, nil
}

// checker gives a rule its configuration and a report scoped to its name.
type checker struct {
	cfg  *config.Config
	rule string
	rep  *Report
}

func (c *checker) errorf(subject, format string, args ...any) {
	c.rep.Errorf(c.rule, subject, format, args...)
}

func (c *checker) warnf(subject, format string, args ...any) {
	c.rep.Warnf(c.rule, subject, format, args...)
}

// rel shows path relative to the site root when possible.
func (c *checker) rel(path string) string {
	if r, err := filepath.Rel(c.cfg.Root, path); err == nil && !strings.HasPrefix(r, "..") {
		return filepath.ToSlash(r)
	}
	return path
}
