package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-sitekit/internal/hints"
	"github.com/alnah/go-sitekit/internal/lint"
)

// ErrLintFailed is returned when at least one rule recorded an error.
// The report has already been printed.
var ErrLintFailed = errors.New("lint failed")

// runLintCmd parses lint flags and runs the selected rules.
func runLintCmd(args []string, env *Environment) error {
	flags, positional, err := parseLintFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	// "sitekit lint hidden nav" reads like --only hidden,nav.
	flags.only = append(flags.only, positional...)
	return runLint(flags, env)
}

func runLint(flags *lintFlags, env *Environment) error {
	rules, err := lint.Select(flags.only)
	if err != nil {
		return err
	}
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, _, err := resolveConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	if flags.root != "" {
		cfg.Root = flags.root
	}
	anchorRoot(cfg, env)

	start := env.now()
	report, err := lint.Run(cfg, rules)
	if err != nil {
		return err
	}

	printReport(env, report, rules, flags.common.quiet)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Checked %d rule sets in %v\n", len(rules), env.now().Sub(start).Round(time.Millisecond))
	}

	if report.Failed() {
		if !flags.common.quiet {
			if hint := hints.ForLintFailure(failedRules(report, rules)); hint != "" && len(rules) > 1 {
				fmt.Fprintln(env.Stderr, strings.TrimPrefix(hint, "\n"))
			}
		}
		return ErrLintFailed
	}
	return nil
}

// printReport writes errors, warnings, and one status line per rule set.
// Errors are always shown; quiet drops everything else.
func printReport(env *Environment, report *lint.Report, rules []lint.Rule, quiet bool) {
	pass := statusColor(env, color.FgGreen)
	fail := statusColor(env, color.FgRed)
	warn := statusColor(env, color.FgYellow)

	if errs := report.Errors(); len(errs) > 0 {
		fmt.Fprintln(env.Stdout, fail.Sprint("Errors:"))
		printIssues(env.Stdout, errs)
	}
	if quiet {
		return
	}
	if warnings := report.Warnings(); len(warnings) > 0 {
		fmt.Fprintln(env.Stdout, warn.Sprint("Warnings:"))
		printIssues(env.Stdout, warnings)
	}

	for _, rule := range rules {
		switch {
		case report.RuleFailed(rule.Name):
			fmt.Fprintf(env.Stdout, "%s: %s\n", rule.Name, fail.Sprint("FAIL"))
		case report.Aborted() != "" && ranAfter(rules, rule.Name, report.Aborted()):
			fmt.Fprintf(env.Stdout, "%s: %s\n", rule.Name, warn.Sprint("SKIPPED"))
		default:
			fmt.Fprintf(env.Stdout, "%s: %s\n", rule.Name, pass.Sprint("PASS"))
		}
	}
	if len(report.Issues()) == 0 {
		fmt.Fprintln(env.Stdout, "All good")
	}
}

func printIssues(w io.Writer, issues []lint.Issue) {
	for _, issue := range issues {
		fmt.Fprintln(w, " -", issue.String())
	}
}

// ranAfter reports whether name comes after stop in rules.
func ranAfter(rules []lint.Rule, name, stop string) bool {
	seen := false
	for _, r := range rules {
		if r.Name == name {
			return seen
		}
		if r.Name == stop {
			seen = true
		}
	}
	return false
}

func failedRules(report *lint.Report, rules []lint.Rule) []string {
	var names []string
	for _, r := range rules {
		if report.RuleFailed(r.Name) {
			names = append(names, r.Name)
		}
	}
	return names
}

// statusColor returns a color that honors env.Color instead of the
// package-level detection in fatih/color.
func statusColor(env *Environment, attr color.Attribute) *color.Color {
	c := color.New(attr, color.Bold)
	if env.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
