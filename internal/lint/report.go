package lint

import "fmt"

// Severity classifies an issue.
type Severity int

const (
	// Warning is advisory and never fails a run.
	Warning Severity = iota
	// Error fails the run.
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Issue is one finding.
type Issue struct {
	Severity Severity
	Rule     string
	Subject  string // file or card the issue is about, may be empty
	Message  string
}

func (i Issue) String() string {
	if i.Subject == "" {
		return i.Message
	}
	return i.Subject + ": " + i.Message
}

// Report accumulates issues across rules. The zero value is ready to use.
type Report struct {
	issues  []Issue
	aborted string // rule that stopped the run
}

// Errorf records an error.
func (r *Report) Errorf(rule, subject, format string, args ...any) {
	r.add(Error, rule, subject, fmt.Sprintf(format, args...))
}

// Warnf records a warning.
func (r *Report) Warnf(rule, subject, format string, args ...any) {
	r.add(Warning, rule, subject, fmt.Sprintf(format, args...))
}

func (r *Report) add(sev Severity, rule, subject, msg string) {
	r.issues = append(r.issues, Issue{Severity: sev, Rule: rule, Subject: subject, Message: msg})
}

// Issues returns every issue in the order recorded.
func (r *Report) Issues() []Issue {
	return r.issues
}

// Errors returns the error issues.
func (r *Report) Errors() []Issue {
	return r.filter(func(i Issue) bool { return i.Severity == Error })
}

// Warnings returns the warning issues.
func (r *Report) Warnings() []Issue {
	return r.filter(func(i Issue) bool { return i.Severity == Warning })
}

// ForRule returns the issues recorded by one rule.
func (r *Report) ForRule(rule string) []Issue {
	return r.filter(func(i Issue) bool { return i.Rule == rule })
}

func (r *Report) filter(keep func(Issue) bool) []Issue {
	var out []Issue
	for _, i := range r.issues {
		if keep(i) {
			out = append(out, i)
		}
	}
	return out
}

// Failed reports whether at least one error was recorded.
func (r *Report) Failed() bool {
	for _, i := range r.issues {
		if i.Severity == Error {
			return true
		}
	}
	return false
}

// RuleFailed reports whether rule recorded an error.
func (r *Report) RuleFailed(rule string) bool {
	for _, i := range r.issues {
		if i.Rule == rule && i.Severity == Error {
			return true
		}
	}
	return false
}

// Aborted returns the rule that stopped the run, or "".
func (r *Report) Aborted() string {
	return r.aborted
}
