package main

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestLint_Report - Output format and exit codes
// ---------------------------------------------------------------------------

func TestLint_Report(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mutate       func(files map[string]string)
		args         []string
		wantCode     int
		wantInStdout []string
		notInStdout  []string
	}{
		{
			name:         "healthy site passes every rule set",
			args:         []string{"sitekit", "lint"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"content: PASS", "hidden: PASS", "sampler: PASS", "All good"},
			notInStdout:  []string{"FAIL", "Errors:"},
		},
		{
			name: "missing noindex fails the hidden rule",
			mutate: func(files map[string]string) {
				files["critical-digital-studies-sampler/index.md"] = strings.Replace(samplerPage, "noindex: true\n", "", 1)
			},
			args:         []string{"sitekit", "lint"},
			wantCode:     ExitGeneral,
			wantInStdout: []string{"Errors:", "noindex: true", "hidden: FAIL", "nav: PASS"},
		},
		{
			name: "nav link to the hidden page fails",
			mutate: func(files map[string]string) {
				files["_data/navigation.yml"] = "main:\n  - url: /critical-digital-studies-sampler/\n"
			},
			args:         []string{"sitekit", "lint", "--only", "nav"},
			wantCode:     ExitGeneral,
			wantInStdout: []string{"remove the link", "nav: FAIL"},
			notInStdout:  []string{"hidden:"},
		},
		{
			name: "warnings alone pass",
			mutate: func(files map[string]string) {
				files["_projects/a.md"] = "---\ntitle: A\nsummary: \"\"\nfeatured: true\nyear: 2024\nhero: /a.png\nhero_alt: A\n---\nbody\n"
			},
			args:         []string{"sitekit", "lint", "content"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Warnings:", "summary empty", "content: PASS"},
		},
		{
			name: "missing page stops the run",
			mutate: func(files map[string]string) {
				delete(files, "critical-digital-studies-sampler/index.md")
			},
			args:         []string{"sitekit", "lint", "hidden", "nav"},
			wantCode:     ExitGeneral,
			wantInStdout: []string{"Missing page:", "hidden: FAIL", "nav: SKIPPED"},
		},
		{
			name: "quiet prints only errors",
			mutate: func(files map[string]string) {
				files["_data/cds.yml"] = cardsYAML("a")
			},
			args:         []string{"sitekit", "lint", "-q", "--only", "sampler"},
			wantCode:     ExitGeneral,
			wantInStdout: []string{"Errors:", "Expected"},
			notInStdout:  []string{"sampler: FAIL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files := healthySite()
			if tt.mutate != nil {
				tt.mutate(files)
			}
			dir := setupTestDir(t, files)
			env, stdout, stderr := testEnv(dir, nil)

			code := runMain(tt.args, env)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d\nstdout: %s\nstderr: %s", code, tt.wantCode, stdout.String(), stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got:\n%s", want, stdout.String())
				}
			}
			for _, notWant := range tt.notInStdout {
				if strings.Contains(stdout.String(), notWant) {
					t.Errorf("stdout should not contain %q, got:\n%s", notWant, stdout.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLint_FailureHint - Points at --only when several rule sets ran
// ---------------------------------------------------------------------------

func TestLint_FailureHint(t *testing.T) {
	t.Parallel()

	files := healthySite()
	files["_data/navigation.yml"] = "- /critical-digital-studies-sampler/\n"
	dir := setupTestDir(t, files)
	env, _, stderr := testEnv(dir, nil)

	if code := runMain([]string{"sitekit", "lint"}, env); code != ExitGeneral {
		t.Fatalf("exit code = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(stderr.String(), "--only nav") {
		t.Errorf("stderr = %q, want a --only nav hint", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestStatusColor - Color follows the environment, not the terminal probe
// ---------------------------------------------------------------------------

func TestStatusColor(t *testing.T) {
	t.Parallel()

	plain := statusColor(&Environment{Color: false}, 31).Sprint("FAIL")
	if plain != "FAIL" {
		t.Errorf("uncolored = %q, want FAIL", plain)
	}
	colored := statusColor(&Environment{Color: true}, 31).Sprint("FAIL")
	if !strings.Contains(colored, "\x1b[") {
		t.Errorf("colored = %q, want ANSI escape", colored)
	}
}
