package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	sitekit "github.com/alnah/go-sitekit"
	"github.com/alnah/go-sitekit/internal/fileutil"
	"github.com/alnah/go-sitekit/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo  `json:"chrome"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Project  projectInfo `json:"project"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// projectInfo describes the site the build would read.
type projectInfo struct {
	Config string `json:"config,omitempty"`
	Root   string `json:"root,omitempty"`
	Data   string `json:"data,omitempty"`
	Cards  int    `json:"cards"`
	Page   string `json:"page,omitempty"`
	Stamp  string `json:"stamp,omitempty"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	flags, _, err := parseDoctorFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	result := runDoctor(flags, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(flags *doctorFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkEnvironment(result)
	checkSystem(result)
	checkProject(result, flags, env)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN (--html-only still works)")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	cmd := exec.Command(chromePath, "--version") // #nosec G204 -- path from rod lookup or ROD_BROWSER_BIN
	out, err := cmd.Output()
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()
	result.Env.CI = hints.InCI() || os.Getenv("CIRCLECI") != ""

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("SITEKIT_CONTAINER") == "1" {
		return true, "SITEKIT_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory the renderer writes HTML to.
func checkSystem(result *doctorResult) {
	_, cleanup, err := fileutil.WriteTempFile("doctor", "html")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
		return
	}
	cleanup()
	result.System.TempWritable = true
}

// checkProject loads the config and verifies the sampler inputs exist.
func checkProject(result *doctorResult, flags *doctorFlags, env *Environment) {
	cfg, path, err := resolveConfig(flags.config, env)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	if flags.root != "" {
		cfg.Root = flags.root
	}
	anchorRoot(cfg, env)

	p := &result.Project
	p.Config = path
	p.Root = cfg.Root
	p.Data = cfg.Sampler.Data
	p.Page = cfg.Sampler.Page

	if !fileutil.DirExists(cfg.Root) {
		result.Errors = append(result.Errors, fmt.Sprintf("Site root not found: %s", cfg.Root))
		return
	}

	cards, err := sitekit.LoadCards(cfg.Path(cfg.Sampler.Data))
	switch {
	case err != nil:
		result.Errors = append(result.Errors, err.Error())
	case len(cards) < cfg.Sampler.MinCards:
		p.Cards = len(cards)
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Only %d cards in %s; lint expects at least %d", len(cards), cfg.Sampler.Data, cfg.Sampler.MinCards))
	default:
		p.Cards = len(cards)
	}

	stamp, err := sitekit.ReadUpdatedStamp(cfg.Path(cfg.Sampler.Page), cfg.Cover.StampFormat)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Sampler page not found: %s (cover stamp will be omitted)", cfg.Sampler.Page))
		return
	}
	p.Stamp = stamp
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(env *Environment, r *doctorResult) {
	w := env.Stdout
	ok := statusColor(env, color.FgGreen).Sprint("[OK]")
	bad := statusColor(env, color.FgRed).Sprint("[ERROR]")
	warn := statusColor(env, color.FgYellow).Sprint("[WARN]")

	fmt.Fprintln(w, "sitekit doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  %s Found at %s\n", ok, r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  %s Version: %s\n", ok, r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintf(w, "  %s Sandbox: enabled\n", ok)
		} else {
			fmt.Fprintf(w, "  %s Sandbox: disabled (ROD_NO_SANDBOX=1)\n", ok)
		}
	} else {
		fmt.Fprintf(w, "  %s Not found\n", bad)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  %s Platform: %s/%s\n", ok, r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  %s Container: detected (%s)\n", ok, r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintf(w, "  %s CI: detected\n", ok)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  %s Temp directory: writable\n", ok)
	} else {
		fmt.Fprintf(w, "  %s Temp directory: not writable\n", bad)
	}
	fmt.Fprintln(w)

	printProject(w, r.Project, ok)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", warn, msg)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, msg := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", bad, msg)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to build")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printProject(w io.Writer, p projectInfo, ok string) {
	if p.Root == "" {
		return
	}
	fmt.Fprintln(w, "Project")
	if p.Config != "" {
		fmt.Fprintf(w, "  %s Config: %s\n", ok, p.Config)
	} else {
		fmt.Fprintf(w, "  %s Config: defaults\n", ok)
	}
	fmt.Fprintf(w, "  %s Root: %s\n", ok, p.Root)
	if p.Cards > 0 {
		fmt.Fprintf(w, "  %s Data: %s (%d cards)\n", ok, p.Data, p.Cards)
	}
	if p.Stamp != "" {
		fmt.Fprintf(w, "  %s Page: %s (updated %s)\n", ok, p.Page, p.Stamp)
	}
	fmt.Fprintln(w)
}
