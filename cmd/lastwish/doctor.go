package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/ArtieFishal/lastwish"
	"github.com/ArtieFishal/lastwish/internal/config"
	"github.com/ArtieFishal/lastwish/internal/imagefetch"
)

// gatewayProbeTimeout bounds each gateway reachability check.
const gatewayProbeTimeout = 5 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"` // "ready", "warnings", "errors"
	Config    configInfo    `json:"config"`
	Templates templateInfo  `json:"templates"`
	Gateways  []gatewayInfo `json:"gateways,omitempty"`
	Env       envInfo       `json:"environment"`
	System    systemInfo    `json:"system"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// configInfo holds configuration loading results.
type configInfo struct {
	Source string `json:"source"` // "defaults" or the config name
	Valid  bool   `json:"valid"`
}

// templateInfo holds legal text loading results.
type templateInfo struct {
	Source string `json:"source"` // "embedded" or the override directory
	Loaded bool   `json:"loaded"`
}

// gatewayInfo holds one gateway probe result.
type gatewayInfo struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Checked   bool   `json:"checked"`
	Reachable bool   `json:"reachable"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config  string
	json    bool
	offline bool
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &doctorFlags{}
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "output in JSON format")
	fs.BoolVar(&f.offline, "offline", false, "skip gateway reachability checks")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	result := runDoctor(ctx, f, http.DefaultClient)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, f *doctorFlags, client *http.Client) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	cfg := checkConfig(result, f.config)
	checkTemplates(result, cfg)
	checkGateways(ctx, result, cfg, client, f.offline)
	checkEnvironment(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig resolves the effective configuration the way generate does.
// It returns the defaults when the configuration is unusable so the
// remaining checks still run.
func checkConfig(result *doctorResult, name string) *config.Config {
	result.Config.Source = "defaults"
	if name != "" {
		result.Config.Source = name
	} else if env := loadEnvConfig(); env.ConfigPath != "" {
		result.Config.Source = env.ConfigPath
	}

	cfg, err := resolveConfig(commonFlags{config: name}, documentFlags{}, imageFlags{})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return config.DefaultConfig()
	}
	result.Config.Valid = true
	return cfg
}

// checkTemplates loads the legal texts, including any override directory.
func checkTemplates(result *doctorResult, cfg *config.Config) {
	result.Templates.Source = "embedded"
	opts := []lastwish.Option{
		lastwish.WithImagesDisabled(),
		lastwish.WithDateFormat(cfg.Document.DateFormat),
	}
	if cfg.Assets.BasePath != "" {
		result.Templates.Source = cfg.Assets.BasePath
		opts = append(opts, lastwish.WithAssetPath(cfg.Assets.BasePath))
	}

	if _, err := lastwish.NewGenerator(opts...); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Legal texts: %v", err))
		return
	}
	result.Templates.Loaded = true
}

// checkGateways probes the IPFS and Arweave gateways. Unreachable gateways
// are warnings: artwork degrades to placeholders.
func checkGateways(ctx context.Context, result *doctorResult, cfg *config.Config, client *http.Client, offline bool) {
	if !cfg.Images.Enabled {
		return
	}

	gateways := []gatewayInfo{
		{Name: "ipfs", URL: orDefault(cfg.Images.IPFSGateway, imagefetch.DefaultIPFSGateway)},
		{Name: "arweave", URL: orDefault(cfg.Images.ArweaveGateway, imagefetch.DefaultArweaveGateway)},
	}
	for i := range gateways {
		if offline {
			continue
		}
		gateways[i].Checked = true
		if err := probe(ctx, client, gateways[i].URL); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s gateway %s unreachable: %v", gateways[i].Name, gateways[i].URL, err))
			continue
		}
		gateways[i].Reachable = true
	}
	result.Gateways = gateways
}

// probe issues a HEAD request. Any response below 500 counts as reachable.
func probe(ctx context.Context, client *http.Client, target string) error {
	ctx, cancel := context.WithTimeout(ctx, gatewayProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	// Explicit override (highest priority)
	if os.Getenv("LASTWISH_CONTAINER") == "1" {
		return true, "LASTWISH_CONTAINER=1"
	}
	// Docker
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for atomic writes.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	f, err := os.CreateTemp(tmpDir, "lastwish-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(filepath.Clean(name))
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "lastwish doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration")
	if r.Config.Valid {
		fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
	} else {
		fmt.Fprintf(w, "  [ERROR] Source: %s\n", r.Config.Source)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Legal texts")
	if r.Templates.Loaded {
		fmt.Fprintf(w, "  [OK] Loaded from %s\n", r.Templates.Source)
	} else {
		fmt.Fprintf(w, "  [ERROR] Could not load from %s\n", r.Templates.Source)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Image gateways")
	if len(r.Gateways) == 0 {
		fmt.Fprintln(w, "  [OK] Images disabled")
	}
	for _, g := range r.Gateways {
		switch {
		case !g.Checked:
			fmt.Fprintf(w, "  [SKIP] %s: %s\n", g.Name, g.URL)
		case g.Reachable:
			fmt.Fprintf(w, "  [OK] %s: %s\n", g.Name, g.URL)
		default:
			fmt.Fprintf(w, "  [WARN] %s: %s unreachable\n", g.Name, g.URL)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to generate")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
