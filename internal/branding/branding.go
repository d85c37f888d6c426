// Package branding provides compile-time identity values for the extension.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Meltano addresses the extension by CLIName, so a
// rename here must be mirrored in the plugin definition.
package branding

import (
	_ "embed"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	InvokerName   string `yaml:"invoker_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeEnv       string `yaml:"home_env"`
	TemplateRepo  string `yaml:"template_repo"`
	MinNPMVersion string `yaml:"min_npm_version"`
	GoModule      string `yaml:"go_module"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:       "evidence_extension",
			InvokerName:   "evidence_invoker",
			DisplayName:   "Evidence",
			Description:   "Meltano extension for Evidence static sites",
			HomeEnv:       "EVIDENCE_HOME",
			TemplateRepo:  "evidence-dev/template",
			MinNPMVersion: "7.0.0",
			GoModule:      "github.com/meltanolabs/evidence-ext",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the extension command name (e.g., "evidence_extension").
func CLIName() string { load(); return defaults.CLIName }

// InvokerName returns the pass-through invoker command name.
func InvokerName() string { load(); return defaults.InvokerName }

// DisplayName returns the human-readable product name (e.g., "Evidence").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeEnv returns the primary environment variable holding the project directory.
func HomeEnv() string { load(); return defaults.HomeEnv }

// TemplateRepo returns the degit source used to scaffold new projects.
func TemplateRepo() string { load(); return defaults.TemplateRepo }

// MinNPMVersion returns the lowest npm release the doctor command accepts.
func MinNPMVersion() string { load(); return defaults.MinNPMVersion }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// EnvVar returns a setting name scoped to the extension, the way Meltano
// exposes plugin settings: EnvVar("EVIDENCE_HOME") → "evidence_extension_EVIDENCE_HOME".
func EnvVar(name string) string {
	load()
	return defaults.CLIName + "_" + name
}
