// =============================================================================
// BigFix Export Cleanup - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration. The
// configuration is optional: when no config.yaml exists, the built-in
// defaults reproduce the folder layout and filenames the export workflow has
// always used ("Data export", "Data export_processed", 020/021/023 files).
//
// CONFIGURATION SOURCES (later sources win):
//   1. Built-in defaults
//   2. config.yaml (or the file given with --config)
//   3. A .env file in the working directory, if present
//   4. Process environment variables (CLEANUP_RAW_DIR, CLEANUP_PROCESSED_DIR)
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// ENVIRONMENT VARIABLES
// =============================================================================

// Environment variable names recognized as overrides. These exist so the
// scheduled runs on the reporting share can point the tool at a different
// export drop without editing config.yaml.
const (
	EnvRawDir       = "CLEANUP_RAW_DIR"
	EnvProcessedDir = "CLEANUP_PROCESSED_DIR"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the global application configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// RawDir is the directory where the raw BigFix/ILMT exports are dropped.
	// Default: "Data export"
	RawDir string `yaml:"raw_dir"`

	// ProcessedDir is the working directory for cleaned files. The pipeline
	// writes here and the tag/dedupe commands read from here.
	// Default: "Data export_processed"
	ProcessedDir string `yaml:"processed_dir"`

	// =========================================================================
	// WELL-KNOWN FILES
	// =========================================================================

	// AllFile is the name of the all-computers export (one row per known
	// computer) inside ProcessedDir. Default: "020_all.csv"
	AllFile string `yaml:"all_file"`

	// NotReportingFile is the name of the not-reporting reference export
	// inside ProcessedDir. Default: "021_notrep.csv"
	NotReportingFile string `yaml:"not_reporting_file"`

	// CMDBFile is the raw CMDB export, the default target of the
	// strip-quotes command. The CMDB tool quotes every field, so this file
	// must be de-quoted before the comma-to-tab conversion touches it.
	// Default: "Data export/023_CMDB_active.txt"
	CMDBFile string `yaml:"cmdb_file"`

	// =========================================================================
	// PIPELINE SETTINGS
	// =========================================================================

	// StepDelaySeconds is the pause between pipeline steps. One step's
	// writes must be visible on the share before the next step scans the
	// folder. Default: 2
	StepDelaySeconds int `yaml:"step_delay_seconds"`

	// =========================================================================
	// TAG CHAIN
	// =========================================================================

	// TagRules is the ordered status-tag chain applied by 'cleanup tag'.
	// When empty, the built-in chain (reporting status, CMDB status, and
	// the scan/VM-manager flags) is used.
	TagRules []TagRule `yaml:"tag_rules"`
}

// =============================================================================
// TAG RULE STRUCTURE
// =============================================================================

// TagRule describes one status column to maintain in the all-computers file.
type TagRule struct {
	// Column is the header of the status column this rule maintains.
	Column string `yaml:"column"`

	// ReferenceFile is the export listing the computers the rule flags.
	// Relative paths are resolved against ProcessedDir.
	ReferenceFile string `yaml:"reference_file"`

	// Anchors are candidate columns to insert after, tried in order. The
	// status column is placed immediately after the first anchor found in
	// the header.
	Anchors []string `yaml:"anchors"`

	// PresentLabel is written when the row's Computer Name appears in the
	// reference file; AbsentLabel otherwise.
	PresentLabel string `yaml:"present_label"`
	AbsentLabel  string `yaml:"absent_label"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file at path and applies defaults and
// environment overrides. A missing file is not an error; a present but
// unreadable or malformed file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Fall through to defaults.
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration matching the original export workflow.
func Default() *Config {
	return &Config{
		RawDir:           "Data export",
		ProcessedDir:     "Data export_processed",
		AllFile:          "020_all.csv",
		NotReportingFile: "021_notrep.csv",
		CMDBFile:         "Data export/023_CMDB_active.txt",
		StepDelaySeconds: 2,
	}
}

// applyDefaults fills in any fields left empty by the configuration file.
func (c *Config) applyDefaults() {
	def := Default()

	if c.RawDir == "" {
		c.RawDir = def.RawDir
	}
	if c.ProcessedDir == "" {
		c.ProcessedDir = def.ProcessedDir
	}
	if c.AllFile == "" {
		c.AllFile = def.AllFile
	}
	if c.NotReportingFile == "" {
		c.NotReportingFile = def.NotReportingFile
	}
	if c.CMDBFile == "" {
		c.CMDBFile = def.CMDBFile
	}
	if c.StepDelaySeconds < 0 {
		c.StepDelaySeconds = def.StepDelaySeconds
	}
	if len(c.TagRules) == 0 {
		c.TagRules = DefaultTagRules()
	}
}

// applyEnvOverrides loads a .env file if one exists and applies the
// CLEANUP_* environment variables on top of the file configuration.
func (c *Config) applyEnvOverrides() {
	// Ignore the error: a missing .env file is the normal case.
	_ = godotenv.Load()

	if v := os.Getenv(EnvRawDir); v != "" {
		c.RawDir = v
	}
	if v := os.Getenv(EnvProcessedDir); v != "" {
		c.ProcessedDir = v
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.RawDir == c.ProcessedDir {
		return fmt.Errorf("raw_dir and processed_dir must differ (both are %q)", c.RawDir)
	}
	for i, rule := range c.TagRules {
		if rule.Column == "" {
			return fmt.Errorf("tag_rules[%d]: column is required", i)
		}
		if rule.ReferenceFile == "" {
			return fmt.Errorf("tag_rules[%d] (%s): reference_file is required", i, rule.Column)
		}
		if len(rule.Anchors) == 0 {
			return fmt.Errorf("tag_rules[%d] (%s): at least one anchor column is required", i, rule.Column)
		}
		if rule.PresentLabel == "" || rule.AbsentLabel == "" {
			return fmt.Errorf("tag_rules[%d] (%s): present_label and absent_label are required", i, rule.Column)
		}
	}
	return nil
}

// StepDelay returns the inter-step pause as a duration.
func (c *Config) StepDelay() time.Duration {
	return time.Duration(c.StepDelaySeconds) * time.Second
}

// =============================================================================
// DEFAULT TAG CHAIN
// =============================================================================

// ComputerNameColumn is the join key shared by every export file.
const ComputerNameColumn = "Computer Name"

// DefaultTagRules returns the built-in status-tag chain. The order matters:
// each rule anchors after the column maintained by the previous rule, with
// the earlier columns as fallbacks, so the status columns always end up in a
// stable left-to-right order right after Computer Name.
func DefaultTagRules() []TagRule {
	names := []string{
		"Not reporting to BigFix",
		"CMDB Status",
		"Delayed Data Upload",
		"Failed Scan",
		"Missing Scan",
		"Scan Not Uploaded",
		"No Scan Data",
		"No VM Manager Data",
		"Outdated VM Manager Data",
		"Outdated Scan",
	}
	refs := []string{
		"021_notrep.csv",
		"023_CMDB_active.csv",
		"001_Delayed Data Upload.csv",
		"005_Failed Scan.csv",
		"006_Missing Scan.csv",
		"007_Scan Not Uploaded.csv",
		"008_No Scan Data.csv",
		"011_No VM Manager Data.csv",
		"012_Outdated VM Manager Data.csv",
		"013_Outdated Scan.csv",
	}

	rules := make([]TagRule, len(names))
	for i := range names {
		// Anchor candidates: the previous status columns, nearest first,
		// then Computer Name as the final fallback.
		anchors := make([]string, 0, i+1)
		for j := i - 1; j >= 0; j-- {
			anchors = append(anchors, names[j])
		}
		anchors = append(anchors, ComputerNameColumn)

		rule := TagRule{
			Column:        names[i],
			ReferenceFile: refs[i],
			Anchors:       anchors,
			PresentLabel:  "YES",
			AbsentLabel:   "NO",
		}
		rules[i] = rule
	}

	// The first two columns predate the YES/NO convention and keep their
	// original wording.
	rules[0].PresentLabel = "Not Reporting"
	rules[0].AbsentLabel = "Reporting"
	rules[1].PresentLabel = "In CMDB"
	rules[1].AbsentLabel = "Not in CMDB"

	return rules
}
