// =============================================================================
// config.go - Configuration
// =============================================================================
//
// This file defines the configuration for the tsn-delay-analysis tool:
//   - Command-line flag definitions (cobra / pflag)
//   - Optional configuration file (TOML, or YAML by extension)
//   - Validation and resolution into types.Settings
//
// PRECEDENCE:
//
//   1. Flags given on the command line
//   2. Values from --config
//   3. Built-in defaults (none for the four required values)
//
// CONFIG FILE EXAMPLE (rig.toml):
//
//	tx_log     = "/var/log/rig/raw-l2-send.log.zst"
//	rx_log     = "/var/log/rig/raw-l2-rcv.log.zst"
//	utc_offset = "37.0"       # leap seconds, sec.nsec or integer ns
//	cycle_time = "1000000"    # 1 ms
//	summary    = true
//
// TIMESTAMP VALUES:
//
//   utc_offset and cycle_time are strings so that both "37.0" and
//   "37000000000" are accepted, exactly as on the command line.
//
// =============================================================================

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/karthikiyer56/tsn-delay-analysis/helpers"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/interfaces"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/timespec"
	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/types"
)

// =============================================================================
// Flag Names
// =============================================================================

const (
	flagTxLog       = "tx-log"
	flagRxLog       = "rx-log"
	flagUTCOffset   = "utc-offset"
	flagCycleTime   = "cycle-time"
	flagSummary     = "summary"
	flagConfig      = "config"
	flagLogFile     = "log-file"
	flagErrorFile   = "error-file"
	flagMetricsFile = "metrics-file"
)

// =============================================================================
// Config - Main Configuration
// =============================================================================

// Config holds all configuration for the tsn-delay-analysis tool.
type Config struct {
	// =========================================================================
	// Required
	// =========================================================================

	// TxLog is the raw-l2-send output. .zst and .gz are decompressed.
	TxLog string `toml:"tx_log" yaml:"tx_log"`

	// RxLog is the raw-l2-rcv output. .zst and .gz are decompressed.
	RxLog string `toml:"rx_log" yaml:"rx_log"`

	// UTCOffset is the UTC-to-TAI offset (37 leap seconds as of 2019),
	// in nanoseconds or sec.nsec.
	UTCOffset string `toml:"utc_offset" yaml:"utc_offset"`

	// CycleTime is the gate schedule period, in nanoseconds or sec.nsec.
	CycleTime string `toml:"cycle_time" yaml:"cycle_time"`

	// =========================================================================
	// Optional
	// =========================================================================

	// Summary suppresses per-frame output.
	Summary bool `toml:"summary" yaml:"summary"`

	// LogFile receives the operator log. Empty discards it.
	LogFile string `toml:"log_file" yaml:"log_file"`

	// ErrorFile receives errors only. Empty discards them.
	ErrorFile string `toml:"error_file" yaml:"error_file"`

	// MetricsFile, if set, receives Prometheus text-format metrics.
	MetricsFile string `toml:"metrics_file" yaml:"metrics_file"`

	// =========================================================================
	// Runtime State (populated during validation, not from the file)
	// =========================================================================

	// ConfigFile is the --config path, if any.
	ConfigFile string `toml:"-" yaml:"-"`

	// Settings is the parsed form of UTCOffset, CycleTime and Summary.
	Settings types.Settings `toml:"-" yaml:"-"`
}

// =============================================================================
// Flags
// =============================================================================

// bindFlags registers every flag on fs, backed by c.
func bindFlags(fs *pflag.FlagSet, c *Config) {
	fs.StringVarP(&c.TxLog, flagTxLog, "t", "", "Output from raw-l2-send (required)")
	fs.StringVarP(&c.RxLog, flagRxLog, "r", "", "Output from raw-l2-rcv (required)")
	fs.StringVarP(&c.UTCOffset, flagUTCOffset, "u", "",
		"UTC-to-TAI offset (37 leap seconds as of 2019) in nanoseconds or sec.nsec format (required)")
	fs.StringVarP(&c.CycleTime, flagCycleTime, "c", "", "Cycle time, in nanoseconds or sec.nsec format (required)")
	fs.BoolVarP(&c.Summary, flagSummary, "s", false, "Don't print the frames, just the statistics")

	fs.StringVar(&c.ConfigFile, flagConfig, "", "TOML or YAML file with default values for the flags")
	fs.StringVar(&c.LogFile, flagLogFile, "", "Path to the operator log file")
	fs.StringVar(&c.ErrorFile, flagErrorFile, "", "Path to the error log file")
	fs.StringVar(&c.MetricsFile, flagMetricsFile, "", "Write Prometheus metrics in text format to this file")
}

// resolveConfig merges the optional config file with the flags that were set
// explicitly on the command line.
func resolveConfig(fs *pflag.FlagSet, flags *Config) (*Config, error) {
	if flags.ConfigFile == "" {
		return flags, nil
	}

	c, err := LoadConfigFile(flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	c.ConfigFile = flags.ConfigFile

	overrides := []struct {
		name string
		dst  *string
		src  string
	}{
		{flagTxLog, &c.TxLog, flags.TxLog},
		{flagRxLog, &c.RxLog, flags.RxLog},
		{flagUTCOffset, &c.UTCOffset, flags.UTCOffset},
		{flagCycleTime, &c.CycleTime, flags.CycleTime},
		{flagLogFile, &c.LogFile, flags.LogFile},
		{flagErrorFile, &c.ErrorFile, flags.ErrorFile},
		{flagMetricsFile, &c.MetricsFile, flags.MetricsFile},
	}
	for _, o := range overrides {
		if fs.Changed(o.name) {
			*o.dst = o.src
		}
	}
	if fs.Changed(flagSummary) {
		c.Summary = flags.Summary
	}
	return c, nil
}

// LoadConfigFile reads a TOML file, or a YAML file when the extension is
// .yaml or .yml.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	c := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, errors.Wrapf(err, "failed to parse YAML config %s", path)
		}
	default:
		if _, err := toml.Decode(string(data), c); err != nil {
			return nil, errors.Wrapf(err, "failed to parse TOML config %s", path)
		}
	}
	return c, nil
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks required values, parses the timestamp arguments into
// c.Settings and checks that both logs exist.
//
// An invalid timestamp keeps timespec.ErrInvalidTimestamp in its chain.
func (c *Config) Validate() error {
	required := []struct {
		value, flag string
	}{
		{c.TxLog, flagTxLog},
		{c.RxLog, flagRxLog},
		{c.UTCOffset, flagUTCOffset},
		{c.CycleTime, flagCycleTime},
	}
	for _, r := range required {
		if r.value == "" {
			return errors.Errorf("--%s is required", r.flag)
		}
	}

	offset, err := timespec.Parse(c.UTCOffset)
	if err != nil {
		return errors.Wrap(err, "--utc-offset")
	}
	cycle, err := timespec.Parse(c.CycleTime)
	if err != nil {
		return errors.Wrap(err, "--cycle-time")
	}
	if cycle <= 0 {
		return errors.Errorf("--cycle-time must be positive, got %s", c.CycleTime)
	}

	for _, p := range []string{c.TxLog, c.RxLog} {
		if !helpers.FileExists(p) {
			return errors.Errorf("log file does not exist: %s", p)
		}
	}

	c.Settings = types.Settings{
		UTCOffsetNs: offset,
		CycleTimeNs: cycle,
		SummaryOnly: c.Summary,
	}
	return nil
}

// PrintConfig logs the resolved configuration.
func (c *Config) PrintConfig(logger interfaces.Logger) {
	logger.Separator()
	logger.Info("                         CONFIGURATION")
	logger.Separator()
	logger.Info("")
	logger.Info("TX log:       %s (%s)", c.TxLog, fileSize(c.TxLog))
	logger.Info("RX log:       %s (%s)", c.RxLog, fileSize(c.RxLog))
	logger.Info("UTC offset:   %s (%s ns)", timespec.Format(c.Settings.UTCOffsetNs, false),
		helpers.FormatNumber(c.Settings.UTCOffsetNs))
	logger.Info("Cycle time:   %s (%s ns)", timespec.Format(c.Settings.CycleTimeNs, false),
		helpers.FormatNumber(c.Settings.CycleTimeNs))
	logger.Info("Summary only: %v", c.Summary)
	if c.ConfigFile != "" {
		logger.Info("Config file:  %s", c.ConfigFile)
	}
	if c.MetricsFile != "" {
		logger.Info("Metrics file: %s", c.MetricsFile)
	}
	logger.Info("")
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Sprintf("stat failed: %v", err)
	}
	return helpers.FormatBytes(info.Size())
}
