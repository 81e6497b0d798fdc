// Dupecheck
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Dupecheck.
//
// Dupecheck is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dupecheck is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dupecheck.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/dupecheck/pkg/validation"
	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	SchemaVersion = 1
	CfgEnv        = "DUPECHECK_CFG"
)

var ErrSchemaMismatch = errors.New("schema version mismatch")

type Values struct {
	Input          Input          `toml:"input"`
	Output         Output         `toml:"output"`
	ErrorReporting ErrorReporting `toml:"error_reporting"`
	Columns        Columns        `toml:"columns"`
	Matching       Matching       `toml:"matching"`
	ConfigSchema   int            `toml:"config_schema"`
	DebugLogging   bool           `toml:"debug_logging"`
}

type Input struct {
	Dir       string `toml:"dir" validate:"required"`
	Extension string `toml:"extension" validate:"extension"`
}

type Output struct {
	File   string `toml:"file" validate:"required"`
	Report string `toml:"report,omitempty"`
}

// Columns holds zero-based column positions in the input files.
type Columns struct {
	ID     int `toml:"id" validate:"min=0"`
	Text   int `toml:"text" validate:"min=0"`
	Status int `toml:"status" validate:"min=0"`
	Group  int `toml:"group" validate:"min=0"`
}

type Matching struct {
	Threshold  int  `toml:"threshold" validate:"min=0,max=100"`
	ForceASCII     bool `toml:"force_ascii"`
	FoldDiacritics bool `toml:"fold_diacritics"`
}

type ErrorReporting struct {
	DSN     string `toml:"dsn,omitempty" validate:"required_if=Enabled true"`
	Enabled bool   `toml:"enabled"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Input: Input{
		Dir:       ".",
		Extension: ".csv",
	},
	Output: Output{
		File: "finaldata.csv",
	},
	Columns: Columns{
		ID:     0,
		Text:   7,
		Status: 13,
		Group:  14,
	},
	Matching: Matching{
		Threshold:  70,
		ForceASCII: true,
	},
}

var validate = newValidator()

func newValidator() *validation.Validator {
	v := validation.NewValidator()
	v.RegisterStructValidation(validateColumns, Columns{})
	return v
}

// validateColumns rejects layouts where two roles share a column.
func validateColumns(sl validator.StructLevel) {
	cols, ok := sl.Current().Interface().(Columns)
	if !ok {
		return
	}
	roles := []struct {
		name  string
		field string
		index int
	}{
		{name: "id", field: "ID", index: cols.ID},
		{name: "text", field: "Text", index: cols.Text},
		{name: "status", field: "Status", index: cols.Status},
		{name: "group", field: "Group", index: cols.Group},
	}
	for i := 1; i < len(roles); i++ {
		for j := 0; j < i; j++ {
			if roles[i].index == roles[j].index {
				sl.ReportError(roles[i].index, roles[i].name, roles[i].field, "distinct", roles[j].name)
				break
			}
		}
	}
}

type Instance struct {
	fs       afero.Fs
	cfgPath  string
	vals     Values
	defaults Values
}

// NewConfig resolves the config file path and loads it on top of defaults.
// The path is cfgPath if set, else $DUPECHECK_CFG, else CfgFile inside the
// default input directory. A missing file is only an error when the path
// was given explicitly.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(fs afero.Fs, cfgPath string, defaults Values) (*Instance, error) {
	explicit := true
	if cfgPath == "" {
		cfgPath = os.Getenv(CfgEnv)
		log.Debug().Msgf("env config path: %s", cfgPath)
	}
	if cfgPath == "" {
		explicit = false
		cfgPath = filepath.Join(defaults.Input.Dir, CfgFile)
	}

	cfg := Instance{
		fs:       fs,
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	exists, err := afero.Exists(fs, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	switch {
	case exists:
		if err := cfg.Load(); err != nil {
			return nil, err
		}
	case explicit:
		return nil, fmt.Errorf("config file not found: %s", cfgPath)
	default:
		log.Debug().Str("path", cfgPath).Msg("no config file, using defaults")
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	// This ensures fields not present in the file retain their default values.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return ErrSchemaMismatch
	}

	if err := validate.Validate(&newVals); err != nil {
		return fmt.Errorf("invalid config %s: %w", c.cfgPath, err)
	}

	c.vals = newVals
	log.Info().Str("path", c.cfgPath).Msg("loaded config")
	return nil
}

// Validate checks the current values, including any overrides applied
// after loading.
func (c *Instance) Validate() error {
	if err := validate.Validate(&c.vals); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Instance) Path() string {
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.vals.DebugLogging = enabled
}

func (c *Instance) InputDir() string {
	return c.vals.Input.Dir
}

func (c *Instance) SetInputDir(dir string) {
	c.vals.Input.Dir = dir
}

func (c *Instance) InputExtension() string {
	return c.vals.Input.Extension
}

// OutputPath returns the combined output file, resolved against the input
// directory when relative.
func (c *Instance) OutputPath() string {
	return c.resolve(c.vals.Output.File)
}

func (c *Instance) SetOutputFile(path string) {
	c.vals.Output.File = path
}

// ReportPath returns the group report file, resolved like OutputPath, or
// an empty string when the report is disabled.
func (c *Instance) ReportPath() string {
	if c.vals.Output.Report == "" {
		return ""
	}
	return c.resolve(c.vals.Output.Report)
}

func (c *Instance) SetReportFile(path string) {
	c.vals.Output.Report = path
}

func (c *Instance) Columns() Columns {
	return c.vals.Columns
}

func (c *Instance) Threshold() int {
	return c.vals.Matching.Threshold
}

func (c *Instance) SetThreshold(threshold int) {
	c.vals.Matching.Threshold = threshold
}

func (c *Instance) ForceASCII() bool {
	return c.vals.Matching.ForceASCII
}

func (c *Instance) FoldDiacritics() bool {
	return c.vals.Matching.FoldDiacritics
}

func (c *Instance) ErrorReporting() bool {
	return c.vals.ErrorReporting.Enabled
}

func (c *Instance) ErrorReportingDSN() string {
	return c.vals.ErrorReporting.DSN
}

func (c *Instance) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.vals.Input.Dir, path)
}
