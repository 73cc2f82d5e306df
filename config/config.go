// Package config loads user-defined scenario suites from YAML or JSON
// files and translates them into runnable harness suites.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c0deZ3R0/go-conflict-kit/conflictkit"
	kiterrors "github.com/c0deZ3R0/go-conflict-kit/errors"
	"github.com/c0deZ3R0/go-conflict-kit/harness"
)

// File is the root of a scenario configuration file.
type File struct {
	Version string        `json:"version,omitempty" yaml:"version,omitempty"`
	Name    string        `json:"name,omitempty" yaml:"name,omitempty"`
	Suites  []SuiteConfig `json:"suites" yaml:"suites"`
}

// SuiteConfig binds a named strategy to a table of cases.
type SuiteConfig struct {
	Name     string       `json:"name" yaml:"name"`
	Strategy string       `json:"strategy" yaml:"strategy"`
	Cases    []CaseConfig `json:"cases" yaml:"cases"`
}

// CaseConfig is one fixture. The expected record and its resolution tag
// are listed side by side, mirroring how fixtures read in the harness.
type CaseConfig struct {
	Name       string                 `json:"name" yaml:"name"`
	Local      conflictkit.Record     `json:"local" yaml:"local"`
	Remote     conflictkit.Record     `json:"remote" yaml:"remote"`
	Expected   conflictkit.Record     `json:"expected" yaml:"expected"`
	Resolution conflictkit.Resolution `json:"resolution" yaml:"resolution"`
}

// StrategyByName maps a config strategy name to its implementation.
func StrategyByName(name string) (conflictkit.Strategy, error) {
	switch name {
	case "last-write-wins", "lww":
		return conflictkit.LastWriteWins{}, nil
	case "version-based":
		return conflictkit.VersionBased{}, nil
	case "field-merge":
		return conflictkit.FieldMerge{}, nil
	case "semantic-merge":
		return conflictkit.SemanticMerge{}, nil
	case "delete-update":
		return conflictkit.DeleteUpdate{}, nil
	case "router":
		return conflictkit.DefaultRouter(), nil
	}
	return nil, fmt.Errorf("unknown strategy %q", name)
}

// Load reads and validates a scenario file. The format is chosen by
// extension: .json is parsed as JSON, everything else as YAML.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kiterrors.NewConfigError(kiterrors.OpLoadConfig, err)
	}

	var f File
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, kiterrors.NewConfigError(kiterrors.OpLoadConfig,
			fmt.Errorf("parsing %s: %w", path, err))
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks structural rules: every suite needs a name, a known
// strategy and at least one case; case names must be unique within a
// suite; resolution tags must be valid.
func (f *File) Validate() error {
	if len(f.Suites) == 0 {
		return validationErr("file defines no suites")
	}
	for _, s := range f.Suites {
		if s.Name == "" {
			return validationErr("suite missing name")
		}
		if _, err := StrategyByName(s.Strategy); err != nil {
			return validationErr(fmt.Sprintf("suite %q: %v", s.Name, err))
		}
		if len(s.Cases) == 0 {
			return validationErr(fmt.Sprintf("suite %q has no cases", s.Name))
		}
		seen := make(map[string]struct{}, len(s.Cases))
		for _, c := range s.Cases {
			if c.Name == "" {
				return validationErr(fmt.Sprintf("suite %q: case missing name", s.Name))
			}
			if _, dup := seen[c.Name]; dup {
				return validationErr(fmt.Sprintf("suite %q: duplicate case %q", s.Name, c.Name))
			}
			seen[c.Name] = struct{}{}
			if !c.Resolution.Valid() {
				return validationErr(fmt.Sprintf("suite %q case %q: invalid resolution %q", s.Name, c.Name, c.Resolution))
			}
		}
	}
	return nil
}

// BuildSuites translates the validated config into harness suites.
func (f *File) BuildSuites(opts ...harness.TesterOption) ([]*harness.Tester, error) {
	suites := make([]*harness.Tester, 0, len(f.Suites))
	for _, sc := range f.Suites {
		strategy, err := StrategyByName(sc.Strategy)
		if err != nil {
			return nil, kiterrors.NewConfigError(kiterrors.OpBuildSuite, err)
		}
		t := harness.New(sc.Name, strategy, opts...)
		for _, c := range sc.Cases {
			t.Add(c.Name, c.Local, c.Remote, conflictkit.Resolved{
				Record:     c.Expected,
				Resolution: c.Resolution,
			})
		}
		suites = append(suites, t)
	}
	return suites, nil
}

func validationErr(msg string) error {
	return kiterrors.NewValidationError(kiterrors.OpLoadConfig, fmt.Errorf("%s", msg))
}
