// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/obsfix/obsfix/rewrite"
)

// SARIF 2.1.0 constants.
const (
	SchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version   = "2.1.0"
	ToolName  = "obsfix"
	HelpURI   = "https://pkg.go.dev/github.com/obsfix/obsfix/obsolete"
)

// Report is a SARIF log with a single run.
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

type Run struct {
	Tool              Tool              `json:"tool"`
	AutomationDetails AutomationDetails `json:"automationDetails"`
	Results           []Result          `json:"results"`
}

type Tool struct {
	Driver Driver `json:"driver"`
}

type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Rules   []Rule `json:"rules"`
}

// AutomationDetails identifies the run.
type AutomationDetails struct {
	GUID string `json:"guid"`
}

type Rule struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	ShortDescription Message `json:"shortDescription"`
	HelpURI          string  `json:"helpUri,omitempty"`
}

type Result struct {
	RuleID     string     `json:"ruleId"`
	Level      string     `json:"level"`
	Message    Message    `json:"message"`
	Locations  []Location `json:"locations"`
	Properties Properties `json:"properties"`
}

// Properties carry the diagnostic's rewrite properties.
type Properties struct {
	Replacement string `json:"replacement"`
	Kind        string `json:"kind"`
	TypeLevel   bool   `json:"typeLevel"`
	Fixable     bool   `json:"fixable"`
}

type Message struct {
	Text string `json:"text"`
}

type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

type ArtifactLocation struct {
	URI string `json:"uri"`
}

type Region struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

// NewSARIF returns an empty report for the given tool version,
// declaring the obsolete rule.
func NewSARIF(version string) *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{{
			Tool: Tool{Driver: Driver{
				Name:    ToolName,
				Version: version,
				Rules: []Rule{{
					ID:               rewrite.Rule,
					Name:             "ObsoleteSymbol",
					ShortDescription: Message{"use of a deprecated symbol that names its replacement"},
					HelpURI:          HelpURI,
				}},
			}},
			AutomationDetails: AutomationDetails{GUID: uuid.NewString()},
			Results:           []Result{},
		}},
	}
}

// AddResult adds f to the report.
func (r *Report) AddResult(f *Finding) {
	r.Runs[0].Results = append(r.Runs[0].Results, Result{
		RuleID:  f.Rule,
		Level:   "warning",
		Message: Message{f.Message},
		Locations: []Location{{
			PhysicalLocation: PhysicalLocation{
				ArtifactLocation: ArtifactLocation{URI: fileURI(f.File)},
				Region: Region{
					StartLine:   f.Line,
					StartColumn: f.Col,
					EndLine:     f.EndLine,
					EndColumn:   f.EndCol,
				},
			},
		}},
		Properties: Properties{
			Replacement: f.Replacement,
			Kind:        f.Kind,
			TypeLevel:   f.TypeLevel,
			Fixable:     f.Fixable,
		},
	})
}

func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// fileURI returns the SARIF URI of a file: file:// for absolute paths,
// the slash-separated path otherwise.
func fileURI(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}
