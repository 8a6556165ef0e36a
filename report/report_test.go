// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var findings = []Finding{
	{
		File:        "a/a.go",
		Line:        6,
		Col:         2,
		EndLine:     6,
		EndCol:      26,
		Rule:        "obsolete",
		Symbol:      "MyOldMethod",
		Owner:       "example.com/old.MyClass",
		Message:     `MyOldMethod is obsolete and should be replaced with MyNewMethod(y, x, "text2")`,
		Replacement: `MyNewMethod(y, x, "text2")`,
		Kind:        "Invocation",
		Fixable:     true,
	},
	{
		File:        "b/b.go",
		Line:        3,
		Col:         2,
		EndLine:     3,
		EndCol:      13,
		Rule:        "obsolete",
		Symbol:      "OldHelper",
		Message:     "OldHelper is obsolete and should be replaced with NewHelper",
		Replacement: "NewHelper",
		Kind:        "Invocation",
		Reason:      "call of unqualified function",
	},
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{Format: Text}
	require.NoError(t, w.Write(&buf, findings))

	want := `a/a.go:6:2: MyOldMethod is obsolete and should be replaced with MyNewMethod(y, x, "text2")
b/b.go:3:2: OldHelper is obsolete and should be replaced with NewHelper (no fix: call of unqualified function)
`
	assert.Equal(t, want, buf.String())
}

func TestTextColor(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{Format: Text, Color: true}
	require.NoError(t, w.Write(&buf, findings[:1]))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "MyOldMethod")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{Format: JSON}
	require.NoError(t, w.Write(&buf, findings))

	var got []Finding
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, findings, got)

	buf.Reset()
	require.NoError(t, w.Write(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestSARIF(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{Format: SARIF, Version: "v0.1.0"}
	require.NoError(t, w.Write(&buf, findings))

	var r Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
	assert.Equal(t, SchemaURI, r.Schema)
	assert.Equal(t, Version, r.Version)
	require.Len(t, r.Runs, 1)

	run := r.Runs[0]
	assert.Equal(t, ToolName, run.Tool.Driver.Name)
	assert.Equal(t, "v0.1.0", run.Tool.Driver.Version)
	require.Len(t, run.Tool.Driver.Rules, 1)
	assert.Equal(t, "obsolete", run.Tool.Driver.Rules[0].ID)
	_, err := uuid.Parse(run.AutomationDetails.GUID)
	assert.NoError(t, err)

	require.Len(t, run.Results, 2)
	res := run.Results[0]
	assert.Equal(t, "obsolete", res.RuleID)
	assert.Equal(t, "warning", res.Level)
	assert.Equal(t, "a/a.go", res.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, Region{StartLine: 6, StartColumn: 2, EndLine: 6, EndColumn: 26}, res.Locations[0].PhysicalLocation.Region)
	assert.Equal(t, `MyNewMethod(y, x, "text2")`, res.Properties.Replacement)
	assert.True(t, res.Properties.Fixable)
	assert.False(t, run.Results[1].Properties.Fixable)
}

func TestSARIFRunsDiffer(t *testing.T) {
	a, b := NewSARIF(""), NewSARIF("")
	assert.NotEqual(t, a.Runs[0].AutomationDetails.GUID, b.Runs[0].AutomationDetails.GUID)
}

func TestFileURI(t *testing.T) {
	assert.Equal(t, "file:///src/a.go", fileURI("/src/a.go"))
	assert.Equal(t, "a/b.go", fileURI("a/b.go"))
}

func TestFormatSet(t *testing.T) {
	var f Format
	require.NoError(t, f.Set("sarif"))
	assert.Equal(t, SARIF, f)
	assert.Error(t, f.Set("xml"))
	assert.Equal(t, SARIF, f)
}
