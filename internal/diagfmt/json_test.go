package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"arrowgraph/internal/diag"
	"arrowgraph/internal/observ"
	"arrowgraph/internal/source"
)

func TestJSONOutput(t *testing.T) {
	fs, bag := sampleBag(t)
	var buf bytes.Buffer
	report := observ.Report{TotalMS: 1.5, Phases: []observ.PhaseReport{{Name: "lint", DurationMS: 1.5}}}
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeRelative,
		IncludeNotes:     true,
		Timings:          &report,
	})
	if err != nil {
		t.Fatal(err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Code != "SYN1002" || first.Severity != "ERROR" || first.Location.File != "flows/test.arrow" {
		t.Fatalf("first = %+v", first)
	}
	if first.Location.StartLine != 2 || first.Location.StartCol != 7 || first.Location.EndCol != 9 {
		t.Fatalf("location = %+v", first.Location)
	}
	if len(out.Diagnostics[1].Notes) != 1 || out.Diagnostics[1].Notes[0].Location.StartLine != 1 {
		t.Fatalf("notes = %+v", out.Diagnostics[1].Notes)
	}
	if out.Timings == nil || out.Timings.TotalMS != 1.5 {
		t.Fatalf("timings = %+v", out.Timings)
	}
}

func TestJSONKeepsConnectorTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.arrow", []byte("A -> B\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynMissingConnector, source.Span{File: id, Start: 2, End: 4}, "expected --> or <-->"))

	for name, write := range map[string]func(*bytes.Buffer) error{
		"json":  func(b *bytes.Buffer) error { return JSON(b, bag, fs, JSONOpts{}) },
		"sarif": func(b *bytes.Buffer) error { return Sarif(b, bag, fs, SarifRunMeta{}) },
	} {
		var buf bytes.Buffer
		if err := write(&buf); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !strings.Contains(buf.String(), "expected --> or <-->") {
			t.Fatalf("%s: message escaped:\n%s", name, buf.String())
		}
	}
}

func TestJSONMax(t *testing.T) {
	fs, bag := sampleBag(t)
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || out.Dropped != 1 {
		t.Fatalf("count=%d dropped=%d", out.Count, out.Dropped)
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Fatal("positions must be omitted unless requested")
	}
	if out.Diagnostics[0].Notes != nil {
		t.Fatal("notes must be omitted unless requested")
	}
}

func TestSarif(t *testing.T) {
	fs, bag := sampleBag(t)
	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolVersion: "1.0.0", InvocationArgs: []string{"lint", "flows"}}); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Invocations []struct {
				ExecutionSuccessful bool `json:"executionSuccessful"`
			} `json:"invocations"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine   int `json:"startLine"`
							StartColumn int `json:"startColumn"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
				RelatedLocations []json.RawMessage `json:"relatedLocations"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid sarif: %v", err)
	}
	if doc.Version != "2.1.0" || len(doc.Runs) != 1 {
		t.Fatalf("doc = %+v", doc)
	}
	run := doc.Runs[0]
	if run.Tool.Driver.Name != "arrowgraph" || len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("driver = %+v", run.Tool.Driver)
	}
	if run.Tool.Driver.Rules[0].ID != "LNT2002" || run.Tool.Driver.Rules[1].ID != "SYN1002" {
		t.Fatalf("rules not sorted: %+v", run.Tool.Driver.Rules)
	}
	if run.Invocations[0].ExecutionSuccessful {
		t.Fatal("errors present, execution must not be successful")
	}
	res := run.Results[0]
	if res.RuleID != "SYN1002" || res.Level != "error" {
		t.Fatalf("result = %+v", res)
	}
	loc := res.Locations[0].PhysicalLocation
	if loc.ArtifactLocation.URI != "flows/test.arrow" || loc.Region.StartLine != 2 || loc.Region.StartColumn != 7 {
		t.Fatalf("location = %+v", loc)
	}
	if run.Results[1].Level != "warning" || len(run.Results[1].RelatedLocations) != 1 {
		t.Fatalf("second result = %+v", run.Results[1])
	}
}

func TestShort(t *testing.T) {
	fs, bag := sampleBag(t)
	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, false); err != nil {
		t.Fatal(err)
	}
	want := "error SYN1002 flows/test.arrow:2:7 expected connector\n" +
		"warning LNT2002 flows/test.arrow:3:1 casing differs\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
