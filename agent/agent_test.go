package agent

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// fakeReporter reports on a small dataset and records the settings it got.
type fakeReporter struct {
	settings map[string]string
}

func (f *fakeReporter) report(settings map[string]string) (*networth.Report, error) {
	f.settings = settings
	columns := []networth.Column{{ID: "s", Name: "Stocks", Category: networth.Equity}}
	records := []networth.Record{
		networth.NewRecord(date.New(2024, 1, 31)).Set("s", decimal.NewFromInt(1000)),
		networth.NewRecord(date.New(2024, 2, 29)).Set("s", decimal.NewFromInt(1100)),
	}
	cfg := networth.DefaultConfig()
	for name, v := range settings {
		var err error
		if cfg, err = cfg.Set(name, v); err != nil {
			return nil, err
		}
	}
	return networth.NewReport(columns, records, cfg, date.New(2024, 3, 1)), nil
}

func TestAnalystTools(t *testing.T) {
	tests := []struct {
		tool         string
		args         map[string]any
		wantSettings map[string]string
		wantOutput   string
	}{
		{"Summary", map[string]any{}, map[string]string{}, "Net Worth"},
		{"Summary", map[string]any{"year": 2024.0}, map[string]string{"year": "2024"}, "2024"},
		{"History", map[string]any{"period": "quarterly"}, map[string]string{"period": "quarterly"}, "Q1 '24"},
		{"Projection", map[string]any{"growth": 5.5}, map[string]string{"growth": "5.5"}, "5.50%"},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			f := &fakeReporter{}
			analyst := NewAnalyst(f.report)
			resp := analyst.Tools.Call(context.Background(), &genai.FunctionCall{ID: "1", Name: tt.tool, Args: tt.args})
			if resp.ID != "1" || resp.Name != tt.tool {
				t.Errorf("response = %s/%s, want 1/%s", resp.ID, resp.Name, tt.tool)
			}
			if e, ok := resp.Response["error"]; ok {
				t.Fatalf("%s(%v) error: %v", tt.tool, tt.args, e)
			}
			output, _ := resp.Response["output"].(string)
			if !strings.Contains(output, tt.wantOutput) {
				t.Errorf("%s(%v) output does not contain %q:\n%s", tt.tool, tt.args, tt.wantOutput, output)
			}
			if len(f.settings) != len(tt.wantSettings) {
				t.Errorf("settings = %v, want %v", f.settings, tt.wantSettings)
			}
			for k, v := range tt.wantSettings {
				if f.settings[k] != v {
					t.Errorf("settings[%s] = %q, want %q", k, f.settings[k], v)
				}
			}
		})
	}
}

func TestToolbox_Errors(t *testing.T) {
	failing := func(map[string]string) (*networth.Report, error) { return nil, errors.New("no dataset") }
	analyst := NewAnalyst(failing)
	ctx := context.Background()

	tests := []struct {
		name string
		call *genai.FunctionCall
		want string
	}{
		{"unknown", &genai.FunctionCall{Name: "Trade"}, "unknown function Trade"},
		{"reporter", &genai.FunctionCall{Name: "Summary"}, "no dataset"},
		{"bad argument", &genai.FunctionCall{Name: "History", Args: map[string]any{"period": []any{"monthly"}}}, "not a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := analyst.Tools.Call(ctx, tt.call)
			got, _ := resp.Response["error"].(string)
			if !strings.Contains(got, tt.want) {
				t.Errorf("error = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestToolbox_Declarations(t *testing.T) {
	analyst := NewAnalyst((&fakeReporter{}).report)
	var names []string
	for _, d := range analyst.Tools.Declarations() {
		names = append(names, d.Name)
	}
	if got, want := strings.Join(names, ","), "Explain,History,Projection,Summary"; got != want {
		t.Errorf("Declarations() = %s, want %s", got, want)
	}

	a := New(&bytes.Buffer{}, strings.NewReader(""), analyst)
	decls := a.Facilitator.Config.Tools[0].FunctionDeclarations
	if len(decls) != 1 || decls[0].Name != "Analyst" {
		t.Errorf("Facilitator tools = %v, want the Analyst", decls)
	}
}

func TestExplain(t *testing.T) {
	analyst := NewAnalyst((&fakeReporter{}).report)
	resp := analyst.Tools.Call(context.Background(), &genai.FunctionCall{Name: "Explain", Args: map[string]any{"topic": "projection"}})
	if out, _ := resp.Response["output"].(string); !strings.Contains(out, "crossover") {
		t.Errorf("Explain(projection) = %v, want the projection documentation", resp.Response)
	}
}

func TestAgent_Next(t *testing.T) {
	var out bytes.Buffer
	a := New(&out, strings.NewReader("how much?\nbye"))
	prompts := []string{"  hello  "}

	for _, want := range []string{"hello", "how much?", "bye"} {
		got, err := a.next(&prompts)
		if err != nil {
			t.Fatalf("next() unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("next() = %q, want %q", got, want)
		}
	}
	if _, err := a.next(&prompts); err == nil {
		t.Errorf("next() at the end of the input expected an error")
	}
	if got := strings.Count(out.String(), prompt); got != 4 {
		t.Errorf("prompt printed %d times, want 4", got)
	}
}

func TestExpert_AskNotStarted(t *testing.T) {
	e := NewAnalyst((&fakeReporter{}).report)
	if _, err := e.Ask(context.Background(), &genai.Part{Text: "hi"}); err == nil {
		t.Errorf("Ask() on a stopped expert expected an error")
	}
	if _, err := e.Call(context.Background(), map[string]any{}); err == nil {
		t.Errorf("Call() without a question expected an error")
	}
}
