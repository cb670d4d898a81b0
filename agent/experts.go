package agent

import (
	"context"
	"fmt"

	"github.com/etnz/networth"
	"github.com/etnz/networth/docs"
	"github.com/etnz/networth/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Reporter computes the report of the user's dataset. settings override the
// configuration by name (period, year, growth, horizon, scope, window).
type Reporter func(settings map[string]string) (*networth.Report, error)

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// newFacilitator creates the expert that talks to the user and delegates to
// the other experts.
func newFacilitator(experts ...*Expert) *Expert {
	tools := NewToolbox(experts...)
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{{FunctionDeclarations: tools.Declarations()}},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and of solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are dedicated to you and keep the context of your previous questions.

			The user wants to understand the evolution of their net worth: trends, debt,
			allocation, drawdowns and the long term compound growth.
			Devise a plan of questions for the experts and come up with the best response.
			Never invent figures, always get them from an expert.
		`),
		},
		Tools: tools,
	}
}

// NewAnalyst creates the expert in charge of the user's net worth figures.
func NewAnalyst(report Reporter) *Expert {
	tools := NewToolbox(
		summaryTool(report),
		historyTool(report),
		projectionTool(report),
		explainTool(),
	)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. They read the user's net worth snapshots and compute
		every figure about them: net worth, trends, leverage, allocation, drawdowns, CAGR,
		monthly contribution and compound growth projections.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{{FunctionDeclarations: tools.Declarations()}},
			SystemInstruction: instruction(`
			You are a financial analyst in charge of the user's net worth dataset.
			Use the Tools to compute the figures you are asked about. You are part of a team,
			others might ask approximate questions, figure out what they meant.

			Amounts of liabilities are debts. Percentages are percentage points.
			When asked what-if questions about growth, call Projection with the growth rate.
		`),
		},
		Tools: tools,
	}
}

var yearParam = &genai.Schema{
	Type:        genai.TypeInteger,
	Description: "Restrict the view to a calendar year. Omit for the whole history.",
}

func summaryTool(report Reporter) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Summary",
			Description: "Summary returns the key figures of the latest snapshot: net worth, trends, leverage, allocation, max drawdown, CAGR and compound phase.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"year": yearParam},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown report."},
		},
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			r, err := run(report, args, "year")
			if err != nil {
				return "", err
			}
			return renderer.SummaryMarkdown(r), nil
		},
	}
}

func historyTool(report Reporter) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "History",
			Description: "History returns the net worth, the totals by category and the drawdown at the end of each period.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"period": {
						Type:        genai.TypeString,
						Enum:        []string{"monthly", "quarterly", "yearly"},
						Description: "The period of each row. Monthly is the default.",
					},
					"year": yearParam,
				},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown table."},
		},
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			r, err := run(report, args, "period", "year")
			if err != nil {
				return "", err
			}
			return renderer.HistoryMarkdown(r), nil
		},
	}
}

func projectionTool(report Reporter) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Projection",
			Description: `Projection estimates the monthly contribution and simulates the compound growth of
			the net worth. It tells when the monthly market return overtakes the contribution.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"growth": {
						Type:        genai.TypeNumber,
						Description: "Assumed annual growth rate in percent, e.g. 7 for 7%. The user's setting is the default.",
					},
					"horizon": {
						Type:        genai.TypeInteger,
						Description: "Number of months to simulate.",
					},
				},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown report with a yearly table."},
		},
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			r, err := run(report, args, "growth", "horizon")
			if err != nil {
				return "", err
			}
			return renderer.ProjectionMarkdown(r.Compound), nil
		},
	}
}

func explainTool() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Explain",
			Description: "Explain returns the documentation of a topic: how figures are computed and what they mean.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {
						Type:        genai.TypeString,
						Description: "The topic, '*' for all of them.",
					},
				},
				Required: []string{"topic"},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "Markdown documentation."},
		},
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			topic, err := stringArg(args, "topic", "*")
			if err != nil {
				return "", err
			}
			return docs.GetTopic(topic)
		},
	}
}

// run extracts the named settings from args and computes the report.
func run(report Reporter, args map[string]any, names ...string) (*networth.Report, error) {
	settings := make(map[string]string)
	for _, name := range names {
		v, err := stringArg(args, name, "")
		if err != nil {
			return nil, err
		}
		if v != "" {
			settings[name] = v
		}
	}
	r, err := report(settings)
	if err != nil {
		return nil, fmt.Errorf("cannot compute the report: %w", err)
	}
	return r, nil
}
