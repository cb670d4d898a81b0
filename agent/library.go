package agent

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"google.golang.org/genai"
)

// Function is a tool the model can call.
type Function interface {
	// Declaration describes the function to the model.
	Declaration() *genai.FunctionDeclaration
	// Call runs the function and returns its text output.
	Call(ctx context.Context, args map[string]any) (string, error)
}

// Toolbox dispatches function calls by name.
type Toolbox map[string]Function

// NewToolbox indexes functions by their declared name.
func NewToolbox[T Function](functions ...T) Toolbox {
	t := make(Toolbox, len(functions))
	for _, f := range functions {
		t[f.Declaration().Name] = f
	}
	return t
}

// Declarations returns the declarations of every function, sorted by name.
func (t Toolbox) Declarations() []*genai.FunctionDeclaration {
	res := make([]*genai.FunctionDeclaration, 0, len(t))
	for _, name := range slices.Sorted(maps.Keys(t)) {
		res = append(res, t[name].Declaration())
	}
	return res
}

// Call runs the requested function. Errors are reported to the model in the
// response rather than returned.
func (t Toolbox) Call(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	resp := &genai.FunctionResponse{ID: call.ID, Name: call.Name}
	f, ok := t[call.Name]
	if !ok {
		resp.Response = map[string]any{"error": fmt.Sprintf("unknown function %s", call.Name)}
		return resp
	}
	output, err := f.Call(ctx, call.Args)
	if err != nil {
		resp.Response = map[string]any{"error": err.Error()}
		return resp
	}
	resp.Response = map[string]any{"output": output}
	return resp
}

// Func implements a Function from a declaration and a plain function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Fn   func(ctx context.Context, args map[string]any) (string, error)
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, args map[string]any) (string, error) {
	return f.Fn(ctx, args)
}

// stringArg returns the string argument name, def when missing.
func stringArg(args map[string]any, name, def string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	switch v := v.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return def, fmt.Errorf("argument '%s' is not a string as expected but %T", name, v)
	}
}
