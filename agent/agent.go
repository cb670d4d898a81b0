// Package agent implements an AI assistant answering questions about a net
// worth dataset.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Print writes an answer, as plain text when nil.
	Print func(w io.Writer, answer string)
}

// New creates an Agent reading questions from r and writing answers to w.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start opens the chat sessions of every expert.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range append([]*Expert{a.Facilitator}, a.Experts...) {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return nil
}

const prompt = "assist> "

// Run starts the interactive session. prompts are asked first, as if typed by
// the user. The session ends on "bye" or at the end of the input.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to nw assist. Type 'bye' to exit.")
	for {
		input, err := a.next(&prompts)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if input == "" {
			continue
		}
		if input == "bye" {
			return nil
		}

		answer, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		if a.Print != nil {
			a.Print(a.w, answer)
		} else {
			fmt.Fprintln(a.w, answer)
		}
	}
}

// next prints the prompt and returns the next question, from prompts first.
func (a *Agent) next(prompts *[]string) (string, error) {
	fmt.Fprint(a.w, prompt)
	if len(*prompts) > 0 {
		input := strings.TrimSpace((*prompts)[0])
		*prompts = (*prompts)[1:]
		fmt.Fprintln(a.w, input)
		return input, nil
	}
	input, err := a.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
