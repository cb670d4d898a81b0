package agent

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Expert is a chat session with a model specialized by its system
// instruction and its tools.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	ModelName   string                       `json:"model_name"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Tools       Toolbox
	Log         logrus.FieldLogger
	chat        *genai.Chat
}

// Start opens the chat session.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return fmt.Errorf("cannot start expert %s: %w", e.Name, err)
	}
	e.chat = chat
	return nil
}

// maxToolRounds bounds the number of consecutive tool calls in one answer.
const maxToolRounds = 8

// Ask sends parts to the expert and returns its text answer. Tool calls
// requested by the model are served from the toolbox until the model
// answers with text.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	if e.chat == nil {
		return "", fmt.Errorf("expert %s is not started", e.Name)
	}
	for range maxToolRounds {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return "", err
		}
		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			text := resp.Text()
			if text == "" {
				return "", fmt.Errorf("no response from expert %s", e.Name)
			}
			return text, nil
		}
		if e.Tools == nil {
			return "", fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
		}
		parts = parts[:0]
		for _, call := range calls {
			e.logger().WithField("tool", call.Name).Debug("tool call")
			parts = append(parts, &genai.Part{FunctionResponse: e.Tools.Call(ctx, call)})
		}
	}
	return "", fmt.Errorf("expert %s made too many tool calls", e.Name)
}

func (e *Expert) logger() logrus.FieldLogger {
	if e.Log == nil {
		return logrus.StandardLogger()
	}
	return e.Log.WithField("expert", e.Name)
}

// Declaration returns the declaration of the function that asks this expert.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask the expert.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "Expert's response.",
		},
	}
}

// Call asks the question in args to the expert.
func (e *Expert) Call(ctx context.Context, args map[string]any) (string, error) {
	question, err := stringArg(args, "question", "")
	if err != nil {
		return "", err
	}
	if question == "" {
		return "", fmt.Errorf("argument 'question' is required")
	}
	answer, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", fmt.Errorf("something went wrong while calling the expert: %w", err)
	}
	e.logger().WithField("question", question).Debug(answer)
	return answer, nil
}
