package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// maxToolRounds bounds the function calls an expert can chain before answering.
const maxToolRounds = 8

// Expert is a chat with a model specialized by its system instruction and tools.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	ModelName   string                       `json:"model_name"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Library     Library
	chat        *genai.Chat
}

// Start creates the expert's chat.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask sends parts and returns the text answer of the expert, after serving
// the function calls it makes on the way.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	for range maxToolRounds {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return "", fmt.Errorf("no response from expert %s", e.Name)
		}
		calls, answer := split(resp.Candidates[0].Content)
		if len(calls) == 0 {
			return answer, nil
		}
		if e.Library == nil {
			return "", fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
		}
		parts = make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			parts = append(parts, &genai.Part{FunctionResponse: e.Library(ctx, call)})
		}
	}
	return "", fmt.Errorf("expert %s did not answer after %d function calls", e.Name, maxToolRounds)
}

// split returns the function calls of content, and its text.
func split(content *genai.Content) ([]*genai.FunctionCall, string) {
	var calls []*genai.FunctionCall
	var text []string
	for _, p := range content.Parts {
		switch {
		case p.FunctionCall != nil:
			calls = append(calls, p.FunctionCall)
		case p.Text != "" && !p.Thought:
			text = append(text, p.Text)
		}
	}
	return calls, strings.Join(text, "")
}

// Declaration returns the function declaration to ask this expert.
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
			Description: "Expert's answer, in markdown.",
		},
	}
}

// Call asks this expert the question in args.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, ok := args["question"].(string)
	if !ok {
		return errorResponse(id, e.Name, fmt.Errorf("invalid type got %T, expected string", args["question"]))
	}
	answer, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return errorResponse(id, e.Name, fmt.Errorf("something went wrong while calling the expert: %w", err))
	}
	log.Printf("Expert %q: \n        %q\n        %q", e.Name, question, answer)
	return outputResponse(id, e.Name, answer)
}
