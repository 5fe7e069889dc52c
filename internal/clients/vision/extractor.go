package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrUnreadable marks responses the model produced but that do not conform
// to the contract. Callers treat these as input failures, not outages.
var ErrUnreadable = errors.New("unreadable extraction")

const extractionPrompt = `
You are an AI that extracts data from electric meter images.

Extract ONLY these fields:

1. meterNo  -> the "Property of EECO No"
2. kilowatt -> the kWh reading (must be a NUMBER)

Important rules:
- Do NOT add explanations.
- Do NOT wrap numbers in quotes.
- If unreadable, return null.
- Respond ONLY in this JSON format:

{
  "meterNo": "string or null",
  "kilowatt": number or null
}
`

// Extraction is the exact shape the model must return. Either field may be
// null when the photo is unreadable.
type Extraction struct {
	MeterNo  *string  `json:"meterNo"`
	Kilowatt *float64 `json:"kilowatt"`
}

// Extractor turns a meter photo into a meter number and kWh reading.
type Extractor struct {
	client *openai.Client
	model  string
}

func NewExtractor(apiKey, baseURL, model string) *Extractor {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Extractor{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Extract sends the photo inline as a data URL with the fixed prompt. Any
// ambiguity in the response is a hard failure, never a guess.
func (e *Extractor) Extract(ctx context.Context, imageBase64, mimeType string) (*Extraction, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: fmt.Sprintf("data:%s;base64,%s", mimeType, imageBase64),
						},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: extractionPrompt,
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vision extraction failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no response text from vision model", ErrUnreadable)
	}

	return ParseExtraction(resp.Choices[0].Message.Content)
}

var codeFenceJSON = regexp.MustCompile("(?i)```json")

// ParseExtraction validates the raw model output: strip markdown fences,
// require valid JSON and the exact field types. Extra keys are ignored, the
// model sometimes volunteers them.
func ParseExtraction(text string) (*Extraction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no response text from vision model", ErrUnreadable)
	}

	clean := codeFenceJSON.ReplaceAllString(text, "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var raw struct {
		MeterNo  json.RawMessage `json:"meterNo"`
		Kilowatt json.RawMessage `json:"kilowatt"`
	}
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return nil, fmt.Errorf("%w: vision response is not valid JSON: %v", ErrUnreadable, err)
	}

	result := &Extraction{}

	if len(raw.MeterNo) > 0 && string(raw.MeterNo) != "null" {
		var meterNo string
		if err := json.Unmarshal(raw.MeterNo, &meterNo); err != nil {
			return nil, fmt.Errorf("%w: meterNo is not a string", ErrUnreadable)
		}
		result.MeterNo = &meterNo
	}

	if len(raw.Kilowatt) > 0 && string(raw.Kilowatt) != "null" {
		var kilowatt float64
		if err := json.Unmarshal(raw.Kilowatt, &kilowatt); err != nil {
			return nil, fmt.Errorf("%w: kilowatt is not a number", ErrUnreadable)
		}
		result.Kilowatt = &kilowatt
	}

	return result, nil
}
