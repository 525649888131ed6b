package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"

	errx "github.com/krishigpt/server/internal/core/error"
	openai "github.com/sashabaranov/go-openai"
)

const (
	transcriptionModel = "whisper-large-v3"
	defaultVisionModel = "meta-llama/llama-4-scout-17b-16e-instruct"

	visionPrompt = "यह एक फसल की तस्वीर है। बीमारी या कीट की पहचान करो और हिंदी में बताओ: " +
		"1) संभावित समस्या 2) लक्षण जो दिख रहे हैं 3) तुरंत करने योग्य उपचार। " +
		"अगर तस्वीर साफ नहीं है तो दोबारा फोटो मांगो।"
)

// Client runs the voice and image pipelines against the same
// OpenAI-compatible provider as the chat engine. Both are plain
// download-then-call plumbing with no retry logic of their own.
type Client struct {
	api         *openai.Client
	visionModel string
}

func NewClient(apiKey, baseURL, visionModel string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if visionModel == "" {
		visionModel = defaultVisionModel
	}
	return &Client{api: openai.NewClientWithConfig(cfg), visionModel: visionModel}
}

// Transcribe converts a voice note to text via Whisper. Hindi is passed
// as the language hint; it covers Marathi speech acceptably as well.
func (c *Client) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    transcriptionModel,
		Reader:   bytes.NewReader(audio),
		FilePath: "voice" + audioExt(contentType),
		Language: "hi",
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", errx.WrapLLM(err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("no speech detected")
	}
	return text, nil
}

// Diagnose sends a crop photo to the vision model with a fixed Hindi
// diagnosis prompt.
func (c *Client) Diagnose(ctx context.Context, image []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	dataURL := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(image)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: visionPrompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
				},
			},
		},
		MaxTokens: 800,
	})
	if err != nil {
		return "", errx.WrapLLM(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty vision response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// DetectLanguage gives a rough Hindi/English split based on the share of
// Devanagari letters in the text.
func DetectLanguage(text string) string {
	var devanagari, letters int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if r >= 0x0900 && r <= 0x097F {
				devanagari++
			}
		}
	}
	if letters == 0 {
		return "unknown"
	}
	if float64(devanagari)/float64(letters) > 0.3 {
		return "hi"
	}
	return "en"
}

func audioExt(contentType string) string {
	switch {
	case strings.Contains(contentType, "mp3"), strings.Contains(contentType, "mpeg"):
		return ".mp3"
	case strings.Contains(contentType, "wav"):
		return ".wav"
	case strings.Contains(contentType, "amr"):
		return ".amr"
	default:
		return ".ogg"
	}
}
