package prompts

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/krishigpt/server/internal/advisor/stage"
	logx "github.com/krishigpt/server/pkg/logger"
)

//go:embed template/system_prompt.txt
var defaultSystemPrompt string

// Apology is the fixed user-facing message when all completion attempts
// are exhausted. It always carries the human helpline as a safety net
// and never exposes internal error detail.
const Apology = "❌ माफ करें, तकनीकी समस्या है। कृपया थोड़ी देर बाद प्रयास करें। 🙏\n" +
	"यदि समस्या बनी रहे तो किसान कॉल सेंटर पर कॉल करें: 1551"

const (
	contextHeader     = "\n\n--- 📚 संबंधित जानकारी ---\n"
	instructionSuffix = "\n\n--- ⚠️ निर्देश ---\nऊपर दी गई जानकारी के आधार पर सुरक्षित और व्यावहारिक सलाह दो।"
)

// LoadSystemPrompt reads the system prompt from path, falling back to
// the embedded default when the path is empty or unreadable.
func LoadSystemPrompt(path string) string {
	if path == "" {
		return strings.TrimSpace(defaultSystemPrompt)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		logx.Warn().Err(err).Str("path", path).Msg("system prompt file unreadable, using embedded default")
		return strings.TrimSpace(defaultSystemPrompt)
	}
	return strings.TrimSpace(string(b))
}

// Augment appends the knowledge context and the fixed instruction suffix
// to the system prompt. An empty context returns the prompt unchanged,
// signaling that no augmentation applies to this query.
func Augment(systemPrompt, context string) string {
	if context == "" {
		return systemPrompt
	}
	return systemPrompt + contextHeader + context + instructionSuffix
}

// StageNote renders the growth-stage line prepended to the system prompt
// when a stage estimate is available.
func StageNote(cropName string, r stage.Result) string {
	return fmt.Sprintf("🌱 फसल की वर्तमान अवस्था (%s): बुवाई के %d दिन बाद — %s। सलाह इसी अवस्था के अनुसार दो।",
		cropName, r.DaysAfterSowing, r.Stage)
}
