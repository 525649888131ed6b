package llm

import (
	logx "github.com/krishigpt/server/pkg/logger"
	openai "github.com/sashabaranov/go-openai"
)

// Pricing defines USD cost per 1M tokens for input/output.
type Pricing struct {
	InputPerM  float64
	OutputPerM float64
}

// defaultPricing provides hardcoded USD pricing per 1M tokens for the
// models the selector can land on. Unknown models fall back to zero.
var defaultPricing = map[string]Pricing{
	"llama3-70b-8192":    {InputPerM: 0.59, OutputPerM: 0.79},
	"llama3-8b-8192":     {InputPerM: 0.05, OutputPerM: 0.08},
	"mixtral-8x7b-32768": {InputPerM: 0.24, OutputPerM: 0.24},
}

func resolvePricing(model string) Pricing {
	if p, ok := defaultPricing[model]; ok {
		return p
	}
	return Pricing{}
}

func computeCost(usage openai.Usage, p Pricing) (inputCost, outputCost, total float64) {
	inputCost = p.InputPerM * float64(usage.PromptTokens) / 1_000_000.0
	outputCost = p.OutputPerM * float64(usage.CompletionTokens) / 1_000_000.0
	total = inputCost + outputCost
	return
}

func logUsage(model string, usage openai.Usage) {
	inC, outC, totalC := computeCost(usage, resolvePricing(model))
	logx.Debug().
		Str("model", model).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}
