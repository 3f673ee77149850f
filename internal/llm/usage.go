package llm

import "github.com/stockline/stockline/internal/models"

// usageFromInfo reads token counts from langchaingo generation info.
func usageFromInfo(info map[string]any) models.Usage {
	return models.Usage{
		PromptTokens:     intValue(info["PromptTokens"]),
		CompletionTokens: intValue(info["CompletionTokens"]),
		TotalTokens:      intValue(info["TotalTokens"]),
	}
}

func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
