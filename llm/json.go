package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeModelJSON extracts and unmarshals the first JSON object embedded in
// a model response. Models routinely wrap JSON in prose or markdown fences,
// so the raw text is scanned for the outermost brace window first.
func DecodeModelJSON(response string, out any) error {
	response = strings.TrimSpace(response)

	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || startIdx >= endIdx {
		return fmt.Errorf("no valid JSON found in response")
	}

	jsonStr := response[startIdx : endIdx+1]
	if err := json.Unmarshal([]byte(jsonStr), out); err != nil {
		return fmt.Errorf("error unmarshaling model response: %w", err)
	}

	return nil
}
