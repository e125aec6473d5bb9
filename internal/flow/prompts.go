package flow

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BTreeMap/CoverageGuide/internal/models"
)

const consumerSystemInstruction = `You are an expert on Ontario Automobile Insurance, specifically the Statutory Accident Benefits Schedule (SABS).
Your goal is to explain complex insurance terms to Ontario drivers in simple, accessible language.
Focus on the upcoming reforms that aim to give consumers more choice between mandatory and optional coverages.
Always clarify that while "optional" coverages cost more premium, they provide much higher protection levels.
Encourage users to speak with a licensed insurance broker for personalized advice.
Be professional, empathetic, and clear.
Keep responses concise (under 200 words if possible).`

const employeeSystemInstruction = `You are a training assistant for insurance company employees learning the Ontario Statutory Accident Benefits Schedule (SABS) reforms.
Explain what each accident benefit covers, its mandatory limits and the optional increased limits, and how the reforms change which benefits are mandatory.
Employees may explain coverage definitions and processes to customers but must never recommend which coverages a customer should choose; recommendations are a regulated activity reserved for licensed advisors.
If asked which coverage someone should buy, explain the options neutrally and remind the employee of this rule.
Be professional and clear.
Keep responses concise (under 200 words if possible).`

// SystemInstruction returns the built-in advisor instruction for a variant.
func SystemInstruction(v models.Variant) string {
	if v == models.VariantEmployee {
		return employeeSystemInstruction
	}
	return consumerSystemInstruction
}

// LoadSystemPrompt reads an advisor instruction from path. An empty path returns the variant's
// built-in instruction.
func LoadSystemPrompt(path string, v models.Variant) (string, error) {
	if path == "" {
		return SystemInstruction(v), nil
	}
	slog.Debug("flow.LoadSystemPrompt: loading system prompt from file", "file", path)
	content, err := os.ReadFile(path)
	if err != nil {
		slog.Error("flow.LoadSystemPrompt: failed to read system prompt file", "file", path, "error", err)
		return "", fmt.Errorf("failed to read system prompt file: %w", err)
	}
	prompt := strings.TrimSpace(string(content))
	if prompt == "" {
		return "", fmt.Errorf("system prompt file is empty: %s", path)
	}
	slog.Info("flow.LoadSystemPrompt: system prompt loaded successfully", "file", path, "length", len(prompt))
	return prompt, nil
}
