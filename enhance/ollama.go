package enhance

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaConfig configures the Ollama-backed completion service.
type OllamaConfig struct {
	Model       string
	ServerURL   string
	Temperature float64
	MaxTokens   int
}

// DefaultOllamaConfig returns defaults for a local Ollama instance.
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		Model:       "llama3",
		ServerURL:   "http://localhost:11434",
		Temperature: 0.2,
		MaxTokens:   1024,
	}
}

// OllamaCompletion implements Completion against a local Ollama server.
type OllamaCompletion struct {
	config OllamaConfig
	llm    llms.Model
}

// NewOllama creates an Ollama-backed completion service. Construction only
// validates configuration; connectivity problems surface on first use.
func NewOllama(config OllamaConfig) (*OllamaCompletion, error) {
	if config.Model == "" {
		config.Model = "llama3"
	}
	if config.ServerURL == "" {
		config.ServerURL = "http://localhost:11434"
	}
	if config.Temperature < 0 || config.Temperature > 1 {
		return nil, fmt.Errorf("enhance: temperature %v must be in [0,1]", config.Temperature)
	}
	if config.MaxTokens < 0 {
		return nil, fmt.Errorf("enhance: max tokens must not be negative")
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 1024
	}

	llm, err := ollama.New(
		ollama.WithModel(config.Model),
		ollama.WithServerURL(config.ServerURL),
	)
	if err != nil {
		return nil, fmt.Errorf("enhance: initialize ollama: %w", err)
	}

	return &OllamaCompletion{config: config, llm: llm}, nil
}

// IsAvailable reports whether the client was constructed. Network failures
// are discovered per call and degrade to skipped enrichment.
func (o *OllamaCompletion) IsAvailable() bool {
	return o != nil && o.llm != nil
}

func (o *OllamaCompletion) complete(ctx context.Context, system, prompt string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	resp, err := o.llm.GenerateContent(ctx, content,
		llms.WithTemperature(o.config.Temperature),
		llms.WithMaxTokens(o.config.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("enhance: completion call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("enhance: completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// Generate returns a free-form completion for the prompt.
func (o *OllamaCompletion) Generate(ctx context.Context, prompt string) (string, error) {
	return o.complete(ctx, "You are a precise technical writing assistant.", prompt)
}

// Summarize condenses text to at most maxLen characters and extracts
// keywords from the model's response.
func (o *OllamaCompletion) Summarize(ctx context.Context, text string, maxLen int) (Summary, error) {
	if maxLen <= 0 {
		maxLen = 200
	}
	prompt := fmt.Sprintf(
		"Summarize the following text in at most %d characters. "+
			"Then list up to five keywords on a final line starting with \"Keywords:\".\n\n%s",
		maxLen, text)

	out, err := o.complete(ctx, "You summarize documents faithfully and concisely.", prompt)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Text: out}
	if idx := strings.LastIndex(strings.ToLower(out), "keywords:"); idx >= 0 {
		summary.Text = strings.TrimSpace(out[:idx])
		summary.Keywords = splitListLine(out[idx+len("keywords:"):])
	}
	summary.Text = truncate(summary.Text, maxLen)
	return summary, nil
}

// ExtractMetadata pulls keywords and named entities from text.
func (o *OllamaCompletion) ExtractMetadata(ctx context.Context, text, docType string) (Metadata, error) {
	prompt := fmt.Sprintf(
		"From the following %s content, output two lines only:\n"+
			"Keywords: <comma separated keywords>\n"+
			"Entities: <comma separated named entities>\n\n%s",
		defaultDocType(docType), text)

	out, err := o.complete(ctx, "You extract indexing metadata from documents.", prompt)
	if err != nil {
		return Metadata{}, err
	}

	var meta Metadata
	for _, line := range strings.Split(out, "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "keywords:"):
			meta.Keywords = splitListLine(line[len("keywords:"):])
		case strings.HasPrefix(lower, "entities:"):
			meta.Entities = splitListLine(line[len("entities:"):])
		}
	}
	return meta, nil
}

// AnalyzeStructure proposes a section outline for unstructured text.
func (o *OllamaCompletion) AnalyzeStructure(ctx context.Context, text, docType string) (StructureAnalysis, error) {
	prompt := fmt.Sprintf(
		"Propose a section outline for the following %s content. "+
			"Output one section title per line, then a final line \"Confidence: <0..1>\".\n\n%s",
		defaultDocType(docType), text)

	out, err := o.complete(ctx, "You analyze document structure.", prompt)
	if err != nil {
		return StructureAnalysis{}, err
	}

	analysis := StructureAnalysis{Confidence: 0.5}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*#0123456789. "))
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "confidence:") {
			if v, err := strconv.ParseFloat(strings.TrimSpace(line[len("confidence:"):]), 64); err == nil && v >= 0 && v <= 1 {
				analysis.Confidence = v
			}
			continue
		}
		analysis.Sections = append(analysis.Sections, line)
	}
	return analysis, nil
}

// AssessQuality scores text on named quality dimensions from "name: score"
// lines in the model's response. Scores outside [0,1] are dropped.
func (o *OllamaCompletion) AssessQuality(ctx context.Context, text string) (map[string]float64, error) {
	prompt := "Rate the following text on clarity, coherence, and completeness. " +
		"Output one line per dimension as \"<dimension>: <score between 0 and 1>\".\n\n" + text

	out, err := o.complete(ctx, "You assess writing quality numerically.", prompt)
	if err != nil {
		return nil, err
	}

	scores := map[string]float64{}
	for _, line := range strings.Split(out, "\n") {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || v < 0 || v > 1 {
			continue
		}
		scores[strings.ToLower(strings.TrimSpace(name))] = v
	}
	return scores, nil
}

func defaultDocType(docType string) string {
	if docType == "" {
		return "document"
	}
	return docType
}

func splitListLine(line string) []string {
	var items []string
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(strings.Trim(strings.TrimSpace(part), ".\"'"))
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}
