// Package config loads pipeline configuration from YAML files, with
// defaults for every unset value.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/refinery/chunk"
	"github.com/tsawler/refinery/enhance"
	"github.com/tsawler/refinery/model"
	"github.com/tsawler/refinery/refine"
)

// Config is the serialized pipeline configuration.
type Config struct {
	Refine struct {
		CleanNoise          bool `yaml:"clean_noise"`
		BuildSections       bool `yaml:"build_sections"`
		ConvertTables       bool `yaml:"convert_tables"`
		ConvertBlocks       bool `yaml:"convert_blocks"`
		NormalizeMarkdown   bool `yaml:"normalize_markdown"`
		ExtractStructures   bool `yaml:"extract_structures"`
		NormalizeWhitespace bool `yaml:"normalize_whitespace"`
		UseLLM              bool `yaml:"use_llm"`
	} `yaml:"refine"`

	Chunk struct {
		Strategy           string `yaml:"strategy"`
		MaxChunkSize       int    `yaml:"max_chunk_size"`
		MinChunkSize       int    `yaml:"min_chunk_size"`
		OverlapSize        int    `yaml:"overlap_size"`
		TargetChunkSize    int    `yaml:"target_chunk_size"`
		PreserveSentences  *bool  `yaml:"preserve_sentences"`
		PreserveParagraphs *bool  `yaml:"preserve_paragraphs"`
	} `yaml:"chunk"`

	LLM struct {
		Model       string  `yaml:"model"`
		ServerURL   string  `yaml:"server_url"`
		Temperature float64 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
	} `yaml:"llm"`

	Enhance struct {
		Summaries           bool `yaml:"summaries"`
		Keywords            bool `yaml:"keywords"`
		ContextualSummaries bool `yaml:"contextual_summaries"`
		QualityScores       bool `yaml:"quality_scores"`
		MaxSummaryLength    int  `yaml:"max_summary_length"`
	} `yaml:"enhance"`
}

// Default returns the configuration matching each package's defaults.
func Default() *Config {
	var c Config

	ro := refine.DefaultOptions()
	c.Refine.CleanNoise = ro.CleanNoise
	c.Refine.BuildSections = ro.BuildSections
	c.Refine.ConvertTables = ro.ConvertTablesToMarkdown
	c.Refine.ConvertBlocks = ro.ConvertBlocksToMarkdown
	c.Refine.NormalizeMarkdown = ro.NormalizeMarkdownStructure
	c.Refine.ExtractStructures = ro.ExtractStructures
	c.Refine.NormalizeWhitespace = ro.NormalizeWhitespace
	c.Refine.UseLLM = ro.UseLLM

	co := chunk.DefaultOptions()
	c.Chunk.Strategy = co.Strategy.String()
	c.Chunk.MaxChunkSize = co.MaxChunkSize
	c.Chunk.MinChunkSize = co.MinChunkSize
	c.Chunk.OverlapSize = co.OverlapSize
	c.Chunk.TargetChunkSize = co.TargetChunkSize

	lo := enhance.DefaultOllamaConfig()
	c.LLM.Model = lo.Model
	c.LLM.ServerURL = lo.ServerURL
	c.LLM.Temperature = lo.Temperature
	c.LLM.MaxTokens = lo.MaxTokens

	eo := enhance.DefaultOptions()
	c.Enhance.Summaries = eo.Summaries
	c.Enhance.Keywords = eo.Keywords
	c.Enhance.MaxSummaryLength = eo.MaxSummaryLength

	return &c
}

// Load reads configuration from path. An empty path tries config.yaml and
// config.yml in the working directory and falls back to defaults when
// neither exists.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, loc := range []string{"config.yaml", "config.yml"} {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", filepath.Base(path), err)
	}
	return c, nil
}

// RefineOptions converts the config to refine options.
func (c *Config) RefineOptions() refine.Options {
	return refine.Options{
		CleanNoise:                 c.Refine.CleanNoise,
		BuildSections:              c.Refine.BuildSections,
		ConvertTablesToMarkdown:    c.Refine.ConvertTables,
		ConvertBlocksToMarkdown:    c.Refine.ConvertBlocks,
		NormalizeMarkdownStructure: c.Refine.NormalizeMarkdown,
		ExtractStructures:          c.Refine.ExtractStructures,
		NormalizeWhitespace:        c.Refine.NormalizeWhitespace,
		UseLLM:                     c.Refine.UseLLM,
	}
}

// ChunkOptions converts the config to chunk options. Preserve flags default
// to the package defaults when unset in YAML.
func (c *Config) ChunkOptions() chunk.Options {
	opts := chunk.DefaultOptions()
	opts.Strategy = model.ParseStrategy(c.Chunk.Strategy)
	if c.Chunk.MaxChunkSize > 0 {
		opts.MaxChunkSize = c.Chunk.MaxChunkSize
	}
	if c.Chunk.MinChunkSize >= 0 {
		opts.MinChunkSize = c.Chunk.MinChunkSize
	}
	if c.Chunk.OverlapSize >= 0 {
		opts.OverlapSize = c.Chunk.OverlapSize
	}
	if c.Chunk.TargetChunkSize > 0 {
		opts.TargetChunkSize = c.Chunk.TargetChunkSize
	}
	if c.Chunk.PreserveSentences != nil {
		opts.PreserveSentences = *c.Chunk.PreserveSentences
	}
	if c.Chunk.PreserveParagraphs != nil {
		opts.PreserveParagraphs = *c.Chunk.PreserveParagraphs
	}
	return opts
}

// OllamaConfig converts the config to the completion service config.
func (c *Config) OllamaConfig() enhance.OllamaConfig {
	return enhance.OllamaConfig{
		Model:       c.LLM.Model,
		ServerURL:   c.LLM.ServerURL,
		Temperature: c.LLM.Temperature,
		MaxTokens:   c.LLM.MaxTokens,
	}
}

// EnhanceOptions converts the config to enhancement options.
func (c *Config) EnhanceOptions() enhance.Options {
	return enhance.Options{
		Summaries:           c.Enhance.Summaries,
		Keywords:            c.Enhance.Keywords,
		ContextualSummaries: c.Enhance.ContextualSummaries,
		QualityScores:       c.Enhance.QualityScores,
		MaxSummaryLength:    c.Enhance.MaxSummaryLength,
	}
}
