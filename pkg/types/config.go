// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pollscan/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CaptureConfig holds settings for the payload capture stage.
type CaptureConfig struct {
	HTTPConfig `yaml:",inline"`

	// FetchDelay is the delay between consecutive fetches (default 1s).
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`

	// MaxBodyBytes caps how much of each response body is read
	// (default 8 MiB). Oversized payloads are truncated, not rejected.
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes"`

	// MaxRetries is the retry budget for rate-limited requests.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// EngineConfig holds the tunable thresholds of the discovery and
// normalization engine. The weights were calibrated against real captured
// payload pools; treat them as defaults to recalibrate, not constants.
type EngineConfig struct {
	// MinScore is the selection floor: no table scoring below it is ever
	// chosen (default 40). The volume bonuses alone cap at 35, so a table
	// matching zero signal categories can never clear the default floor.
	MinScore float64 `json:"min_score" yaml:"min_score"`

	// MinRows is the row floor under which a table is penalized (default 5).
	MinRows int `json:"min_rows" yaml:"min_rows"`

	// AnswerDensity is the minimum fraction of sampled non-blank values
	// that must parse as numeric for a column to qualify as an answer
	// column (default 0.65).
	AnswerDensity float64 `json:"answer_density" yaml:"answer_density"`

	// AnswerSampleRows is how many leading rows are sampled when testing
	// answer-column density (default 60).
	AnswerSampleRows int `json:"answer_sample_rows" yaml:"answer_sample_rows"`
}

// Defaults fills zero-valued fields with the engine defaults.
func (c EngineConfig) Defaults() EngineConfig {
	if c.MinScore == 0 {
		c.MinScore = 40
	}
	if c.MinRows == 0 {
		c.MinRows = 5
	}
	if c.AnswerDensity == 0 {
		c.AnswerDensity = 0.65
	}
	if c.AnswerSampleRows == 0 {
		c.AnswerSampleRows = 60
	}
	return c
}

// StoreConfig holds settings for harvest run persistence.
type StoreConfig struct {
	// DataDir is the directory holding the runs database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Capture CaptureConfig `json:"capture" yaml:"capture"`
	Engine  EngineConfig  `json:"engine" yaml:"engine"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}
