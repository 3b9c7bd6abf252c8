package appconfig

import (
	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	MongoURI string `env:"MONGO-URI" ini:"mongo_uri"`

	// Provider endpoints and models.
	LocalProviderURL string `env:"LOCAL-PROVIDER-URL" ini:"local_provider_url"`
	OllamaModel      string `env:"OLLAMA-MODEL" ini:"ollama_model"`
	GeminiModel      string `env:"GEMINI-MODEL" ini:"gemini_model"`

	// Per-capability timeouts, seconds.
	FirstQuestionTimeoutSec int `ini:"first_question_timeout_sec"`
	FollowUpTimeoutSec      int `ini:"follow_up_timeout_sec"`
	EvaluateTimeoutSec      int `ini:"evaluate_timeout_sec"`
	ReportTimeoutSec        int `ini:"report_timeout_sec"`

	// Health monitor.
	HealthCacheTTLSec     int `ini:"health_cache_ttl_sec"`
	HealthProbeTimeoutSec int `ini:"health_probe_timeout_sec"`
	ModelLoadTimeoutSec   int `ini:"model_load_timeout_sec"`

	// Generation defaults.
	GenerationTemperature float64 `ini:"generation_temperature"`
	EvaluationTemperature float64 `ini:"evaluation_temperature"`

	// Phase bucketing thresholds: totals at or below these use collapsed
	// or coarse phase splits.
	CollapsedPhaseThreshold int `ini:"collapsed_phase_threshold"`
	CoarsePhaseThreshold    int `ini:"coarse_phase_threshold"`

	// Answer-quality bands on the normalized 0-1 final score.
	QualityPoorBand float64 `ini:"quality_poor_band"`
	QualityGoodBand float64 `ini:"quality_good_band"`

	// Score written when evaluation fails entirely.
	NeutralScore float64 `ini:"neutral_score"`
}

// WithDefaults fills zero-valued tuning knobs so a partial config file
// still yields a working orchestrator.
func (c *AppConfig) WithDefaults() *AppConfig {
	if c.OllamaModel == "" {
		c.OllamaModel = "llama3.1:8b"
	}
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-2.5-pro"
	}
	if c.FirstQuestionTimeoutSec == 0 {
		c.FirstQuestionTimeoutSec = 30
	}
	if c.FollowUpTimeoutSec == 0 {
		c.FollowUpTimeoutSec = 30
	}
	if c.EvaluateTimeoutSec == 0 {
		c.EvaluateTimeoutSec = 45
	}
	if c.ReportTimeoutSec == 0 {
		c.ReportTimeoutSec = 90
	}
	if c.HealthCacheTTLSec == 0 {
		c.HealthCacheTTLSec = 5
	}
	if c.HealthProbeTimeoutSec == 0 {
		c.HealthProbeTimeoutSec = 3
	}
	if c.ModelLoadTimeoutSec == 0 {
		c.ModelLoadTimeoutSec = 60
	}
	if c.GenerationTemperature == 0 {
		c.GenerationTemperature = 0.7
	}
	if c.EvaluationTemperature == 0 {
		c.EvaluationTemperature = 0.2
	}
	if c.CollapsedPhaseThreshold == 0 {
		c.CollapsedPhaseThreshold = 5
	}
	if c.CoarsePhaseThreshold == 0 {
		c.CoarsePhaseThreshold = 10
	}
	if c.QualityPoorBand == 0 {
		c.QualityPoorBand = 0.4
	}
	if c.QualityGoodBand == 0 {
		c.QualityGoodBand = 0.7
	}
	if c.NeutralScore == 0 {
		c.NeutralScore = 0.7
	}
	return c
}
