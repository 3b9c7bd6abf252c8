package interview

import (
	"time"

	"github.com/SaiNageswarS/interview-boot/appconfig"
	"github.com/SaiNageswarS/interview-boot/llm"
	"github.com/SaiNageswarS/interview-boot/router"
	"github.com/SaiNageswarS/interview-boot/strategy"
)

// ProvideRouter wires the provider preference lists. The fine-tuned local
// service is cheapest and fastest, so it leads every generation list;
// report synthesis benefits most from the large hosted model, so that
// list is inverted.
func ProvideRouter(ccfgg *appconfig.AppConfig, local *llm.LocalModelClient, ollama *llm.OllamaClient, gemini *llm.GeminiClient) *router.Router {
	monitor := router.NewHealthMonitor(
		secs(ccfgg.HealthCacheTTLSec),
		secs(ccfgg.HealthProbeTimeoutSec),
		secs(ccfgg.ModelLoadTimeoutSec),
	)

	return router.New(monitor).
		Route(router.CapabilityFirstQuestion, secs(ccfgg.FirstQuestionTimeoutSec), local, ollama, gemini).
		Route(router.CapabilityFollowUp, secs(ccfgg.FollowUpTimeoutSec), local, ollama, gemini).
		Route(router.CapabilityEvaluate, secs(ccfgg.EvaluateTimeoutSec), local, ollama, gemini).
		Route(router.CapabilityReport, secs(ccfgg.ReportTimeoutSec), gemini, local, ollama)
}

// ProvideStrategyEngine builds the phase/quality engine from config.
func ProvideStrategyEngine(ccfgg *appconfig.AppConfig) *strategy.Engine {
	return strategy.NewEngine(strategy.Config{
		CollapsedThreshold: ccfgg.CollapsedPhaseThreshold,
		CoarseThreshold:    ccfgg.CoarsePhaseThreshold,
		PoorBand:           ccfgg.QualityPoorBand,
		GoodBand:           ccfgg.QualityGoodBand,
	})
}

func secs(n int) time.Duration {
	return time.Duration(n) * time.Second
}
