package router

import (
	"context"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/interview-boot/llm"
	"go.uber.org/zap"
)

// Capability is a category of AI request with its own provider preference
// order and timeout.
type Capability string

const (
	CapabilityFirstQuestion Capability = "first_question"
	CapabilityFollowUp      Capability = "follow_up"
	CapabilityEvaluate      Capability = "evaluate"
	CapabilityReport        Capability = "report"
)

// Router executes capability requests against a ranked provider list:
// unhealthy providers are skipped, failures fall through to the next
// candidate, and exhaustion yields a deterministic local result. Callers
// always get an answer; the interview never dead-ends on backend outages.
type Router struct {
	monitor  *HealthMonitor
	routes   map[Capability][]llm.ProviderClient
	timeouts map[Capability]time.Duration
}

func New(monitor *HealthMonitor) *Router {
	return &Router{
		monitor:  monitor,
		routes:   make(map[Capability][]llm.ProviderClient),
		timeouts: make(map[Capability]time.Duration),
	}
}

// Route registers the ordered provider preference list and timeout for a
// capability. Earlier providers are preferred: put the cheapest
// specialized backend first, hosted general-purpose backends after it.
func (r *Router) Route(capability Capability, timeout time.Duration, providers ...llm.ProviderClient) *Router {
	r.routes[capability] = providers
	r.timeouts[capability] = timeout
	return r
}

func (r *Router) GenerateFirstQuestion(ctx context.Context, req llm.FirstQuestionRequest) *llm.QuestionResponse {
	resp := execute(r, ctx, CapabilityFirstQuestion,
		func(ctx context.Context, p llm.ProviderClient) (*llm.QuestionResponse, error) {
			return p.GenerateFirstQuestion(ctx, req)
		},
		func(resp *llm.QuestionResponse) bool {
			return strings.TrimSpace(resp.Question) != ""
		})
	if resp == nil {
		return fallbackFirstQuestion(req)
	}
	return resp
}

func (r *Router) GenerateFollowUp(ctx context.Context, req llm.FollowUpRequest) *llm.FollowUpResponse {
	resp := execute(r, ctx, CapabilityFollowUp,
		func(ctx context.Context, p llm.ProviderClient) (*llm.FollowUpResponse, error) {
			return p.GenerateFollowUp(ctx, req)
		},
		func(resp *llm.FollowUpResponse) bool {
			return strings.TrimSpace(resp.Question) != ""
		})
	if resp == nil {
		return fallbackFollowUp(req)
	}
	return resp
}

func (r *Router) EvaluateAnswer(ctx context.Context, req llm.EvaluationRequest) *llm.EvaluationResponse {
	resp := execute(r, ctx, CapabilityEvaluate,
		func(ctx context.Context, p llm.ProviderClient) (*llm.EvaluationResponse, error) {
			return p.EvaluateAnswer(ctx, req)
		},
		func(resp *llm.EvaluationResponse) bool {
			return len(resp.Scores) > 0 && resp.ScaleMax > 0
		})
	if resp == nil {
		return fallbackEvaluation(req)
	}
	return resp
}

func (r *Router) BuildReport(ctx context.Context, req llm.ReportRequest) *llm.ReportResponse {
	resp := execute(r, ctx, CapabilityReport,
		func(ctx context.Context, p llm.ProviderClient) (*llm.ReportResponse, error) {
			return p.BuildReport(ctx, req)
		},
		func(resp *llm.ReportResponse) bool {
			return strings.TrimSpace(resp.Overview) != "" || strings.TrimSpace(resp.Assessment) != ""
		})
	if resp == nil {
		return fallbackReport(req)
	}
	return resp
}

// execute walks the capability's preference list. The first healthy
// provider that returns a structurally valid response wins; everything
// else is logged and skipped. A nil return means the list is exhausted.
func execute[T any](r *Router, ctx context.Context, capability Capability,
	call func(context.Context, llm.ProviderClient) (*T, error), valid func(*T) bool) *T {

	for _, provider := range r.routes[capability] {
		if !r.monitor.Healthy(ctx, provider) {
			logger.Info("Skipping unhealthy provider",
				zap.String("provider", provider.Name()),
				zap.String("capability", string(capability)))
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, r.timeouts[capability])
		resp, err := call(callCtx, provider)
		cancel()

		if err != nil {
			logger.Error("Provider call failed",
				zap.String("provider", provider.Name()),
				zap.String("capability", string(capability)),
				zap.Error(err))
			continue
		}

		if resp == nil || !valid(resp) {
			logger.Error("Provider returned invalid response",
				zap.String("provider", provider.Name()),
				zap.String("capability", string(capability)))
			continue
		}

		return resp
	}

	return nil
}
