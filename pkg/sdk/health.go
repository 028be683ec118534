package fitroom

import (
	"context"

	healthuc "github.com/kailas-cloud/fitroom/internal/usecase/health"
)

// HealthStatus reports which capabilities the client can serve.
type HealthStatus struct {
	Status               string            // "ok", "degraded"
	Checks               map[string]string // component → "ok"/"error"
	SearchKeyPresent     bool
	GenerativeKeyPresent bool
}

// Health reports component readiness. It never calls an upstream.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:               string(report.Status),
		Checks:               checks,
		SearchKeyPresent:     report.SearchKeyPresent,
		GenerativeKeyPresent: report.GenerativeKeyPresent,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
