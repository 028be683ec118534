package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results. The process is alive whenever a Report
// is produced; Status only describes the components.
type Report struct {
	Status               Status
	Checks               map[string]CheckResult
	SearchKeyPresent     bool
	GenerativeKeyPresent bool
}

type namedCheck struct {
	name    string
	checker Checker
}

// Service coordinates health checks.
type Service struct {
	search     CredentialReporter
	generative CredentialReporter
	checks     []namedCheck
}

// New creates a Service reporting credential presence for both upstreams.
// Either reporter can be nil.
func New(search, generative CredentialReporter) *Service {
	return &Service{search: search, generative: generative}
}

// WithCheck adds a named component check. Checks run in registration order.
func (s *Service) WithCheck(name string, c Checker) *Service {
	if c != nil {
		s.checks = append(s.checks, namedCheck{name: name, checker: c})
	}
	return s
}

// Check runs health checks against all components. It never calls an upstream.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checks))
	status := Healthy

	for _, c := range s.checks {
		if err := c.checker.HealthCheck(ctx); err != nil {
			checks[c.name] = CheckError
			status = Degraded
		} else {
			checks[c.name] = CheckOK
		}
	}

	return Report{
		Status:               status,
		Checks:               checks,
		SearchKeyPresent:     s.search != nil && s.search.CredentialConfigured(),
		GenerativeKeyPresent: s.generative != nil && s.generative.CredentialConfigured(),
	}
}
