package health

import "context"

// Checker reports whether a component can serve requests.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// CredentialReporter reports whether a component's upstream credential is configured.
type CredentialReporter interface {
	CredentialConfigured() bool
}
