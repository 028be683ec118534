package fitroom

import (
	"context"

	"github.com/kailas-cloud/fitroom/internal/domain/composition"
	"github.com/kailas-cloud/fitroom/internal/domain/product"
	healthuc "github.com/kailas-cloud/fitroom/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, query string) (product.Page, error)
}

func (m *mockSearchUC) Search(ctx context.Context, query string) (product.Page, error) {
	return m.searchFn(ctx, query)
}

// --- composeUseCase mock ---

type mockComposeUC struct {
	composeFn func(ctx context.Context, req composition.Request) (composition.Result, error)
}

func (m *mockComposeUC) Compose(ctx context.Context, req composition.Request) (composition.Result, error) {
	return m.composeFn(ctx, req)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }
