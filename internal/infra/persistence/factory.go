// Package persistence owns the fallback chain: an ordered list of
// store constructors tried until one reports itself available. Callers
// ask for "the store" once and never learn which tier answered.
package persistence

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"truecraft/config"
	"truecraft/internal/domain/store"
	"truecraft/internal/infra/persistence/demo"
	"truecraft/internal/infra/persistence/legacy"
	"truecraft/internal/infra/persistence/record"

	"go.uber.org/fx"
)

// Factory selects a store once per process and hands out the same
// instance afterwards.
type Factory struct {
	cfg    *config.Config
	logger *slog.Logger

	once     sync.Once
	selected store.MarketplaceStore
}

// NewFactory builds an unselected factory; nothing is probed until the
// first Store call.
func NewFactory(cfg *config.Config, logger *slog.Logger) *Factory {
	return &Factory{cfg: cfg, logger: logger}
}

// Store returns the process-wide store, probing the chain on first use.
// Each tier's constructor failure is isolated: a panic or unavailable
// result moves on to the next tier. The demo tier always constructs,
// so the result is never nil.
func (f *Factory) Store(ctx context.Context) store.MarketplaceStore {
	f.once.Do(func() {
		tiers := []struct {
			name  string
			build func(ctx context.Context) store.MarketplaceStore
		}{
			{"record", func(ctx context.Context) store.MarketplaceStore {
				return record.Connect(ctx, f.cfg, f.logger)
			}},
			{"legacy", func(ctx context.Context) store.MarketplaceStore {
				return legacy.Connect(ctx, f.cfg, f.logger)
			}},
		}

		for _, tier := range tiers {
			candidate := f.tryTier(ctx, tier.name, tier.build)
			if candidate != nil && candidate.Available() {
				f.logger.Info("store selected", slog.String("backend", candidate.Backend()))
				f.selected = candidate

				return
			}
			f.logger.Warn("store tier unavailable, falling through", slog.String("tier", tier.name))
		}

		f.selected = demo.New(f.logger)
	})

	return f.selected
}

// tryTier isolates one constructor attempt; a panic inside a tier must
// not take down the chain.
func (f *Factory) tryTier(ctx context.Context, name string, build func(ctx context.Context) store.MarketplaceStore) (candidate store.MarketplaceStore) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("store tier constructor panicked",
				slog.String("tier", name), slog.Any("panic", r))
			candidate = nil
		}
	}()

	return build(ctx)
}

// Params collects the dependencies for fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewMarketplaceStore is the fx provider: one store per process. Tiers
// holding a real connection release it on shutdown.
func NewMarketplaceStore(params Params) store.MarketplaceStore {
	selected := NewFactory(params.Config, params.Logger).Store(context.Background())

	if closer, ok := selected.(io.Closer); ok {
		params.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return closer.Close()
			},
		})
	}

	return selected
}
