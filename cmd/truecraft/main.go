package main

import (
	"context"
	"log/slog"
	"os"

	"truecraft/config"
	"truecraft/internal/delivery"
	"truecraft/internal/delivery/http"
	"truecraft/internal/delivery/http/router/handler"
	"truecraft/internal/domain/service"
	"truecraft/internal/infra/auth"
	"truecraft/internal/infra/auth/google"
	"truecraft/internal/infra/content"
	"truecraft/internal/infra/image"
	logs "truecraft/internal/infra/log"
	"truecraft/internal/infra/persistence"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectStore(),
		injectService(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectStore() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.NewMarketplaceStore,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			newIdentityProvider,
			newContentGenerator,
			newImageProcessor,
		),
	)
}

// newIdentityProvider builds the Google provider when credentials are
// configured. Without them the login endpoints report unavailable and
// the rest of the API keeps working.
func newIdentityProvider(cfg *config.Config) (service.IdentityProvider, error) {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" {
		return nil, nil // identity provider is optional
	}

	provider, err := google.New(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Google provider")
	}

	return provider, nil
}

func newContentGenerator() service.ContentGenerator {
	return content.NewTemplateGenerator()
}

func newImageProcessor() service.ImageProcessor {
	return image.NewProcessor()
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewProductHandler,
			handler.NewProfileHandler,
			handler.NewReviewHandler,
			handler.NewMessageHandler,
			handler.NewOrderHandler,
			handler.NewAnalyticsHandler,
			handler.NewAuthHandler,
			handler.NewStatusHandler,
			handler.NewStudioHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
