package repository

import (
	"go.uber.org/fx"

	"docregistry/internal/infrastructure/script"
)

var Module = fx.Module("repository",
	fx.Provide(NewSheetRepository),
	fx.Provide(
		fx.Annotate(
			NewAPILogRepository,
			fx.As(new(script.APILogSaver)),
			fx.As(new(APILogRepository)),
		),
	),
)
