package http

import (
	"go.uber.org/fx"

	"docregistry/internal/delivery/http/handler"
	"docregistry/internal/delivery/http/router"
)

var Module = fx.Module("http",
	fx.Provide(
		handler.NewDraftHandler,
		handler.NewSubmitHandler,
		handler.NewMasterHandler,
		handler.NewHealthHandler,
		handler.NewLogHandler,
		router.NewRouter,
	),
)
