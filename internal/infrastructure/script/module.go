package script

import "go.uber.org/fx"

var Module = fx.Module("script",
	fx.Provide(NewClient),
)
