package filestore

import "go.uber.org/fx"

var Module = fx.Module("filestore",
	fx.Provide(NewFilestore),
)
