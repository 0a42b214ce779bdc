package cache

import "github.com/google/wire"

var ProviderSet = wire.NewSet(
	NewTokenStorage,
	wire.Bind(new(ITokenStorage), new(*TokenStorage)),
	NewSubjectStorage,
	wire.Bind(new(ISubjectStorage), new(*SubjectStorage)),
)
