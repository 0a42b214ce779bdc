//go:build wireinject
// +build wireinject

package main

import (
	"studybuddy/config"
	"studybuddy/dao"
	"studybuddy/dao/cache"
	"studybuddy/handler"
	"studybuddy/pkg/client"
	"studybuddy/pkg/database"
	"studybuddy/pkg/mail"
	"studybuddy/pkg/server"
	"studybuddy/pkg/storage"
	"studybuddy/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, func(), error) {
	wire.Build(
		client.NewRedisClient,
		database.NewDB,
		config.ProvideStorageConfig,
		config.ProvideEmailConfig,
		storage.New,
		mail.NewSender,
		server.NewGinEngine,
		cache.ProviderSet,
		dao.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Note), "*"),
		wire.Struct(new(handler.Storage), "*"),
		wire.Struct(new(handler.Admin), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),
	)
	return nil, nil, nil
}
