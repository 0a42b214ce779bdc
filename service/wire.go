package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),

	wire.Struct(new(NoteService), "*"),
	wire.Bind(new(INoteService), new(*NoteService)),

	wire.Struct(new(UpvoteService), "*"),
	wire.Bind(new(IUpvoteService), new(*UpvoteService)),

	wire.Struct(new(StorageService), "*"),
	wire.Bind(new(IStorageService), new(*StorageService)),

	wire.Struct(new(AdminService), "*"),
	wire.Bind(new(IAdminService), new(*AdminService)),
)
