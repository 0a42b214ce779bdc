package server

import (
	"studybuddy/handler"
)

type Handlers struct {
	Auth    *handler.Auth
	Note    *handler.Note
	Storage *handler.Storage
	Admin   *handler.Admin
}
