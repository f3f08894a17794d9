package interfaces

import (
	"github.com/google/wire"

	"gift-server/internal/interfaces/httpserver"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHttpServer,
)
