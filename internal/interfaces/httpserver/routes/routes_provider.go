package routes

import (
	"github.com/google/wire"

	"gift-server/internal/interfaces/httpserver/handlers/adminhandler"
	"gift-server/internal/interfaces/httpserver/handlers/authhandler"
	"gift-server/internal/interfaces/httpserver/handlers/gifthandler"
	"gift-server/internal/interfaces/httpserver/routes/auth"
	v1 "gift-server/internal/interfaces/httpserver/routes/v1"
	"gift-server/internal/interfaces/httpserver/routes/v1/admin"
	"gift-server/internal/interfaces/httpserver/routes/v1/gifts"
)

var RouteProvider = wire.NewSet(
	// Handlers
	authhandler.NewAuthHandler,
	gifthandler.NewGiftHandler,
	adminhandler.NewAdminHandler,

	// Routes
	auth.NewAuthRoute,
	v1.NewV1Route,
	admin.NewAdminRoute,
	gifts.NewGiftRoute,
)
