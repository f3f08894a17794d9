package repository

import (
	"github.com/google/wire"

	"gift-server/internal/infrastructure/database/repository/giftrepo"
	"gift-server/internal/infrastructure/database/repository/tagrepo"
	"gift-server/internal/infrastructure/database/repository/userrepo"
)

var RepositoryProvider = wire.NewSet(
	giftrepo.NewGiftGormRepository,
	tagrepo.NewTagGormRepository,
	userrepo.NewUserGormRepository,
)
