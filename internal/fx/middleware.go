package fx

import (
	"github.com/joserrivase/Accountability-Buddy-sub000/config"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/user"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/middleware"

	"go.uber.org/fx"
)

var MiddlewareModule = fx.Module("middleware",
	fx.Provide(
		newJwtService,
	),
)

func newJwtService(cfg *config.Config, userSvc *user.Service) (*middleware.JwtService, error) {
	return middleware.NewJwtService(cfg.JWT, userSvc)
}
