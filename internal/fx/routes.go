package fx

import (
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/friend"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/goal"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/notification"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/user"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/middleware"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece handlers e rate limiters
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newPublicRateLimiter,
	),
)

func newHandler(
	userSvc *user.Service,
	jwtSvc *middleware.JwtService,
	goalSvc *goal.Service,
	notificationSvc *notification.Service,
	friendSvc *friend.Service,
) *routes.Handler {
	return &routes.Handler{
		UserService:         userSvc,
		JwtService:          jwtSvc,
		GoalService:         goalSvc,
		NotificationService: notificationSvc,
		FriendService:       friendSvc,
	}
}

func newPublicRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Minute)
}
