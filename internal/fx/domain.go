package fx

import (
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/friend"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/goal"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/notification"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/user"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/infrastructure"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,
		newNotificationService,
		newGoalService,
		newFriendService,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newNotificationService(
	repo *infrastructure.NotificationRepository,
	sink *infrastructure.PushSink,
) *notification.Service {
	return notification.NewService(repo, sink)
}

func newGoalService(
	repo *infrastructure.GoalRepository,
	progressRepo *infrastructure.ProgressRepository,
	userSvc *user.Service,
	notificationSvc *notification.Service,
) *goal.Service {
	return goal.NewService(repo, progressRepo, userSvc, notificationSvc)
}

func newFriendService(
	repo *infrastructure.FriendRepository,
	userSvc *user.Service,
	notificationSvc *notification.Service,
) *friend.Service {
	return friend.NewService(repo, userSvc, notificationSvc)
}
