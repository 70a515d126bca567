package fx

import (
	"github.com/joserrivase/Accountability-Buddy-sub000/config"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newUserRepository,
		newGoalRepository,
		newProgressRepository,
		newNotificationRepository,
		newFriendRepository,
		newPushSink,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newUserRepository(db *gorm.DB) *infrastructure.UserRepository {
	return &infrastructure.UserRepository{DB: db}
}

func newGoalRepository(db *gorm.DB) *infrastructure.GoalRepository {
	return &infrastructure.GoalRepository{DB: db}
}

func newProgressRepository(db *gorm.DB) *infrastructure.ProgressRepository {
	return &infrastructure.ProgressRepository{DB: db}
}

func newNotificationRepository(db *gorm.DB) *infrastructure.NotificationRepository {
	return &infrastructure.NotificationRepository{DB: db}
}

func newFriendRepository(db *gorm.DB) *infrastructure.FriendRepository {
	return &infrastructure.FriendRepository{DB: db}
}

func newPushSink(cfg *config.Config) *infrastructure.PushSink {
	return infrastructure.NewPushSink(cfg)
}
