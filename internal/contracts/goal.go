package contracts

import (
	domainGoal "github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/goal"
)

type GoalCreateRequest struct {
	Name               string   `json:"name" binding:"required,max=100"`
	GoalType           string   `json:"goal_type" binding:"required,oneof=list_tracker daily_tracker list_created_by_user"`
	Mode               string   `json:"challenge_or_friendly" binding:"required,oneof=challenge friendly"`
	BuddyId            *string  `json:"buddy_id"`
	KeepStreak         bool     `json:"keep_streak"`
	TrackDailyQuantity bool     `json:"track_daily_quantity"`
	UnitTracked        string   `json:"unit_tracked" binding:"omitempty,max=50"`
	CreatedListItems   []string `json:"created_list_items"`
	WinningCondition   string   `json:"winning_condition" binding:"omitempty,max=100"`
	WinningNumber      *float64 `json:"winning_number" binding:"omitempty,gt=0"`
	EndDate            *string  `json:"end_date"`
	WinnersPrize       string   `json:"winners_prize" binding:"omitempty,max=255"`
}

// ProgressSubmitRequest carrega o delta de progresso. Campo presente substitui
// o valor gravado por inteiro; campo ausente fica intocado.
type ProgressSubmitRequest struct {
	NumericValue  *float64                `json:"numeric_value" binding:"omitempty,gte=0"`
	CompletedDays *[]string               `json:"completed_days"`
	ListItems     *[]domainGoal.ListEntry `json:"list_items"`
}

type GoalResponse struct {
	Goal *domainGoal.Goal `json:"goal"`
}

type GoalDetailResponse struct {
	Goal     *domainGoal.Goal           `json:"goal"`
	Progress []*domainGoal.GoalProgress `json:"progress"`
}

type GoalListResponse struct {
	Goals []*domainGoal.Goal `json:"goals"`
	Total int64              `json:"total"`
}

type ProgressListResponse struct {
	Progress []*domainGoal.GoalProgress `json:"progress"`
}

type ProgressResponse struct {
	Progress *domainGoal.GoalProgress `json:"progress"`
}
