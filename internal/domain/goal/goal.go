package goal

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type TrackingMethod string

const (
	TrackingNumeric         TrackingMethod = "numeric"
	TrackingDailyCompletion TrackingMethod = "daily-completion"
	TrackingList            TrackingMethod = "list"
)

type GoalType string

const (
	TypeListTracker       GoalType = "list_tracker"
	TypeDailyTracker      GoalType = "daily_tracker"
	TypeListCreatedByUser GoalType = "list_created_by_user"
)

func (t GoalType) IsValid() bool {
	switch t {
	case TypeListTracker, TypeDailyTracker, TypeListCreatedByUser:
		return true
	}
	return false
}

type Mode string

const (
	ModeChallenge Mode = "challenge"
	ModeFriendly  Mode = "friendly"
)

type GoalStatus string

const (
	StatusActive        GoalStatus = "active"
	StatusPendingFinish GoalStatus = "pending_finish"
	StatusFinished      GoalStatus = "finished"
)

// Normalized trata o campo ausente/vazio como active, como o app móvel grava.
func (s GoalStatus) Normalized() GoalStatus {
	if s == "" {
		return StatusActive
	}
	return s
}

type Goal struct {
	Id                 ulid.ULID      `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name               string         `gorm:"type:varchar(100);not null" json:"name"`
	TrackingMethod     TrackingMethod `gorm:"column:tracking_method;type:varchar(20);not null" json:"trackingMethod"`
	GoalType           GoalType       `gorm:"column:goal_type;type:varchar(30);not null;index:idx_goals_goal_type" json:"goalType"`
	Mode               Mode           `gorm:"column:challenge_or_friendly;type:varchar(10);not null" json:"challengeOrFriendly"`
	CreatorId          ulid.ULID      `gorm:"column:creator_id;type:varchar(26);not null;index:idx_goals_creator_id" json:"creatorId"`
	BuddyId            *ulid.ULID     `gorm:"column:buddy_id;type:varchar(26);index:idx_goals_buddy_id" json:"buddyId,omitempty"`
	KeepStreak         bool           `gorm:"column:keep_streak;default:false" json:"keepStreak"`
	TrackDailyQuantity bool           `gorm:"column:track_daily_quantity;default:false" json:"trackDailyQuantity"`
	UnitTracked        string         `gorm:"column:unit_tracked;type:varchar(50)" json:"unitTracked,omitempty"`
	CreatedListItems   []string       `gorm:"column:created_list_items;type:text;serializer:json" json:"createdListItems,omitempty"`
	WinningCondition   string         `gorm:"column:winning_condition;type:varchar(100)" json:"winningCondition,omitempty"`
	WinningNumber      *float64       `gorm:"column:winning_number" json:"winningNumber,omitempty"`
	EndDate            *time.Time     `gorm:"column:end_date;type:timestamp" json:"endDate,omitempty"`
	WinnersPrize       string         `gorm:"column:winners_prize;type:varchar(255)" json:"winnersPrize,omitempty"`
	Status             GoalStatus     `gorm:"column:goal_status;type:varchar(20);index:idx_goals_status" json:"goalStatus,omitempty"`
	WinnerUserId       *ulid.ULID     `gorm:"column:winner_user_id;type:varchar(26)" json:"winnerUserId,omitempty"`
	LoserUserId        *ulid.ULID     `gorm:"column:loser_user_id;type:varchar(26)" json:"loserUserId,omitempty"`
	CreatedAt          time.Time      `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Goal) TableName() string {
	return "goals"
}

func (g *Goal) IsChallenge() bool {
	return g.Mode == ModeChallenge
}

func (g *Goal) HasBuddy() bool {
	return g.BuddyId != nil
}

// Participants devolve criador e, se houver, o buddy.
func (g *Goal) Participants() []ulid.ULID {
	ids := []ulid.ULID{g.CreatorId}
	if g.BuddyId != nil {
		ids = append(ids, *g.BuddyId)
	}
	return ids
}

func (g *Goal) IsParticipant(userID ulid.ULID) bool {
	if g.CreatorId == userID {
		return true
	}
	return g.BuddyId != nil && *g.BuddyId == userID
}

// OtherParticipant devolve o outro lado da meta, se o usuário participar dela.
func (g *Goal) OtherParticipant(userID ulid.ULID) *ulid.ULID {
	if g.BuddyId == nil {
		return nil
	}
	switch userID {
	case g.CreatorId:
		other := *g.BuddyId
		return &other
	case *g.BuddyId:
		other := g.CreatorId
		return &other
	}
	return nil
}
