package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/goal"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/logger"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type GoalRepository struct {
	DB *gorm.DB
}

type goalRow struct {
	Id                 string  `gorm:"type:varchar(26);primaryKey"`
	Name               string  `gorm:"type:varchar(100);not null"`
	TrackingMethod     string  `gorm:"type:varchar(20);not null"`
	GoalType           string  `gorm:"type:varchar(30);not null;index"`
	ChallengeOrFriendly string `gorm:"type:varchar(10);not null"`
	CreatorId          string  `gorm:"type:varchar(26);not null;index"`
	BuddyId            *string `gorm:"type:varchar(26);index"`
	KeepStreak         bool    `gorm:"default:false"`
	TrackDailyQuantity bool    `gorm:"default:false"`
	UnitTracked        string  `gorm:"type:varchar(50)"`
	CreatedListItems   string  `gorm:"type:text"`
	WinningCondition   string  `gorm:"type:varchar(100)"`
	WinningNumber      *float64
	EndDate            *time.Time `gorm:"type:timestamp"`
	WinnersPrize       string     `gorm:"type:varchar(255)"`
	GoalStatus         string     `gorm:"type:varchar(20);index"`
	WinnerUserId       *string    `gorm:"type:varchar(26)"`
	LoserUserId        *string    `gorm:"type:varchar(26)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (goalRow) TableName() string {
	return "goals"
}

func toDomainGoal(row *goalRow) (*goal.Goal, error) {
	id, err := pkg.ParseULID(row.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	creatorID, err := pkg.ParseULID(row.CreatorId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	buddyID, err := pkg.ParseULIDPtr(row.BuddyId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	winnerID, err := pkg.ParseULIDPtr(row.WinnerUserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	loserID, err := pkg.ParseULIDPtr(row.LoserUserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &goal.Goal{
		Id:                 id,
		Name:               row.Name,
		TrackingMethod:     goal.TrackingMethod(row.TrackingMethod),
		GoalType:           goal.GoalType(row.GoalType),
		Mode:               goal.Mode(row.ChallengeOrFriendly),
		CreatorId:          creatorID,
		BuddyId:            buddyID,
		KeepStreak:         row.KeepStreak,
		TrackDailyQuantity: row.TrackDailyQuantity,
		UnitTracked:        row.UnitTracked,
		CreatedListItems:   decodeStringList(row.CreatedListItems),
		WinningCondition:   row.WinningCondition,
		WinningNumber:      row.WinningNumber,
		EndDate:            row.EndDate,
		WinnersPrize:       row.WinnersPrize,
		Status:             goal.GoalStatus(row.GoalStatus),
		WinnerUserId:       winnerID,
		LoserUserId:        loserID,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}, nil
}

func toGoalRow(g *goal.Goal) *goalRow {
	return &goalRow{
		Id:                  g.Id.String(),
		Name:                g.Name,
		TrackingMethod:      string(g.TrackingMethod),
		GoalType:            string(g.GoalType),
		ChallengeOrFriendly: string(g.Mode),
		CreatorId:           g.CreatorId.String(),
		BuddyId:             pkg.ULIDPtrToString(g.BuddyId),
		KeepStreak:          g.KeepStreak,
		TrackDailyQuantity:  g.TrackDailyQuantity,
		UnitTracked:         g.UnitTracked,
		CreatedListItems:    encodeStringList(g.CreatedListItems),
		WinningCondition:    g.WinningCondition,
		WinningNumber:       g.WinningNumber,
		EndDate:             g.EndDate,
		WinnersPrize:        g.WinnersPrize,
		GoalStatus:          string(g.Status),
		WinnerUserId:        pkg.ULIDPtrToString(g.WinnerUserId),
		LoserUserId:         pkg.ULIDPtrToString(g.LoserUserId),
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
}

// decodeStringList trata JSON inválido como lista vazia; dado malformado
// gravado pelo app nunca vira erro.
func decodeStringList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Warn().Err(err).Msg("Lista gravada com JSON inválido; tratando como vazia")
		return nil
	}
	return out
}

func encodeStringList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

func (r *GoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	row := toGoalRow(g)
	if err := r.DB.WithContext(ctx).Table("goals").Create(&row).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *GoalRepository) GetByID(ctx context.Context, id ulid.ULID) (*goal.Goal, error) {
	var row goalRow
	if err := r.DB.WithContext(ctx).Table("goals").Where("id = ?", id.String()).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrGoalNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainGoal(&row)
}

func (r *GoalRepository) GetByUserID(ctx context.Context, userID ulid.ULID, filters *goal.GoalFilters, pagination *pkg.PaginationParams) ([]*goal.Goal, int64, error) {
	query := r.DB.WithContext(ctx).Table("goals").
		Where("creator_id = ? OR buddy_id = ?", userID.String(), userID.String())

	if filters != nil {
		if filters.Status != nil {
			if *filters.Status == goal.StatusActive {
				query = query.Where("goal_status = ? OR goal_status IS NULL OR goal_status = ''", string(*filters.Status))
			} else {
				query = query.Where("goal_status = ?", string(*filters.Status))
			}
		}
		if filters.Mode != nil {
			query = query.Where("challenge_or_friendly = ?", string(*filters.Mode))
		}
	}

	goals, total, err := pkg.Paginate[goal.Goal, goalRow](query, pagination, "created_at DESC", toDomainGoal)
	if err != nil {
		if appErrors.IsAppError(err) {
			return nil, 0, err
		}
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return goals, total, nil
}

func (r *GoalRepository) UpdateFields(ctx context.Context, id ulid.ULID, fields map[string]interface{}) error {
	if err := r.DB.WithContext(ctx).Table("goals").Where("id = ?", id.String()).Updates(fields).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result := r.DB.WithContext(ctx).Table("goals").Where("id = ?", id.String()).Delete(&goalRow{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrGoalNotFound
	}
	return nil
}

func (r *GoalRepository) ListExpiredChallenges(ctx context.Context, now time.Time) ([]*goal.Goal, error) {
	endOfToday := pkg.TruncateToDay(now).AddDate(0, 0, 1)

	var rows []goalRow
	err := r.DB.WithContext(ctx).Table("goals").
		Where("challenge_or_friendly = ?", string(goal.ModeChallenge)).
		Where("end_date IS NOT NULL AND end_date < ?", endOfToday).
		Where("goal_status IS NULL OR goal_status IN ?", []string{"", string(goal.StatusActive), string(goal.StatusPendingFinish)}).
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	out := make([]*goal.Goal, 0, len(rows))
	for i := range rows {
		g, err := toDomainGoal(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}
