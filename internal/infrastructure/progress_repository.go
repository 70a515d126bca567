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
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

type progressRow struct {
	Id                   string  `gorm:"type:varchar(26);primaryKey"`
	GoalId               string  `gorm:"type:varchar(26);not null;uniqueIndex:idx_goal_progress_goal_user"`
	UserId               string  `gorm:"type:varchar(26);not null;uniqueIndex:idx_goal_progress_goal_user"`
	NumericValue         float64 `gorm:"default:0"`
	CompletedDays        string  `gorm:"type:text"`
	ListItems            string  `gorm:"type:text"`
	HasSeenWinnerMessage bool    `gorm:"default:false"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (progressRow) TableName() string {
	return "goal_progress"
}

func toDomainProgress(row *progressRow) (*goal.GoalProgress, error) {
	id, err := pkg.ParseULID(row.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	goalID, err := pkg.ParseULID(row.GoalId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	userID, err := pkg.ParseULID(row.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &goal.GoalProgress{
		Id:                   id,
		GoalId:               goalID,
		UserId:               userID,
		NumericValue:         row.NumericValue,
		CompletedDays:        decodeStringList(row.CompletedDays),
		ListItems:            decodeListEntries(row.ListItems),
		HasSeenWinnerMessage: row.HasSeenWinnerMessage,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}, nil
}

func toProgressRow(p *goal.GoalProgress) *progressRow {
	return &progressRow{
		Id:                   p.Id.String(),
		GoalId:               p.GoalId.String(),
		UserId:               p.UserId.String(),
		NumericValue:         p.NumericValue,
		CompletedDays:        encodeStringList(p.CompletedDays),
		ListItems:            encodeListEntries(p.ListItems),
		HasSeenWinnerMessage: p.HasSeenWinnerMessage,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func decodeListEntries(raw string) []goal.ListEntry {
	if raw == "" {
		return nil
	}
	var out []goal.ListEntry
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Warn().Err(err).Msg("Itens de lista gravados com JSON inválido; tratando como vazios")
		return nil
	}
	return out
}

func encodeListEntries(entries []goal.ListEntry) string {
	if len(entries) == 0 {
		return "[]"
	}
	encoded, err := json.Marshal(entries)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

func (r *ProgressRepository) GetByGoalAndUser(ctx context.Context, goalID, userID ulid.ULID) (*goal.GoalProgress, error) {
	var row progressRow
	err := r.DB.WithContext(ctx).Table("goal_progress").
		Where("goal_id = ? AND user_id = ?", goalID.String(), userID.String()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Linha ausente é estado normal: o participante ainda não interagiu.
			return nil, nil
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainProgress(&row)
}

func (r *ProgressRepository) ListByGoal(ctx context.Context, goalID ulid.ULID) ([]*goal.GoalProgress, error) {
	var rows []progressRow
	err := r.DB.WithContext(ctx).Table("goal_progress").
		Where("goal_id = ?", goalID.String()).
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	out := make([]*goal.GoalProgress, 0, len(rows))
	for i := range rows {
		p, err := toDomainProgress(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProgressRepository) Upsert(ctx context.Context, p *goal.GoalProgress) error {
	row := toProgressRow(p)
	err := r.DB.WithContext(ctx).Table("goal_progress").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "goal_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"numeric_value",
				"completed_days",
				"list_items",
				"has_seen_winner_message",
				"updated_at",
			}),
		}).
		Create(&row).Error
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}
