package goal

import (
	"encoding/json"
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// ListEntry é um item da lista de progresso. Para metas com quantidade diária
// o título carrega o valor numérico registrado naquele dia.
type ListEntry struct {
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type listEntryJSON struct {
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

func (e ListEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(listEntryJSON{
		Title:     e.Title,
		CreatedAt: pkg.FormatTimestamp(e.CreatedAt),
	})
}

func (e *ListEntry) UnmarshalJSON(data []byte) error {
	var raw listEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Title = raw.Title
	if raw.CreatedAt != "" {
		parsed, err := pkg.ParseTimestamp(raw.CreatedAt)
		if err == nil {
			e.CreatedAt = parsed
		}
	}
	return nil
}

// GoalProgress é a linha de progresso de um participante em uma meta.
// No máximo uma linha por par (meta, participante).
type GoalProgress struct {
	Id                   ulid.ULID   `gorm:"type:varchar(26);primaryKey" json:"id"`
	GoalId               ulid.ULID   `gorm:"column:goal_id;type:varchar(26);not null;uniqueIndex:idx_goal_progress_goal_user" json:"goalId"`
	UserId               ulid.ULID   `gorm:"column:user_id;type:varchar(26);not null;uniqueIndex:idx_goal_progress_goal_user" json:"userId"`
	NumericValue         float64     `gorm:"column:numeric_value;default:0" json:"numericValue"`
	CompletedDays        []string    `gorm:"column:completed_days;type:text;serializer:json" json:"completedDays"`
	ListItems            []ListEntry `gorm:"column:list_items;type:text;serializer:json" json:"listItems"`
	HasSeenWinnerMessage bool        `gorm:"column:has_seen_winner_message;default:false" json:"hasSeenWinnerMessage"`
	CreatedAt            time.Time   `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt            time.Time   `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (GoalProgress) TableName() string {
	return "goal_progress"
}

// EmptyProgress sintetiza uma linha vazia para participantes que ainda não
// interagiram com a meta. Nunca é tratado como erro.
func EmptyProgress(goalID, userID ulid.ULID) *GoalProgress {
	return &GoalProgress{
		GoalId:        goalID,
		UserId:        userID,
		CompletedDays: []string{},
		ListItems:     []ListEntry{},
	}
}

// ProgressDelta carrega os campos enviados em uma atualização de progresso.
// Campo presente substitui o valor gravado por inteiro, como no app móvel.
type ProgressDelta struct {
	NumericValue  *float64
	CompletedDays *[]string
	ListItems     *[]ListEntry
}

// Apply aplica a semântica de substituição por campo.
func (d ProgressDelta) Apply(p *GoalProgress) {
	if d.NumericValue != nil {
		p.NumericValue = *d.NumericValue
	}
	if d.CompletedDays != nil {
		p.CompletedDays = append([]string(nil), (*d.CompletedDays)...)
	}
	if d.ListItems != nil {
		p.ListItems = append([]ListEntry(nil), (*d.ListItems)...)
	}
}
