package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/notification"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/user"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/logger"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// Service coordena atualizações de progresso: persiste o delta, reavalia a
// condição de vitória, aplica transições de ciclo de vida e dispara
// notificações. Duas invocações concorrentes (criador e buddy em aparelhos
// diferentes) podem reavaliar com leituras defasadas; sem transação no
// storage, o empate na mesma janela é resolvido por "primeiro a gravar
// vence", porque a transição já aplicada vira no-op. Comportamento herdado
// do app móvel; não acrescentar locks aqui.
type Service struct {
	Repository         Repository
	ProgressRepository ProgressRepository
	UserService        *user.Service
	Notifications      *notification.Service
	Now                func() time.Time
}

func NewService(
	repo Repository,
	progressRepo ProgressRepository,
	userSvc *user.Service,
	notifications *notification.Service,
) *Service {
	return &Service{
		Repository:         repo,
		ProgressRepository: progressRepo,
		UserService:        userSvc,
		Notifications:      notifications,
		Now:                time.Now,
	}
}

type CreateGoalRequest struct {
	Name               string
	TrackingMethod     TrackingMethod
	GoalType           GoalType
	Mode               Mode
	CreatorId          ulid.ULID
	BuddyId            *ulid.ULID
	KeepStreak         bool
	TrackDailyQuantity bool
	UnitTracked        string
	CreatedListItems   []string
	WinningCondition   string
	WinningNumber      *float64
	EndDate            *time.Time
	WinnersPrize       string
}

func Validate(req *CreateGoalRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}
	if !req.GoalType.IsValid() {
		return appErrors.NewValidationError("goal_type", "tipo de meta desconhecido")
	}
	if req.Mode != ModeChallenge && req.Mode != ModeFriendly {
		return appErrors.NewValidationError("challenge_or_friendly", "deve ser challenge ou friendly")
	}
	if req.GoalType == TypeListCreatedByUser && len(req.CreatedListItems) == 0 {
		return appErrors.NewValidationError("created_list_items", "a lista não pode ser vazia")
	}

	if req.Mode == ModeChallenge {
		if req.BuddyId == nil {
			return appErrors.NewValidationError("buddy_id", "um desafio precisa de um buddy")
		}
		if req.WinningCondition == "" {
			return appErrors.NewValidationError("winning_condition", "é obrigatória em um desafio")
		}
		kind := ParseWinningCondition(req.WinningCondition)
		if kind.RequiresTargetNumber() && req.WinningNumber == nil {
			return appErrors.NewValidationError("winning_number", "é obrigatório para esta condição")
		}
		if kind.RequiresEndDate() && req.EndDate == nil {
			return appErrors.NewValidationError("end_date", "é obrigatória para esta condição")
		}
	}

	if req.BuddyId != nil && *req.BuddyId == req.CreatorId {
		return appErrors.NewValidationError("buddy_id", "criador não pode ser o próprio buddy")
	}

	return nil
}

// CreateGoal grava a meta e as linhas de progresso vazias dos participantes,
// para a coluna do buddy existir antes de ele interagir com a meta.
func (s *Service) CreateGoal(ctx context.Context, req *CreateGoalRequest) (*Goal, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	if err := s.UserService.Exists(ctx, req.CreatorId); err != nil {
		return nil, err
	}
	if req.BuddyId != nil {
		if err := s.UserService.Exists(ctx, *req.BuddyId); err != nil {
			return nil, err
		}
	}

	now := s.now()
	entity := &Goal{
		Id:                 pkg.GenerateULIDObject(),
		Name:               strings.TrimSpace(req.Name),
		TrackingMethod:     req.TrackingMethod,
		GoalType:           req.GoalType,
		Mode:               req.Mode,
		CreatorId:          req.CreatorId,
		BuddyId:            req.BuddyId,
		KeepStreak:         req.KeepStreak,
		TrackDailyQuantity: req.TrackDailyQuantity,
		UnitTracked:        req.UnitTracked,
		CreatedListItems:   req.CreatedListItems,
		WinningCondition:   req.WinningCondition,
		WinningNumber:      req.WinningNumber,
		EndDate:            req.EndDate,
		WinnersPrize:       req.WinnersPrize,
		Status:             StatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, err
	}

	for _, participant := range entity.Participants() {
		row := EmptyProgress(entity.Id, participant)
		row.Id = pkg.GenerateULIDObject()
		row.CreatedAt = now
		row.UpdatedAt = now
		if err := s.ProgressRepository.Upsert(ctx, row); err != nil {
			logger.Warn().
				Err(err).
				Str("goal_id", entity.Id.String()).
				Str("user_id", participant.String()).
				Msg("Falha ao criar linha de progresso inicial")
		}
	}

	return entity, nil
}

func (s *Service) GetGoalByID(ctx context.Context, goalID, userID ulid.ULID) (*Goal, error) {
	g, err := s.Repository.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if !g.IsParticipant(userID) {
		return nil, appErrors.ErrNotParticipant
	}
	return g, nil
}

func (s *Service) GetGoalsByUserID(ctx context.Context, userID ulid.ULID, filters *GoalFilters, pagination *pkg.PaginationParams) ([]*Goal, int64, error) {
	return s.Repository.GetByUserID(ctx, userID, filters, pagination)
}

// DeleteGoal remove a meta. Só o criador pode excluir; o buddy sai da meta
// pelo app, não apagando o registro.
func (s *Service) DeleteGoal(ctx context.Context, goalID, userID ulid.ULID) error {
	g, err := s.Repository.GetByID(ctx, goalID)
	if err != nil {
		return err
	}
	if g.CreatorId != userID {
		return appErrors.ErrResourceNotOwned
	}
	return s.Repository.Delete(ctx, goalID)
}

// GetProgressRows devolve o progresso dos dois lados, sintetizando linhas
// vazias para quem ainda não registrou nada.
func (s *Service) GetProgressRows(ctx context.Context, goalID, userID ulid.ULID) (*Goal, []*GoalProgress, error) {
	g, err := s.GetGoalByID(ctx, goalID, userID)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]*GoalProgress, 0, 2)
	for _, participant := range g.Participants() {
		row, err := s.ProgressRepository.GetByGoalAndUser(ctx, goalID, participant)
		if err != nil {
			return nil, nil, err
		}
		if row == nil {
			row = EmptyProgress(goalID, participant)
		}
		rows = append(rows, row)
	}

	return g, rows, nil
}

// SubmitProgress aplica o delta de um participante e dirige o restante do
// fluxo: notificação ao outro lado e, em desafios, reavaliação do vencedor.
// Meta inexistente é falha dura; todo o resto a jusante é melhor esforço.
func (s *Service) SubmitProgress(ctx context.Context, goalID, userID ulid.ULID, delta ProgressDelta) (*GoalProgress, error) {
	g, err := s.Repository.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if !g.IsParticipant(userID) {
		return nil, appErrors.ErrNotParticipant
	}

	row, err := s.ProgressRepository.GetByGoalAndUser(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if row == nil {
		row = EmptyProgress(goalID, userID)
		row.Id = pkg.GenerateULIDObject()
		row.CreatedAt = now
	}

	delta.Apply(row)
	row.UpdatedAt = now

	if err := s.ProgressRepository.Upsert(ctx, row); err != nil {
		return nil, err
	}

	s.notifyCounterpart(ctx, g, userID)

	if g.IsChallenge() {
		s.resolveChallenge(ctx, g, now)
	}

	return row, nil
}

// notifyCounterpart avisa o outro participante. As duas verificações são
// independentes, como no app: quem não é o buddy notifica o buddy, quem não
// é o criador notifica o criador.
func (s *Service) notifyCounterpart(ctx context.Context, g *Goal, updaterID ulid.ULID) {
	updaterName := "Your buddy"
	if name, err := s.UserService.DisplayName(ctx, updaterID); err == nil {
		updaterName = name
	} else {
		logger.Warn().
			Err(err).
			Str("user_id", updaterID.String()).
			Msg("Falha ao buscar nome do usuário para a notificação")
	}

	message := fmt.Sprintf("%s updated progress on \"%s\"", updaterName, g.Name)

	if g.BuddyId != nil && updaterID != *g.BuddyId {
		s.attemptNotify(ctx, *g.BuddyId, updaterID, g, notification.TypeGoalUpdate, "Goal Update", message)
	}
	if updaterID != g.CreatorId {
		s.attemptNotify(ctx, g.CreatorId, updaterID, g, notification.TypeGoalUpdate, "Goal Update", message)
	}
}

// attemptNotify é o "tenta, registra, segue em frente" do coordenador:
// nenhuma falha de notificação derruba a operação que a originou.
func (s *Service) attemptNotify(ctx context.Context, to, relatedUser ulid.ULID, g *Goal, typ notification.Type, title, message string) {
	related := relatedUser
	goalID := g.Id
	_, err := s.Notifications.Notify(ctx, &notification.Notification{
		UserId:        to,
		Type:          typ,
		Title:         title,
		Message:       message,
		RelatedUserId: &related,
		RelatedGoalId: &goalID,
	})
	if err != nil {
		logger.Warn().
			Err(err).
			Str("goal_id", g.Id.String()).
			Str("user_id", to.String()).
			Str("type", string(typ)).
			Msg("Falha ao criar notificação; operação principal segue")
	}
}

// resolveChallenge relê o progresso dos dois lados, avalia a condição de
// vitória e aplica a primeira transição do ciclo de vida. Toda falha aqui é
// registrada e engolida: o progresso já foi persistido.
func (s *Service) resolveChallenge(ctx context.Context, g *Goal, now time.Time) {
	if g.BuddyId == nil {
		return
	}

	creatorRow, err := s.ProgressRepository.GetByGoalAndUser(ctx, g.Id, g.CreatorId)
	if err != nil {
		logger.Warn().Err(err).Str("goal_id", g.Id.String()).Msg("Falha ao reler progresso do criador")
		return
	}
	buddyRow, err := s.ProgressRepository.GetByGoalAndUser(ctx, g.Id, *g.BuddyId)
	if err != nil {
		logger.Warn().Err(err).Str("goal_id", g.Id.String()).Msg("Falha ao reler progresso do buddy")
		return
	}

	winnerID := EvaluateWinner(g, creatorRow, buddyRow, now)
	if winnerID == nil {
		return
	}

	if !CanMarkPendingFinish(g) {
		// Já em pending_finish ou finished: reavaliar é no-op.
		return
	}

	fields := PendingFinishFields(g, *winnerID)
	fields["updated_at"] = now
	if err := s.Repository.UpdateFields(ctx, g.Id, fields); err != nil {
		logger.Warn().Err(err).Str("goal_id", g.Id.String()).Msg("Falha ao gravar transição pending_finish")
		return
	}

	logger.Info().
		Str("goal_id", g.Id.String()).
		Str("winner_user_id", winnerID.String()).
		Msg("Desafio resolvido; aguardando os dois participantes verem o resultado")

	// O texto é idêntico para os dois lados e não revela o vencedor; cada
	// participante descobre o resultado ao abrir a meta.
	message := fmt.Sprintf("The \"%s\" goal has been completed. Check it to see the results!", g.Name)
	s.attemptNotify(ctx, g.CreatorId, *g.BuddyId, g, notification.TypeGoalUpdate, "Goal Completed", message)
	s.attemptNotify(ctx, *g.BuddyId, g.CreatorId, g, notification.TypeGoalUpdate, "Goal Completed", message)
}

// MarkWinnerMessageSeen marca a flag do participante e aplica a segunda
// transição quando os dois lados já viram a mensagem. Idempotente.
func (s *Service) MarkWinnerMessageSeen(ctx context.Context, goalID, userID ulid.ULID) error {
	g, err := s.Repository.GetByID(ctx, goalID)
	if err != nil {
		return err
	}
	if !g.IsParticipant(userID) {
		return appErrors.ErrNotParticipant
	}

	row, err := s.ProgressRepository.GetByGoalAndUser(ctx, goalID, userID)
	if err != nil {
		return err
	}
	now := s.now()
	if row == nil {
		row = EmptyProgress(goalID, userID)
		row.Id = pkg.GenerateULIDObject()
		row.CreatedAt = now
	}

	if !row.HasSeenWinnerMessage {
		row.HasSeenWinnerMessage = true
		row.UpdatedAt = now
		if err := s.ProgressRepository.Upsert(ctx, row); err != nil {
			return err
		}
	}

	if !CanFinish(g) {
		return nil
	}

	rows, err := s.ProgressRepository.ListByGoal(ctx, goalID)
	if err != nil {
		return err
	}
	if !AllSeenWinnerMessage(g, rows) {
		return nil
	}

	return s.Repository.UpdateFields(ctx, goalID, map[string]interface{}{
		"goal_status": string(StatusFinished),
		"updated_at":  now,
	})
}

// SweepExpiredChallenges reavalia desafios com data final já passada. Pensada
// para execução periódica; falha em uma meta não interrompe as demais.
func (s *Service) SweepExpiredChallenges(ctx context.Context, now time.Time) (int, error) {
	goals, err := s.Repository.ListExpiredChallenges(ctx, now)
	if err != nil {
		return 0, err
	}

	for _, g := range goals {
		s.resolveChallenge(ctx, g, now)
	}

	return len(goals), nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
