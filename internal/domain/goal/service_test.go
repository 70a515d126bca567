package goal_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/goal"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/notification"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/user"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type fakeGoalRepository struct {
	createFn                func(ctx context.Context, g *goal.Goal) error
	getByIDFn               func(ctx context.Context, id ulid.ULID) (*goal.Goal, error)
	getByUserIDFn           func(ctx context.Context, userID ulid.ULID, filters *goal.GoalFilters, pagination *pkg.PaginationParams) ([]*goal.Goal, int64, error)
	updateFieldsFn          func(ctx context.Context, id ulid.ULID, fields map[string]interface{}) error
	deleteFn                func(ctx context.Context, id ulid.ULID) error
	listExpiredChallengesFn func(ctx context.Context, now time.Time) ([]*goal.Goal, error)
}

func (f *fakeGoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	if f.createFn != nil {
		return f.createFn(ctx, g)
	}
	return nil
}

func (f *fakeGoalRepository) GetByID(ctx context.Context, id ulid.ULID) (*goal.Goal, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, appErrors.ErrGoalNotFound
}

func (f *fakeGoalRepository) GetByUserID(ctx context.Context, userID ulid.ULID, filters *goal.GoalFilters, pagination *pkg.PaginationParams) ([]*goal.Goal, int64, error) {
	if f.getByUserIDFn != nil {
		return f.getByUserIDFn(ctx, userID, filters, pagination)
	}
	return nil, 0, nil
}

func (f *fakeGoalRepository) UpdateFields(ctx context.Context, id ulid.ULID, fields map[string]interface{}) error {
	if f.updateFieldsFn != nil {
		return f.updateFieldsFn(ctx, id, fields)
	}
	return nil
}

func (f *fakeGoalRepository) Delete(ctx context.Context, id ulid.ULID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeGoalRepository) ListExpiredChallenges(ctx context.Context, now time.Time) ([]*goal.Goal, error) {
	if f.listExpiredChallengesFn != nil {
		return f.listExpiredChallengesFn(ctx, now)
	}
	return nil, nil
}

// fakeProgressRepository guarda as linhas em memória, chaveadas por
// (meta, usuário), reproduzindo a semântica de upsert do banco.
type fakeProgressRepository struct {
	rows     map[string]*goal.GoalProgress
	upsertFn func(ctx context.Context, p *goal.GoalProgress) error
}

func newFakeProgressRepository() *fakeProgressRepository {
	return &fakeProgressRepository{rows: make(map[string]*goal.GoalProgress)}
}

func progressKey(goalID, userID ulid.ULID) string {
	return goalID.String() + "/" + userID.String()
}

func (f *fakeProgressRepository) GetByGoalAndUser(ctx context.Context, goalID, userID ulid.ULID) (*goal.GoalProgress, error) {
	row, ok := f.rows[progressKey(goalID, userID)]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (f *fakeProgressRepository) ListByGoal(ctx context.Context, goalID ulid.ULID) ([]*goal.GoalProgress, error) {
	var out []*goal.GoalProgress
	for _, row := range f.rows {
		if row.GoalId == goalID {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeProgressRepository) Upsert(ctx context.Context, p *goal.GoalProgress) error {
	if f.upsertFn != nil {
		if err := f.upsertFn(ctx, p); err != nil {
			return err
		}
	}
	copied := *p
	f.rows[progressKey(p.GoalId, p.UserId)] = &copied
	return nil
}

type fakeUserRepository struct {
	users map[ulid.ULID]*user.User
}

func newFakeUserRepository(names map[ulid.ULID]string) *fakeUserRepository {
	users := make(map[ulid.ULID]*user.User, len(names))
	for id, name := range names {
		users[id] = &user.User{Id: id, Name: name}
	}
	return &fakeUserRepository{users: users}
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	f.users[u.Id] = u
	return nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, appErrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, appErrors.ErrUserNotFound
}

func (f *fakeUserRepository) Exists(ctx context.Context, id ulid.ULID) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

type fakeNotificationRepository struct {
	created  []*notification.Notification
	createFn func(ctx context.Context, n *notification.Notification) error
}

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, n); err != nil {
			return err
		}
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepository) GetByID(ctx context.Context, id ulid.ULID) (*notification.Notification, error) {
	return nil, appErrors.ErrNotificationNotFound
}

func (f *fakeNotificationRepository) GetByUserID(ctx context.Context, userID ulid.ULID, unreadOnly bool, pagination *pkg.PaginationParams) ([]*notification.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, id ulid.ULID) error {
	return nil
}

func (f *fakeNotificationRepository) forUser(userID ulid.ULID) []*notification.Notification {
	var out []*notification.Notification
	for _, n := range f.created {
		if n.UserId == userID {
			out = append(out, n)
		}
	}
	return out
}

type challengeFixture struct {
	creator       ulid.ULID
	buddy         ulid.ULID
	goal          *goal.Goal
	goalRepo      *fakeGoalRepository
	progressRepo  *fakeProgressRepository
	notifications *fakeNotificationRepository
	service       *goal.Service
}

func newChallengeFixture(t *testing.T, mutate func(*goal.Goal)) *challengeFixture {
	t.Helper()

	creator := ulid.Make()
	buddy := ulid.Make()
	g := challengeGoal(creator, buddy, mutate)

	goalRepo := &fakeGoalRepository{
		getByIDFn: func(ctx context.Context, id ulid.ULID) (*goal.Goal, error) {
			if id != g.Id {
				return nil, appErrors.ErrGoalNotFound
			}
			copied := *g
			return &copied, nil
		},
		updateFieldsFn: func(ctx context.Context, id ulid.ULID, fields map[string]interface{}) error {
			if status, ok := fields["goal_status"].(string); ok {
				g.Status = goal.GoalStatus(status)
			}
			if winner, ok := fields["winner_user_id"].(string); ok {
				id, err := pkg.ParseULID(winner)
				if err != nil {
					return err
				}
				g.WinnerUserId = &id
			}
			if loser, ok := fields["loser_user_id"].(string); ok {
				id, err := pkg.ParseULID(loser)
				if err != nil {
					return err
				}
				g.LoserUserId = &id
			}
			return nil
		},
	}

	progressRepo := newFakeProgressRepository()
	notifications := &fakeNotificationRepository{}

	userSvc := user.NewService(newFakeUserRepository(map[ulid.ULID]string{
		creator: "Alice",
		buddy:   "Bruno",
	}))

	svc := goal.NewService(goalRepo, progressRepo, userSvc, notification.NewService(notifications, nil))
	svc.Now = func() time.Time { return day("2025-03-10") }

	return &challengeFixture{
		creator:       creator,
		buddy:         buddy,
		goal:          g,
		goalRepo:      goalRepo,
		progressRepo:  progressRepo,
		notifications: notifications,
		service:       svc,
	}
}

func submitItems(t *testing.T, fx *challengeFixture, userID ulid.ULID, n int) *goal.GoalProgress {
	t.Helper()

	items := make([]goal.ListEntry, n)
	for i := range items {
		items[i] = goal.ListEntry{Title: "book", CreatedAt: day("2025-03-10")}
	}
	row, err := fx.service.SubmitProgress(context.Background(), fx.goal.Id, userID, goal.ProgressDelta{ListItems: &items})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return row
}

func TestSubmitProgressResolvesChallenge(t *testing.T) {
	t.Parallel()

	target := 5.0
	fx := newChallengeFixture(t, func(g *goal.Goal) {
		g.WinningCondition = "First to reach 5 books"
		g.WinningNumber = &target
	})

	// Buddy registra 2 itens: ninguém vence ainda.
	submitItems(t, fx, fx.buddy, 2)
	if fx.goal.Status != goal.StatusActive {
		t.Fatalf("expected active, got %s", fx.goal.Status)
	}

	// A atualização do buddy notifica o criador com o texto do app.
	creatorNotifications := fx.notifications.forUser(fx.creator)
	if len(creatorNotifications) != 1 {
		t.Fatalf("expected 1 notification for creator, got %d", len(creatorNotifications))
	}
	if creatorNotifications[0].Message != `Bruno updated progress on "Read more books"` {
		t.Fatalf("unexpected message: %q", creatorNotifications[0].Message)
	}
	if creatorNotifications[0].Title != "Goal Update" {
		t.Fatalf("unexpected title: %q", creatorNotifications[0].Title)
	}

	// Criador alcança o alvo: meta vai a pending_finish com vencedor gravado.
	submitItems(t, fx, fx.creator, 5)
	if fx.goal.Status != goal.StatusPendingFinish {
		t.Fatalf("expected pending_finish, got %s", fx.goal.Status)
	}
	if fx.goal.WinnerUserId == nil || *fx.goal.WinnerUserId != fx.creator {
		t.Fatalf("expected creator as winner, got %v", fx.goal.WinnerUserId)
	}
	if fx.goal.LoserUserId == nil || *fx.goal.LoserUserId != fx.buddy {
		t.Fatalf("expected buddy as loser, got %v", fx.goal.LoserUserId)
	}

	// Os dois lados recebem a mesma mensagem de conclusão, sem revelar o
	// vencedor.
	wantCompletion := `The "Read more books" goal has been completed. Check it to see the results!`
	for _, userID := range []ulid.ULID{fx.creator, fx.buddy} {
		var found *notification.Notification
		for _, n := range fx.notifications.forUser(userID) {
			if n.Title == "Goal Completed" {
				found = n
			}
		}
		if found == nil {
			t.Fatalf("expected completion notification for %s", userID)
		}
		if found.Message != wantCompletion {
			t.Fatalf("unexpected completion message: %q", found.Message)
		}
		if strings.Contains(found.Message, "Alice") || strings.Contains(found.Message, "Bruno") {
			t.Fatalf("completion message must not reveal the winner: %q", found.Message)
		}
	}
}

func TestSubmitProgressFriendlyGoalNeverTransitions(t *testing.T) {
	t.Parallel()

	fx := newChallengeFixture(t, func(g *goal.Goal) {
		g.Mode = goal.ModeFriendly
	})

	submitItems(t, fx, fx.creator, 50)
	if fx.goal.Status != goal.StatusActive {
		t.Fatalf("friendly goal must stay active, got %s", fx.goal.Status)
	}
	if fx.goal.WinnerUserId != nil {
		t.Fatalf("friendly goal must never record a winner, got %v", fx.goal.WinnerUserId)
	}

	// A notificação de progresso ainda sai.
	if len(fx.notifications.forUser(fx.buddy)) != 1 {
		t.Fatalf("expected buddy to be notified")
	}
}

func TestSubmitProgressReplaceSemantics(t *testing.T) {
	t.Parallel()

	fx := newChallengeFixture(t, nil)

	submitItems(t, fx, fx.creator, 4)
	row := submitItems(t, fx, fx.creator, 2)
	if len(row.ListItems) != 2 {
		t.Fatalf("supplied field must replace the stored value, got %d items", len(row.ListItems))
	}

	stored, err := fx.progressRepo.GetByGoalAndUser(context.Background(), fx.goal.Id, fx.creator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored.ListItems) != 2 {
		t.Fatalf("expected 2 stored items, got %d", len(stored.ListItems))
	}
}

func TestSubmitProgressGuards(t *testing.T) {
	t.Parallel()

	fx := newChallengeFixture(t, nil)
	ctx := context.Background()

	t.Run("unknown goal is a hard failure", func(t *testing.T) {
		_, err := fx.service.SubmitProgress(ctx, ulid.Make(), fx.creator, goal.ProgressDelta{})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrGoalNotFound.Code {
			t.Fatalf("expected goal not found, got %v", err)
		}
	})

	t.Run("non participant is rejected", func(t *testing.T) {
		_, err := fx.service.SubmitProgress(ctx, fx.goal.Id, ulid.Make(), goal.ProgressDelta{})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrNotParticipant.Code {
			t.Fatalf("expected not participant, got %v", err)
		}
	})
}

func TestSubmitProgressNotificationFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	fx := newChallengeFixture(t, nil)
	fx.notifications.createFn = func(ctx context.Context, n *notification.Notification) error {
		return appErrors.ErrDatabase
	}

	row := submitItems(t, fx, fx.creator, 3)
	if len(row.ListItems) != 3 {
		t.Fatalf("progress must persist even when notifications fail, got %d items", len(row.ListItems))
	}
}

func TestMarkWinnerMessageSeenFinishesGoal(t *testing.T) {
	t.Parallel()

	winner := ulid.Make()
	fx := newChallengeFixture(t, func(g *goal.Goal) {
		g.Status = goal.StatusPendingFinish
		g.WinnerUserId = &winner
	})
	ctx := context.Background()

	// Só um lado viu: segue em pending_finish.
	if err := fx.service.MarkWinnerMessageSeen(ctx, fx.goal.Id, fx.creator); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fx.goal.Status != goal.StatusPendingFinish {
		t.Fatalf("expected pending_finish, got %s", fx.goal.Status)
	}

	// Reaplicar do mesmo lado é no-op.
	if err := fx.service.MarkWinnerMessageSeen(ctx, fx.goal.Id, fx.creator); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fx.goal.Status != goal.StatusPendingFinish {
		t.Fatalf("expected pending_finish after repeat, got %s", fx.goal.Status)
	}

	// O outro lado viu: meta finalizada.
	if err := fx.service.MarkWinnerMessageSeen(ctx, fx.goal.Id, fx.buddy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fx.goal.Status != goal.StatusFinished {
		t.Fatalf("expected finished, got %s", fx.goal.Status)
	}

	// Marcar de novo depois de finalizada continua sendo no-op.
	if err := fx.service.MarkWinnerMessageSeen(ctx, fx.goal.Id, fx.buddy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fx.goal.Status != goal.StatusFinished {
		t.Fatalf("finished is terminal, got %s", fx.goal.Status)
	}
}

func TestSweepExpiredChallenges(t *testing.T) {
	t.Parallel()

	endDate := day("2025-03-01")
	fx := newChallengeFixture(t, func(g *goal.Goal) {
		g.WinningCondition = "Whoever does the most by the end date"
		g.EndDate = &endDate
	})
	fx.goalRepo.listExpiredChallengesFn = func(ctx context.Context, now time.Time) ([]*goal.Goal, error) {
		copied := *fx.goal
		return []*goal.Goal{&copied}, nil
	}

	ctx := context.Background()

	// Progresso gravado antes da varredura, sem disparar avaliação aqui.
	creatorRow := goal.EmptyProgress(fx.goal.Id, fx.creator)
	creatorRow.ListItems = []goal.ListEntry{{Title: "a"}, {Title: "b"}}
	if err := fx.progressRepo.Upsert(ctx, creatorRow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	swept, err := fx.service.SweepExpiredChallenges(ctx, day("2025-03-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if swept != 1 {
		t.Fatalf("expected 1 swept goal, got %d", swept)
	}
	if fx.goal.Status != goal.StatusPendingFinish {
		t.Fatalf("expected pending_finish after sweep, got %s", fx.goal.Status)
	}
	if fx.goal.WinnerUserId == nil || *fx.goal.WinnerUserId != fx.creator {
		t.Fatalf("expected creator as winner, got %v", fx.goal.WinnerUserId)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	t.Parallel()

	creator := ulid.Make()
	buddy := ulid.Make()
	target := 5.0

	base := func() *goal.CreateGoalRequest {
		return &goal.CreateGoalRequest{
			Name:             "Read more books",
			TrackingMethod:   goal.TrackingList,
			GoalType:         goal.TypeListTracker,
			Mode:             goal.ModeChallenge,
			CreatorId:        creator,
			BuddyId:          &buddy,
			WinningCondition: "First to reach 5 books",
			WinningNumber:    &target,
		}
	}

	tests := []struct {
		name   string
		mutate func(*goal.CreateGoalRequest)
		valid  bool
	}{
		{
			name:  "valid challenge",
			valid: true,
		},
		{
			name:   "blank name",
			mutate: func(r *goal.CreateGoalRequest) { r.Name = "   " },
		},
		{
			name:   "unknown goal type",
			mutate: func(r *goal.CreateGoalRequest) { r.GoalType = "whatever" },
		},
		{
			name:   "challenge without buddy",
			mutate: func(r *goal.CreateGoalRequest) { r.BuddyId = nil },
		},
		{
			name:   "challenge without condition",
			mutate: func(r *goal.CreateGoalRequest) { r.WinningCondition = "" },
		},
		{
			name:   "reach condition without target",
			mutate: func(r *goal.CreateGoalRequest) { r.WinningNumber = nil },
		},
		{
			name: "end date condition without date",
			mutate: func(r *goal.CreateGoalRequest) {
				r.WinningCondition = "Whoever does the most by the end date"
				r.WinningNumber = nil
			},
		},
		{
			name:   "creator as own buddy",
			mutate: func(r *goal.CreateGoalRequest) { r.BuddyId = &creator },
		},
		{
			name: "user list without items",
			mutate: func(r *goal.CreateGoalRequest) {
				r.GoalType = goal.TypeListCreatedByUser
			},
		},
		{
			name: "friendly goal needs no condition",
			mutate: func(r *goal.CreateGoalRequest) {
				r.Mode = goal.ModeFriendly
				r.WinningCondition = ""
				r.WinningNumber = nil
			},
			valid: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			if tt.mutate != nil {
				tt.mutate(req)
			}
			err := goal.Validate(req)
			if tt.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.valid && err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestCreateGoalSeedsProgressRows(t *testing.T) {
	t.Parallel()

	creator := ulid.Make()
	buddy := ulid.Make()
	target := 5.0

	var created *goal.Goal
	goalRepo := &fakeGoalRepository{
		createFn: func(ctx context.Context, g *goal.Goal) error {
			created = g
			return nil
		},
	}
	progressRepo := newFakeProgressRepository()
	userSvc := user.NewService(newFakeUserRepository(map[ulid.ULID]string{
		creator: "Alice",
		buddy:   "Bruno",
	}))
	svc := goal.NewService(goalRepo, progressRepo, userSvc, notification.NewService(&fakeNotificationRepository{}, nil))

	g, err := svc.CreateGoal(context.Background(), &goal.CreateGoalRequest{
		Name:             "Read more books",
		TrackingMethod:   goal.TrackingList,
		GoalType:         goal.TypeListTracker,
		Mode:             goal.ModeChallenge,
		CreatorId:        creator,
		BuddyId:          &buddy,
		WinningCondition: "First to reach 5 books",
		WinningNumber:    &target,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.Id != g.Id {
		t.Fatalf("expected goal to be persisted")
	}
	if g.Status != goal.StatusActive {
		t.Fatalf("expected active status, got %s", g.Status)
	}
	if len(progressRepo.rows) != 2 {
		t.Fatalf("expected empty progress rows for both participants, got %d", len(progressRepo.rows))
	}

	t.Run("unknown buddy is rejected", func(t *testing.T) {
		unknown := ulid.Make()
		_, err := svc.CreateGoal(context.Background(), &goal.CreateGoalRequest{
			Name:             "Run",
			TrackingMethod:   goal.TrackingList,
			GoalType:         goal.TypeListTracker,
			Mode:             goal.ModeChallenge,
			CreatorId:        creator,
			BuddyId:          &unknown,
			WinningCondition: "First to reach 5",
			WinningNumber:    &target,
		})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrUserNotFound.Code {
			t.Fatalf("expected user not found, got %v", err)
		}
	})
}

func TestGetProgressRowsSynthesizesEmptyRows(t *testing.T) {
	t.Parallel()

	fx := newChallengeFixture(t, nil)

	g, rows, err := fx.service.GetProgressRows(context.Background(), fx.goal.Id, fx.creator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Id != fx.goal.Id {
		t.Fatalf("expected goal %s, got %s", fx.goal.Id, g.Id)
	}
	if len(rows) != 2 {
		t.Fatalf("expected rows for both participants, got %d", len(rows))
	}
	for _, row := range rows {
		if row.GoalId != fx.goal.Id {
			t.Fatalf("row bound to wrong goal: %s", row.GoalId)
		}
		if len(row.ListItems) != 0 || len(row.CompletedDays) != 0 {
			t.Fatalf("expected empty synthesized rows, got %+v", row)
		}
	}

	t.Run("non participant cannot read", func(t *testing.T) {
		_, _, err := fx.service.GetProgressRows(context.Background(), fx.goal.Id, ulid.Make())
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrNotParticipant.Code {
			t.Fatalf("expected not participant, got %v", err)
		}
	})
}

func TestDeleteGoalOnlyByCreator(t *testing.T) {
	t.Parallel()

	fx := newChallengeFixture(t, nil)
	var deleted bool
	fx.goalRepo.deleteFn = func(ctx context.Context, id ulid.ULID) error {
		deleted = true
		return nil
	}

	err := fx.service.DeleteGoal(context.Background(), fx.goal.Id, fx.buddy)
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrResourceNotOwned.Code {
		t.Fatalf("expected resource not owned, got %v", err)
	}
	if deleted {
		t.Fatal("buddy must not delete the goal")
	}

	if err := fx.service.DeleteGoal(context.Background(), fx.goal.Id, fx.creator); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected goal to be deleted")
	}
}
