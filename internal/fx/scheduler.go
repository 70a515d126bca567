package fx

import (
	"context"
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/config"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/goal"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/logger"

	"go.uber.org/fx"
)

// SchedulerModule roda a varredura periódica de desafios com data final já
// passada. A atualização de progresso já reavalia o vencedor; a varredura
// cobre desafios em que ninguém mais registrou nada depois do fim.
var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(startSweep),
)

func startSweep(lc fx.Lifecycle, cfg *config.Config, goalSvc *goal.Service) {
	if !cfg.Sweep.Enabled {
		logger.Info().Msg("Varredura de desafios expirados desabilitada")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(cfg.Sweep.Interval)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return
					case now := <-ticker.C:
						swept, err := goalSvc.SweepExpiredChallenges(ctx, now)
						if err != nil {
							logger.Warn().Err(err).Msg("Falha na varredura de desafios expirados")
							continue
						}
						if swept > 0 {
							logger.Info().
								Int("goals", swept).
								Msg("Varredura de desafios expirados concluída")
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}
