package goal

import (
	"sort"
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"
)

// Streak calcula a sequência de dias consecutivos terminando hoje (current) e
// a maior sequência histórica (longest) a partir de dias YYYY-MM-DD.
// Duplicatas e desordem são toleradas; datas inválidas são descartadas.
func Streak(completedDays []string, today time.Time) (current int, longest int) {
	seen := make(map[time.Time]bool, len(completedDays))
	for _, raw := range completedDays {
		day, err := pkg.ParseDay(raw)
		if err != nil {
			continue
		}
		seen[day] = true
	}

	if len(seen) == 0 {
		return 0, 0
	}

	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	day := pkg.TruncateToDay(today)
	for seen[day] {
		current++
		day = day.AddDate(0, 0, -1)
	}

	return current, longest
}
