// Package seed fills a development database with demo users and a
// demo workforce snapshot so the dashboard has something to show.
package seed

import (
	"log/slog"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/repository"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/scheduler"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/utils"
)

// SeedUsers inserts n random users with the shared seed password.
func SeedUsers(r *repository.Repository, n int, password, emailDomain string) {
	cnt := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(password, emailDomain)
		if err != nil {
			slog.Error("no se pudo generar el usuario", slog.String("error", err.Error()))
			continue
		}

		if err := r.CreateUser(user); err != nil {
			slog.Error("no se pudo insertar el usuario", slog.String("error", err.Error()))
			continue
		}
		cnt++
	}

	slog.Info("usuarios insertados", slog.Int("count", cnt))
}

// SeedSnapshot builds a demo snapshot for one date: n agents, random
// shifts, breaks computed by the real scheduler. It replaces whatever
// snapshot the date had.
func SeedSnapshot(r *repository.Repository, date string, n int) {
	snapshot := &domain.WorkforceSnapshot{Date: date}

	for i := 0; i < n; i++ {
		rec := utils.GenerateRandomShift(utils.GenerateRandomAgentName(), date)
		snapshot.Records = append(snapshot.Records, rec)
		snapshot.Breaks = append(snapshot.Breaks, scheduler.ScheduleBreaks(rec)...)
	}
	snapshot.WorkforceSize = len(snapshot.Records)

	verdict := scheduler.ValidateDistribution(snapshot)
	if !verdict.Valid {
		slog.Warn("el snapshot de demo excede el tope de breaks",
			slog.String("minute", *verdict.ViolatingMinute),
			slog.Int("occupancy", verdict.Occupancy),
			slog.Int("cap", verdict.Cap),
		)
	}

	if err := r.ReplaceSnapshot(snapshot); err != nil {
		slog.Error("no se pudo insertar el snapshot", slog.String("error", err.Error()))
		return
	}

	slog.Info("snapshot insertado", slog.String("date", date), slog.Int("agents", n))
}
