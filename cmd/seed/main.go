package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/config"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/repository"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var date string

	flag.IntVar(&op, "op", 0, "operación a ejecutar (1: insertar usuarios aleatorios, 2: insertar snapshot de demo)")
	flag.IntVar(&n, "n", 5, "cantidad de registros a insertar")
	flag.StringVar(&date, "date", time.Now().Format("2006-01-02"), "fecha del snapshot de demo (YYYY-MM-DD)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("no se pudo cargar la configuración", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("no se pudo crear el pool de conexiones", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial; ping to fail fast on a bad DSN.
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("no se pudo conectar a la base de datos", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no se indicó ninguna operación")
	case 1:
		if n <= 0 {
			slog.Error("la cantidad de usuarios debe ser positiva")
			return
		}
		seed.SeedUsers(repo, n, cfg.Seed.User.Password, cfg.Email.UserDomain)
	case 2:
		if n <= 0 {
			slog.Error("la cantidad de agentes debe ser positiva")
			return
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			slog.Error("la fecha debe tener formato YYYY-MM-DD", slog.String("date", date))
			return
		}
		seed.SeedSnapshot(repo, date, n)
	default:
		slog.Error("operación inválida", slog.Int("op", op))
	}
}
