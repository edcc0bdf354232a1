package repository

import (
	"database/sql"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}
