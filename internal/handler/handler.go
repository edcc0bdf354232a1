package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/config"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/ingest"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/repository"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	repository *repository.Repository
	translator ut.Translator
	ingest     *ingest.Service

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, ingestSvc *ingest.Service) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	es := es.New()
	uni := ut.New(es, es)
	trans, _ := uni.GetTranslator("es")
	if err := es_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		repository: repo,
		translator: trans,
		ingest:     ingestSvc,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// Everything below requires a session.
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
		})

		r.Route("/dimensioning", func(r chi.Router) {
			// Analysts read; only supervisors and admins mutate.
			r.With(h.RequiredRole([]domain.Role{domain.RoleSupervisor, domain.RoleAdmin})).Post("/", h.UploadDimensioning)
			r.Route("/{date}", func(r chi.Router) {
				r.Use(h.snapshotDate)
				r.Get("/", h.GetSnapshot)
				r.Get("/report", h.GetSnapshotReport)
				r.With(h.RequiredRole([]domain.Role{domain.RoleSupervisor, domain.RoleAdmin})).Patch("/breaks", h.OverrideBreak)
			})
		})
	})
}
