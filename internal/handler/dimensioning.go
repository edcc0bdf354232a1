package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/utils"
)

// UploadDimensioning ingests one dimensioning workbook. The whole chain
// runs synchronously; the response carries the per-date reports so the
// dashboard can surface cap violations right away.
func (h *Handler) UploadDimensioning(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Server.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	defer file.Close()

	result, err := h.ingest.IngestFile(r.Context(), header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyExtraction):
			h.errorResponse(w, r, "el archivo no contiene turnos reconocibles")
		case errors.As(err, new(*domain.InferenceError)):
			h.errorResponse(w, r, "la extracción por inferencia falló: "+err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "archivo procesado", result)
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	date := r.Context().Value(SnapshotDateCtx).(string)

	snapshot, err := h.repository.GetSnapshotByDate(date)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "no hay datos para la fecha")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "dimensionado obtenido", snapshot)
}

func (h *Handler) GetSnapshotReport(w http.ResponseWriter, r *http.Request) {
	date := r.Context().Value(SnapshotDateCtx).(string)

	report, err := h.ingest.CachedReport(r.Context(), date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if report == nil {
		h.errorResponse(w, r, "no hay reporte para la fecha (expiró o nunca se ingirió)")
		return
	}

	h.successResponse(w, r, "reporte obtenido", report)
}

// OverrideBreak lets a supervisor move one agent's break by hand. The
// new start supersedes the computed one; "N/A" removes the break from
// the distribution without deleting the row.
func (h *Handler) OverrideBreak(w http.ResponseWriter, r *http.Request) {
	date := r.Context().Value(SnapshotDateCtx).(string)

	var req struct {
		AgentName string `json:"agentName" validate:"required"`
		Kind      string `json:"kind" validate:"required,oneof=first second"`
		Start     string `json:"start" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateOverrideTime(req.Start); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	assignment, err := h.repository.OverrideBreak(date, req.AgentName, domain.BreakKind(req.Kind), req.Start)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "el agente no tiene ese break en la fecha")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "break actualizado", assignment)
}
