package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"habit-tracker/habits/domain"
	"habit-tracker/habits/infra"
	"habit-tracker/internal/logger"

	"github.com/gorilla/mux"
)

// HabitService é o que o handler precisa da camada application.
type HabitService interface {
	List(ctx context.Context) []domain.Habit
	Add(ctx context.Context, h domain.Habit) ([]domain.Habit, error)
	DeleteAt(ctx context.Context, index int) (domain.Habit, int, error)
	Undo(ctx context.Context, h domain.Habit) ([]domain.Habit, error)
	LastDeleted() (domain.Habit, bool)
}

// StatsSnapshotter é implementado por backends de estatística que conseguem
// devolver os contadores (ex: infra.MemoryStatsStore).
type StatsSnapshotter interface {
	Snapshot() infra.StatsSnapshot
}

type Handler struct {
	Service HabitService
	Stats   StatsSnapshotter
	Logger  logger.Logger
}

// NewRouter monta as rotas. Os middlewares extras rodam depois de RequestID
// e AccessLog (ex: limitador de escrita).
func NewRouter(h *Handler, mws ...mux.MiddlewareFunc) *mux.Router {
	lggr := h.Logger
	if lggr == nil {
		lggr = logger.Nop()
	}

	r := mux.NewRouter()
	r.Use(RequestID, AccessLog(lggr))
	r.Use(mws...)

	r.Methods(http.MethodGet).Path("/habits").HandlerFunc(h.list)
	r.Methods(http.MethodPost).Path("/habits").HandlerFunc(h.add)
	r.Methods(http.MethodPost).Path("/habits/delete").HandlerFunc(h.delete)
	r.Methods(http.MethodPost).Path("/habits/undo").HandlerFunc(h.undo)
	r.Methods(http.MethodGet).Path("/habits/last-deleted").HandlerFunc(h.lastDeleted)
	r.Methods(http.MethodGet).Path("/stats").HandlerFunc(h.stats)
	r.Methods(http.MethodGet).Path("/healthz").HandlerFunc(health)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Strings(h.Service.List(r.Context())))
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Habit string `json:"habit"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	habits, err := h.Service.Add(r.Context(), domain.Habit(req.Habit))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habitsResponse{Message: msgAdded, Habits: domain.Strings(habits)})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index *int `json:"index"`
	}
	if err := decodeBody(r, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			writeMessage(w, http.StatusBadRequest, msgIndexReq)
			return
		}
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if req.Index == nil {
		writeMessage(w, http.StatusBadRequest, msgIndexReq)
		return
	}

	removed, idx, err := h.Service.DeleteAt(r.Context(), *req.Index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{
		Message:      msgDeleted,
		DeletedHabit: string(removed),
		DeletedIndex: idx,
	})
}

func (h *Handler) undo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeletedHabit string `json:"deletedHabit"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	habits, err := h.Service.Undo(r.Context(), domain.Habit(req.DeletedHabit))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habitsResponse{Message: msgReAdded, Habits: domain.Strings(habits)})
}

func (h *Handler) lastDeleted(w http.ResponseWriter, _ *http.Request) {
	last, ok := h.Service.LastDeleted()
	if !ok {
		writeMessage(w, http.StatusNotFound, msgNoDeleted)
		return
	}
	writeJSON(w, http.StatusOK, lastDeletedResponse{DeletedHabit: string(last)})
}

func (h *Handler) stats(w http.ResponseWriter, _ *http.Request) {
	if h.Stats == nil {
		writeMessage(w, http.StatusNotFound, "Stats are not available")
		return
	}
	writeJSON(w, http.StatusOK, h.Stats.Snapshot())
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
