package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"habit-tracker/habits/domain"
)

const (
	msgAdded       = "Habit added successfully!"
	msgDeleted     = "Habit deleted successfully!"
	msgReAdded     = "Habit re-added successfully!"
	msgExists      = "Habit already exists"
	msgNotFound    = "Habit not found"
	msgIndexReq    = "Index is required"
	msgInvalidJSON = "Invalid JSON body"
	msgUnavailable = "Store is busy, try again"
	msgNoDeleted   = "No deleted habit to undo"
)

type messageResponse struct {
	Message string `json:"message"`
}

type habitsResponse struct {
	Message string   `json:"message"`
	Habits  []string `json:"habits"`
}

type deleteResponse struct {
	Message      string `json:"message"`
	DeletedHabit string `json:"deletedHabit"`
	DeletedIndex int    `json:"deletedIndex"`
}

type lastDeletedResponse struct {
	DeletedHabit string `json:"deletedHabit"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError é o único ponto que traduz erro de domínio para status HTTP.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeMessage(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, domain.ErrDuplicate):
		writeMessage(w, http.StatusBadRequest, msgExists)
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, domain.ErrUnavailable):
		writeMessage(w, http.StatusServiceUnavailable, msgUnavailable)
	default:
		writeMessage(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// decodeBody decodifica JSON; corpo vazio vale como objeto vazio.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
