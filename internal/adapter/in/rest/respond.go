package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"postboard/internal/service"
	"postboard/pkg/logger"
)

var (
	errInvalidID       = errors.New("invalid id")
	errUnauthenticated = errors.New("unauthenticated")
)

const (
	msgInvalidID        = "ID inválido"
	msgUnauthenticated  = "No autenticado"
	msgForbidden        = "No autorizado"
	msgInvalidReference = "Referencia inválida"
	msgPasswordTooShort = "La contraseña debe tener al menos 6 caracteres"
	msgInternal         = "Error interno del servidor"
)

// messages holds the per-resource texts for the domain errors.
type messages struct {
	required    string
	notFound    string
	exists      string
	credentials string
}

var (
	authMessages = messages{
		required:    "Usuario y contraseña son requeridos",
		notFound:    "Usuario no encontrado",
		exists:      "El usuario ya existe",
		credentials: "Usuario o contraseña incorrectos",
	}
	passwordMessages = messages{
		required:    "Todos los campos son requeridos",
		notFound:    "Usuario no encontrado",
		credentials: "La contraseña actual es incorrecta",
	}
	userMessages = messages{
		required: "Datos inválidos",
		notFound: "Usuario no encontrado",
	}
	postTypeMessages = messages{
		required: "El nombre es requerido",
		notFound: "Tipo de post no encontrado",
		exists:   "Ya existe un tipo con ese nombre",
	}
	postMessages = messages{
		required: "Todos los campos son requeridos",
		notFound: "Post no encontrado",
	}
	commentMessages = messages{
		required: "El contenido del comentario es requerido",
		notFound: "Comentario no encontrado",
	}
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, messageBody{Message: msg})
}

// writeError maps err to a status code and a client-facing message.
// Unclassified errors are logged and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, m messages) {
	status, msg := classify(err, m)
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed", "error", err)
	}
	writeJSON(w, status, errorBody{Error: msg})
}

func classify(err error, m messages) (int, string) {
	var inUse *service.PostTypeInUseError

	switch {
	case errors.Is(err, errInvalidID):
		return http.StatusBadRequest, msgInvalidID
	case errors.Is(err, errUnauthenticated):
		return http.StatusUnauthorized, msgUnauthenticated
	case errors.As(err, &inUse):
		return http.StatusBadRequest, fmt.Sprintf("No se puede eliminar. Hay %d posts usando este tipo.", inUse.Count)
	case errors.Is(err, service.ErrPasswordTooShort):
		return http.StatusBadRequest, msgPasswordTooShort
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest, m.required
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, m.notFound
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, m.credentials
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, msgForbidden
	case errors.Is(err, service.ErrAlreadyExists):
		return http.StatusBadRequest, m.exists
	case errors.Is(err, service.ErrInvalidReference):
		return http.StatusBadRequest, msgInvalidReference
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode body: %v", service.ErrInvalidRequest, err)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	return parseID(r.PathValue("id"))
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}
