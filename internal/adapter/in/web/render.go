package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"time"

	"postboard/internal/model"
	"postboard/internal/service"
	"postboard/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

var funcs = template.FuncMap{
	"datetime": func(t time.Time) string {
		return t.Format("02/01/2006 15:04")
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

type pages struct {
	byName map[string]*template.Template
}

func parsePages() (*pages, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	p := &pages{byName: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		name := path.Base(f)
		tpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		p.byName[name] = tpl
	}
	return p, nil
}

type view struct {
	Title string
	User  *model.User
	Flash string
	Error string
	Data  any
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, v view) {
	tpl, ok := h.pages.byName[name]
	if !ok {
		logger.FromContext(r.Context()).Error("unknown template", "name", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if v.Flash == "" {
		v.Flash = h.sessions.PopFlash(r.Context())
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", v); err != nil {
		logger.FromContext(r.Context()).Error("render template", "name", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, user *model.User, err error) {
	status, msg := h.errorText(r, err, "")
	h.render(w, r, status, "error.html", view{Title: "Error", User: user, Error: msg})
}

// redirectWithError reports err as a flash message on the target page.
func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, target string, err error, exists string) {
	_, msg := h.errorText(r, err, exists)
	h.sessions.SetFlash(r.Context(), msg)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, target, msg string) {
	h.sessions.SetFlash(r.Context(), msg)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// errorText maps err to a status and a message for the page. exists
// overrides the text shown for a uniqueness conflict.
func (h *Handler) errorText(r *http.Request, err error, exists string) (int, string) {
	var inUse *service.PostTypeInUseError

	switch {
	case errors.Is(err, errInvalidID):
		return http.StatusBadRequest, "ID inválido"
	case errors.As(err, &inUse):
		return http.StatusBadRequest, fmt.Sprintf("No se puede eliminar. Hay %d posts usando este tipo.", inUse.Count)
	case errors.Is(err, service.ErrPasswordTooShort):
		return http.StatusBadRequest, "La contraseña debe tener al menos 6 caracteres"
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest, "Todos los campos son requeridos"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "No encontrado"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Usuario o contraseña incorrectos"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "No autorizado"
	case errors.Is(err, service.ErrAlreadyExists):
		if exists == "" {
			exists = "Ya existe"
		}
		return http.StatusBadRequest, exists
	case errors.Is(err, service.ErrInvalidReference):
		return http.StatusBadRequest, "Referencia inválida"
	default:
		logger.FromContext(r.Context()).Error("page request failed", "error", err)
		return http.StatusInternalServerError, "Error interno del servidor"
	}
}

var errInvalidID = errors.New("invalid id")

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

// formID parses an optional numeric form field; blank yields zero.
func formID(r *http.Request, key string) (int64, error) {
	raw := r.PostFormValue(key)
	if raw == "" {
		return 0, nil
	}
	return parseID(raw)
}
