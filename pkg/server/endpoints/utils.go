package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/sevy33/permissions-in-go/pkg/audit"
	"github.com/sevy33/permissions-in-go/pkg/identity"
	"github.com/sevy33/permissions-in-go/pkg/observability"
	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

// ValidationError is answered with 400 and its message
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithSuccess(w http.ResponseWriter) {
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// respondWithStoreError maps validation and not-found errors to 400 and 404;
// anything else is logged and answered with 500.
func respondWithStoreError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, store.ErrProjectNotFound):
		respondWithError(w, http.StatusNotFound, "Project not found")
	case errors.Is(err, store.ErrPermissionNotFound):
		respondWithError(w, http.StatusNotFound, "Permission not found")
	case errors.Is(err, store.ErrGroupNotFound):
		respondWithError(w, http.StatusNotFound, "Group not found")
	default:
		log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("store operation failed")
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

// pathID parses the named mux variable as an int64 id
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ValidationError{Message: "Invalid " + name + ": " + raw}
	}
	return id, nil
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ValidationError{Message: "Invalid JSON body"}
	}
	return nil
}

// recorder writes audit events and mutation metrics for handlers
type recorder struct {
	log     logrus.FieldLogger
	metrics *observability.Metrics
}

func (rec *recorder) change(r *http.Request, event audit.ChangeEvent, err error) {
	id := identity.FromRequest(r)
	event.ClientIP = id.RemoteAddr()
	event.Actor = id.Subject
	event.Success = err == nil
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	audit.Log(event)
	rec.metrics.ObserveMutation(event.Entity, event.Operation.String(), event.Success)
}

func (rec *recorder) export(r *http.Request, event audit.ExportEvent, result string) {
	event.ClientIP = identity.FromRequest(r).RemoteAddr()
	audit.Log(event)
	rec.metrics.ObserveExport(result)
}
