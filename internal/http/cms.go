package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"regadmin/dashboard/internal/cms"
	"regadmin/dashboard/internal/docstore"
)

// mountCollection registers list, create, patch and delete for one
// content collection.
func mountCollection[T any](r chi.Router, path string, repo *cms.Repository[T], log logrus.FieldLogger) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			items, err := repo.ListAll(r.Context())
			if err != nil {
				writeCMSError(w, r, log, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{"data": items})
		})

		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			fields, err := decodeDocument(r)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			item, err := repo.Create(r.Context(), fields)
			if err != nil {
				writeCMSError(w, r, log, err)
				return
			}
			writeJSON(w, http.StatusCreated, item)
		})

		r.Patch("/{id}", func(w http.ResponseWriter, r *http.Request) {
			fields, err := decodeDocument(r)
			if err != nil || len(fields) == 0 {
				writeError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			if err := repo.Update(r.Context(), chi.URLParam(r, "id"), fields); err != nil {
				writeCMSError(w, r, log, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			if err := repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
				writeCMSError(w, r, log, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})
}

// decodeDocument keeps numbers as json.Number so the document store sees
// integers as integers.
func decodeDocument(r *http.Request) (docstore.Document, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	fields := docstore.Document{}
	if err := decoder.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func writeCMSError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, cms.ErrImmutableID):
		writeError(w, http.StatusBadRequest, "immutable_id")
	default:
		log.WithError(err).WithField("request_id", requestIDFromContext(r.Context())).Error("cms store failure")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}
