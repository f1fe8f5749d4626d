package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/horae/pkg/domain/model"
	"github.com/secmon-lab/horae/pkg/domain/types"
	"github.com/secmon-lab/horae/pkg/utils/errutil"
	"github.com/secmon-lab/horae/pkg/utils/safe"
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := s.uc.Page(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, page)
}

func (s *Server) handleListActions(w http.ResponseWriter, r *http.Request) {
	listing, err := s.uc.ListActions(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, listing)
}

func (s *Server) handleCreateAction(w http.ResponseWriter, r *http.Request) {
	var input model.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	listing, err := s.uc.CreateAction(r.Context(), &input)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, http.StatusCreated, listing)
}

func (s *Server) handleUpdateAction(w http.ResponseWriter, r *http.Request) {
	var patch model.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	listing, err := s.uc.UpdateAction(r.Context(), chi.URLParam(r, "actionID"), &patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, listing)
}

func (s *Server) handleDeleteAction(w http.ResponseWriter, r *http.Request) {
	listing, err := s.uc.DeleteAction(r.Context(), chi.URLParam(r, "actionID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, listing)
}

func (s *Server) handleCompanyNames(w http.ResponseWriter, r *http.Request) {
	names, err := s.uc.CompanyNames(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, names)
}

func (s *Server) handleCompanyContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.uc.CompanyContacts(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, contacts)
}

func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, s.uc.Links(r.Context()))
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

// fail maps domain errors to HTTP status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, types.ErrActionNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrActionDeleted):
		return http.StatusConflict
	case errors.Is(err, types.ErrMissingID),
		errors.Is(err, types.ErrEmptyPatch),
		errors.Is(err, types.ErrRequiredField),
		errors.Is(err, types.ErrInvalidDate),
		errors.Is(err, types.ErrInvalidCategory),
		errors.Is(err, types.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		// Schema-level failures and backend trouble.
		return http.StatusInternalServerError
	}
}
