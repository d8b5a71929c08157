package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/domain/types"
	"github.com/chek-project/chek-kma/pkg/usecase"
	"github.com/chek-project/chek-kma/pkg/utils/errutil"
	"github.com/chek-project/chek-kma/pkg/utils/logging"
)

const maxRequestBody = 64 << 10

type sessionRequest struct {
	AccessToken string `json:"access_token"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

type projectsResponse struct {
	Projects []model.Project `json:"projects"`
}

type loadProjectsResponse struct {
	Projects []model.Project `json:"projects"`
	Alert    *string         `json:"alert"`
}

type loadMaturityResponse struct {
	ProjectID types.ProjectID `json:"project_id"`
	Status    string          `json:"status"`
}

type maturityResponse struct {
	ProjectID types.ProjectID         `json:"project_id"`
	Data      model.MaturityData      `json:"data"`
	Summaries []model.CategorySummary `json:"summaries"`
}

func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid session request"), http.StatusBadRequest)
		return
	}

	var current types.SessionID
	if sess, ok := sessionFromContext(r.Context()); ok {
		current = sess.ID
	}

	sess, err := s.uc.Sessions.Login(r.Context(), current, req.AccessToken)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrEmptyToken) {
			status = http.StatusBadRequest
		}
		errutil.HandleHTTP(r.Context(), w, err, status)
		return
	}

	s.setSessionCookie(w, sess.ID)
	writeJSON(r.Context(), w, http.StatusOK, sessionResponse{SessionID: sess.ID.String()})
}

func (s *Server) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())
	if err := s.uc.Sessions.Logout(r.Context(), sess.ID); err != nil && !errors.Is(err, usecase.ErrSessionNotFound) {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	s.clearSessionCookie(w)
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) loadProjectsHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	result := sess.Store.LoadProjects(r.Context())
	resp := loadProjectsResponse{Projects: result.Projects}
	if result.Notify {
		msg := result.Message
		resp.Alert = &msg
	}
	writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) projectsHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())
	writeJSON(r.Context(), w, http.StatusOK, projectsResponse{Projects: sess.Store.Projects()})
}

func (s *Server) loadMaturityHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())
	projectID, err := types.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	store := sess.Store
	s.dispatcher.Dispatch(r.Context(), func(ctx context.Context) error {
		result := store.LoadMaturityData(ctx, projectID)
		if failed := result.Failed(); len(failed) > 0 {
			logging.From(ctx).Warn("maturity data committed with empty categories",
				slog.Any("project_id", projectID),
				slog.Any("failed", failed),
			)
		}
		return nil
	})

	writeJSON(r.Context(), w, http.StatusAccepted, loadMaturityResponse{ProjectID: projectID, Status: "loading"})
}

func (s *Server) maturityHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())
	projectID, err := types.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	data, ok := sess.Store.MaturityData(projectID)
	if !ok {
		writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "maturity data not loaded"})
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, maturityResponse{
		ProjectID: projectID,
		Data:      data,
		Summaries: data.Summaries(),
	})
}

func (s *Server) benchmarksHandler(w http.ResponseWriter, r *http.Request) {
	set := s.uc.Benchmarks()
	resp := make(map[string][]model.BenchmarkEntry, 4)
	for _, c := range types.AllMaturityCategories() {
		resp[c.String()] = set.Entries(c)
	}
	writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) questionsHandler(w http.ResponseWriter, r *http.Request) {
	questions := s.uc.Questions()
	if questions == nil {
		questions = []model.Question{}
	}
	writeJSON(r.Context(), w, http.StatusOK, questions)
}
