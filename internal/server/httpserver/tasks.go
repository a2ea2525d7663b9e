package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	user, _, err := currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var in models.NewTask
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	task, err := s.tasks.Create(r.Context(), user.ID, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, task)
}

// handleListTasks serves GET /tasks?completed=&limit=&skip=&sortBy=field:dir.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	user, _, err := currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	tasks, err := s.tasks.List(r.Context(), user.ID, models.ParseTaskQuery(r.URL.Query()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	user, _, err := currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	task, err := s.tasks.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user, _, err := currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var patch models.TaskPatch
	if err := decodePatch(r, models.AllowedTaskUpdates, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}

	task, err := s.tasks.Update(r.Context(), user.ID, chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user, _, err := currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	task, err := s.tasks.Delete(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, task)
}
