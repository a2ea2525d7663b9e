package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/taskmanager/internal/server/models"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in models.NewUser
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.users.Register(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", res.User.ID)
	s.writeJSON(w, r, http.StatusCreated, res)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.users.Login(r.Context(), creds)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	user, token, err := currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.users.Logout(r.Context(), user.ID, token); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleLogoutAll(w http.ResponseWriter, r *http.Request) {
	user, _, err := currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.users.LogoutAll(r.Context(), user.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _, err := currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, user)
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	user, _, err := currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var patch models.UserPatch
	if err := decodePatch(r, models.AllowedUserUpdates, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}

	updated, err := s.users.Update(r.Context(), user, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeleteMe(w http.ResponseWriter, r *http.Request) {
	user, _, err := currentUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	deleted, err := s.users.Delete(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Deleted user", "user_id", deleted.ID)
	s.writeJSON(w, r, http.StatusOK, deleted)
}
