package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harborline/shipdesk"
)

func (s *Server) registerUserRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.handleUserIndex)
		r.Post("/", s.handleUserCreate)
		r.Get("/{id}", s.handleUserView)
		r.Delete("/{id}", s.handleUserDelete)
	})
}

func (s *Server) handleUserIndex(w http.ResponseWriter, r *http.Request) {
	users, err := s.UserService.FindUsers(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	var user shipdesk.User
	_ = json.NewDecoder(r.Body).Decode(&user)
	user.ID = 0

	if err := s.UserService.CreateUser(r.Context(), &user); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleUserView(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "User")
	if err != nil {
		s.Error(w, r, err)
		return
	}
	user, err := s.UserService.FindUserByID(r.Context(), id)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "User")
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if err := s.UserService.DeleteUser(r.Context(), id); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}
