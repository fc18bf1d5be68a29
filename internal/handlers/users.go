package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ProgrammerShajib/fullstack/internal/services"
	"github.com/ProgrammerShajib/fullstack/internal/store"
	"github.com/ProgrammerShajib/fullstack/types"
)

const deletedMessage = "User deleted successfully"

// UserHandler provides HTTP handlers for users.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler constructs a handler backed by the user service.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRouter registers user routes on the given router.
func UserRouter(r chi.Router, userService *services.UserService) {
	handler := NewUserHandler(userService)

	r.Post("/", handler.CreateUser)
	r.Get("/", handler.ListUsers)
	r.Get("/{userID}", handler.GetUser)
	r.Patch("/{userID}", handler.UpdateUser)
	r.Delete("/{userID}", handler.DeleteUser)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.userService.Create(r.Context(), services.CreateUserInput{UserFields: req.fields()})
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "userID")
	if _, err := store.ParseID(rawID); err != nil {
		respondError(w, r, err)
		return
	}

	var req UserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.userService.Update(r.Context(), rawID, services.UpdateUserInput{UserFields: req.fields()})
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Delete(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{Message: deletedMessage, Data: user})
}

// UserRequest is the JSON body accepted by create and update.
// Any other keys are ignored.
type UserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int   `json:"age"`
}

func (req UserRequest) fields() types.UserFields {
	return types.UserFields{Name: req.Name, Email: req.Email, Age: req.Age}
}

// DeleteResponse wraps the removed record.
type DeleteResponse struct {
	Message string     `json:"message"`
	Data    types.User `json:"data"`
}
