package handlers

import (
	"encoding/json"
	"net/http"

	"easybooking/internal/models"
	"easybooking/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var creds models.Login
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		return err
	}

	token, err := h.authService.Login(r.Context(), &creds)
	if err != nil {
		return err
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful!",
		"token":   token,
	})
	return nil
}
