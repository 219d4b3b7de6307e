package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/martin/listing-hunter/internal/config"
)

// adminUsername is the single account the API serves. The service is
// operated by one person; there is no user registry.
const adminUsername = "admin"

// AuthHandler issues JWT tokens for the admin account.
type AuthHandler struct {
	passwordConfig *config.PasswordConfig
	jwtService     *JWTService
	adminHash      string
}

// NewAuthHandler creates the auth handler. It reads ADMIN_PASSWORD_HASH
// (a bcrypt hash, required) from the environment.
func NewAuthHandler(passwordConfig *config.PasswordConfig, jwtService *JWTService) (*AuthHandler, error) {
	hash := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH"))
	if hash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is required but not set")
	}

	return &AuthHandler{
		passwordConfig: passwordConfig,
		jwtService:     jwtService,
		adminHash:      hash,
	}, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login verifies the admin credentials and returns a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}

	if req.Username != adminUsername || !h.passwordConfig.VerifyPassword(req.Password, h.adminHash) {
		writeError(w, &ErrInvalidCredentials{})
		return
	}

	token, err := h.jwtService.GenerateToken(adminUsername)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(loginResponse{Token: token}); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// writeError maps an error to its HTTP status and writes it as JSON.
func writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message}) //nolint:errcheck
}
