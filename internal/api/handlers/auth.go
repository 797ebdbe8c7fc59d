package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/MemoRT22/Vacantes-sub000/internal/api/middleware"
	"github.com/MemoRT22/Vacantes-sub000/internal/storage"
	"github.com/MemoRT22/Vacantes-sub000/pkg/utils"
)

// AuthHandler login del personal interno
type AuthHandler struct {
	db        *storage.Database
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthHandler(db *storage.Database, jwtSecret string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		db:        db,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
	Staff       interface{} `json:"staff"`
}

// Login autentica a un miembro del personal y emite un JWT
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.BindJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	staff, err := h.db.GetStaffByEmail(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("Staff lookup failed", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if staff == nil || !staff.IsActive {
		utils.WriteUnauthorized(w)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)) != nil {
		utils.WriteUnauthorized(w)
		return
	}

	token, err := middleware.GenerateToken(staff, h.jwtSecret)
	if err != nil {
		h.logger.Error("Token generation failed", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	utils.WriteSuccess(w, AuthResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(middleware.JWTTTL),
		Staff:       staff,
	})
}

// Me regresa el perfil del personal autenticado
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	staffID := middleware.GetStaffID(r.Context())

	staff, err := h.db.GetStaffByID(r.Context(), staffID)
	if err != nil || staff == nil {
		utils.WriteNotFound(w, "Staff")
		return
	}

	utils.WriteSuccess(w, staff)
}
