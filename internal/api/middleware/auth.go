package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/models"
	"github.com/MemoRT22/Vacantes-sub000/pkg/utils"
)

// StaffClaims claims del personal (RH y managers)
type StaffClaims struct {
	StaffID  uuid.UUID        `json:"staff_id"`
	Role     models.StaffRole `json:"role"`
	FullName string           `json:"full_name"`
	jwt.RegisteredClaims
}

// ContextKey tipo para llaves de contexto
type ContextKey string

const (
	StaffIDKey   ContextKey = "staff_id"
	StaffRoleKey ContextKey = "staff_role"

	JWTTTL = 12 * time.Hour
)

// Auth construye el middleware de autenticación de personal
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteUnauthorized(w)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.WriteUnauthorized(w)
				return
			}

			claims, err := ValidateToken(parts[1], secret)
			if err != nil {
				utils.WriteUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), StaffIDKey, claims.StaffID)
			ctx = context.WithValue(ctx, StaffRoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole exige un rol concreto; se usa después de Auth
func RequireRole(role models.StaffRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetStaffRole(r.Context()) != role {
				utils.WriteJSON(w, http.StatusForbidden, utils.JSONResponse{
					Success: false,
					Error:   &utils.ErrorBody{Code: "FORBIDDEN", Message: "insufficient role"},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetStaffID obtiene el id del personal autenticado
func GetStaffID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(StaffIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetStaffRole obtiene el rol del personal autenticado
func GetStaffRole(ctx context.Context) models.StaffRole {
	if role, ok := ctx.Value(StaffRoleKey).(models.StaffRole); ok {
		return role
	}
	return ""
}

// GenerateToken genera un JWT para un miembro del personal
func GenerateToken(staff *models.Staff, secret string) (string, error) {
	claims := &StaffClaims{
		StaffID:  staff.ID,
		Role:     staff.Role,
		FullName: staff.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(JWTTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   staff.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken valida un token y regresa sus claims
func ValidateToken(tokenString, secret string) (*StaffClaims, error) {
	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}

// CORS middleware para CORS
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Logging middleware de acceso sobre zap
func Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rw.statusCode),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}
