package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/turnos-scheduler/internal/config"
	"github.com/BruksfildServices01/turnos-scheduler/internal/httperr"
	"github.com/BruksfildServices01/turnos-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/turnos-scheduler/internal/middleware"
)

type AdminHandler struct {
	config config.AdminConfig
	now    func() time.Time
}

func NewAdminHandler(cfg config.AdminConfig) *AdminHandler {
	return &AdminHandler{config: cfg, now: time.Now}
}

// --------- Requests ---------

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AdminHandler) Login(c *gin.Context) {
	if h.config.PasswordHash == "" {
		httperr.NotFound(c, "admin_disabled", "Acceso de administración deshabilitado.")
		return
	}

	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.config.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Credenciales inválidas.")
		return
	}

	token, err := h.generateToken()
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Error al generar el token.")
		return
	}

	httpresp.OK(c, gin.H{"token": token})
}

// --------- JWT ---------

func (h *AdminHandler) generateToken() (string, error) {
	now := h.now()
	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": middleware.RoleAdmin,
		"exp":  now.Add(h.config.TokenTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
