package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TejasJagadale/backendofficial/internal/fuel"
	"github.com/TejasJagadale/backendofficial/internal/mail"
	"github.com/TejasJagadale/backendofficial/internal/oauth"
	"github.com/TejasJagadale/backendofficial/internal/queue"
	"github.com/TejasJagadale/backendofficial/internal/repo"
)

type Handler struct {
	Store       *repo.Store
	JWTSecret   string
	Mail        mail.Sender
	Events      queue.Publisher
	Google      *oauth.Google
	Fuel        *fuel.Service
	FrontendURL string

	// Dev echoes reset tokens in responses instead of relying on mail, so the
	// flow is drivable locally and in tests. Never set in production.
	Dev bool
}

func NewHandler(store *repo.Store, jwtSecret string, m mail.Sender, events queue.Publisher,
	google *oauth.Google, fuelSvc *fuel.Service, frontendURL string, dev bool) *Handler {
	return &Handler{
		Store:       store,
		JWTSecret:   jwtSecret,
		Mail:        m,
		Events:      events,
		Google:      google,
		Fuel:        fuelSvc,
		FrontendURL: frontendURL,
		Dev:         dev,
	}
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// serverError hides internals from the client; details go to the log only.
func serverError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}
