// File: internal/entry/handler.go
package entry

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the connection dialog and the blank canvas it leads to.
type Handler struct {
	checker Checker
	logger  *zap.Logger
}

// NewHandler creates a new entry handler.
func NewHandler(checker Checker, logger *zap.Logger) *Handler {
	return &Handler{checker: checker, logger: logger.Named("EntryHandler")}
}

// RegisterRoutes sets up the entry routes.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.showModal)
	router.POST("/connect", h.connect)
	router.GET("/canvas", h.showCanvas)
}

type pageData struct {
	Title       string
	Modal       Modal
	Placeholder string
}

func (h *Handler) render(c *gin.Context, status int, m Modal) {
	c.HTML(status, "entry.html", pageData{Title: "giraffeQL", Modal: m, Placeholder: URIPlaceholder})
}

func (h *Handler) showModal(c *gin.Context) {
	var m Modal
	if err := c.ShouldBindQuery(&m); err != nil {
		h.logger.Debug("Ignoring malformed modal query", zap.Error(err))
		m = Modal{}
	}
	m.URI = ""
	h.render(c, http.StatusOK, m)
}

func (h *Handler) connect(c *gin.Context) {
	m := Modal{URI: c.PostForm("uri")}
	if m.SubmitDisabled() {
		h.render(c, http.StatusOK, m)
		return
	}

	if err := h.checker.Check(c.Request.Context(), m.URI); err != nil {
		h.logger.Info("Connection check failed", zap.Error(err))
		m.Message = "error"
		m.Instructions = Instructions(err)
		h.render(c, http.StatusOK, m)
		return
	}
	c.Redirect(http.StatusSeeOther, "/canvas")
}

func (h *Handler) showCanvas(c *gin.Context) {
	c.HTML(http.StatusOK, "canvas.html", gin.H{"Title": "giraffeQL"})
}
