// File: internal/settings/handler.go
package settings

import (
	"errors"
	"net/http"
	"time"

	"giraffeql_web/internal/common"
	"giraffeql_web/internal/config"
	"giraffeql_web/internal/middleware"
	"giraffeql_web/internal/profile"
	"giraffeql_web/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler serves the settings page and its JSON mirror.
type Handler struct {
	store    session.Store
	resolver session.Resolver
	client   profile.Client
	cfg      *config.Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandler creates a new settings handler.
func NewHandler(store session.Store, resolver session.Resolver, client profile.Client, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		resolver: resolver,
		client:   client,
		cfg:      cfg,
		logger:   logger.Named("SettingsHandler"),
		now:      time.Now,
	}
}

// RegisterRoutes sets up the HTML routes of the settings page.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	g := router.Group("/settings", middleware.SessionResolver(h.resolver, h.logger))
	{
		g.GET("", h.showSettings)
		g.POST("/update", h.submitUpdate)
		g.POST("/delete", h.submitDelete)
	}
}

// RegisterAPIRoutes sets up the JSON mirror under the given group.
func (h *Handler) RegisterAPIRoutes(group *gin.RouterGroup) {
	g := group.Group("/settings", middleware.SessionResolver(h.resolver, h.logger))
	{
		g.GET("", h.getSettings)
		g.POST("/profile", h.updateProfile)
		g.POST("/delete", h.deleteAccount)
	}
}

// UpdateProfileRequest is the JSON body of POST /api/v1/settings/profile.
// Absent fields keep the value derived from the session.
type UpdateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,max=100"`
	Email    *string `json:"email" binding:"omitempty,max=254"`
}

// pageData is the template model of settings.html.
type pageData struct {
	Title string
	View  Snapshot
}

// loadView mounts a view on the session resolved for the request and syncs the fields.
func (h *Handler) loadView(c *gin.Context) (*View, SyncState, error) {
	ctx := c.Request.Context()
	logger := common.RequestLogger(c).Named("SettingsView")

	token, in := middleware.GetSessionFromContext(c)
	ttl := session.MirrorTTL(token, h.cfg.SessionTTL, h.now())
	sc, err := session.Load(ctx, h.store, token, ttl, logger)
	if err != nil {
		return nil, Empty, err
	}
	v := NewView(sc, in, h.client, h.cfg.DefaultAvatarURL, logger)
	if err := v.Mount(ctx); err != nil {
		return nil, Empty, err
	}
	h.syncCookie(c, token, in, ttl)
	return v, v.Sync(), nil
}

// syncCookie moves an accepted query-string token into the session cookie and
// drops a cookie whose token the backend rejected. The cookie never outlives ttl.
func (h *Handler) syncCookie(c *gin.Context, token string, in session.Input, ttl time.Duration) {
	ck, _ := c.Cookie(session.CookieName)
	if in.Authorization == nil {
		if token != "" && ck != "" {
			c.SetCookie(session.CookieName, "", -1, "/", "", h.cfg.SessionCookieSecure, true)
		}
		return
	}
	if ck != "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, in.Token(), int(ttl.Seconds()), "/", "", h.cfg.SessionCookieSecure, true)
}

// placeholderSnapshot is rendered when the session could not be loaded.
func (h *Handler) placeholderSnapshot() Snapshot {
	return Snapshot{Username: PlaceholderUsername, AvatarURL: h.cfg.DefaultAvatarURL, State: Empty.String()}
}

func (h *Handler) showSettings(c *gin.Context) {
	snap := h.placeholderSnapshot()
	if v, state, err := h.loadView(c); err != nil {
		h.logger.Error("Failed to load settings view", zap.Error(err))
	} else {
		snap = v.Snapshot(state)
	}
	c.HTML(http.StatusOK, "settings.html", pageData{Title: "giraffeQL", View: snap})
}

func (h *Handler) submitUpdate(c *gin.Context) {
	v, _, err := h.loadView(c)
	if err != nil {
		h.logger.Error("Failed to load settings view for update", zap.Error(err))
		c.Redirect(http.StatusSeeOther, "/settings")
		return
	}
	if username, ok := c.GetPostForm("username"); ok {
		v.SetUsername(username)
	}
	if email, ok := c.GetPostForm("email"); ok {
		v.SetEmail(email)
	}

	// Failures stay on the page without feedback; UpdateInfo already logged them.
	_ = v.UpdateInfo(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/settings")
}

func (h *Handler) submitDelete(c *gin.Context) {
	v, _, err := h.loadView(c)
	if err != nil {
		h.logger.Error("Failed to load settings view for delete", zap.Error(err))
		c.Redirect(http.StatusSeeOther, "/settings")
		return
	}
	b := newGinBrowser(c, h.cfg.SessionCookieSecure)
	if err := v.DeleteAccount(c.Request.Context(), b); err != nil {
		h.logger.Warn("Account teardown incomplete", zap.Error(err))
	}
	location := b.location
	if location == "" {
		location = "/settings"
	}
	c.Redirect(http.StatusSeeOther, location)
}

func (h *Handler) getSettings(c *gin.Context) {
	v, state, err := h.loadView(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Settings retrieved", v.Snapshot(state))
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request body: "+err.Error()))
		return
	}

	v, _, err := h.loadView(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if !v.SignedIn() {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No active session."))
		return
	}
	if req.Username != nil {
		v.SetUsername(*req.Username)
	}
	if req.Email != nil {
		v.SetEmail(*req.Email)
	}

	if err := v.UpdateInfo(c.Request.Context()); err != nil {
		common.RespondWithError(c, common.ErrBadGateway.WithDetails("Profile backend did not accept the update."))
		return
	}
	common.RespondOK(c, "Profile updated", v.Snapshot(v.Sync()))
}

func (h *Handler) deleteAccount(c *gin.Context) {
	v, _, err := h.loadView(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if !v.SignedIn() {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No active session."))
		return
	}
	b := newGinBrowser(c, h.cfg.SessionCookieSecure)
	if err := v.DeleteAccount(c.Request.Context(), b); err != nil {
		h.logger.Warn("Account teardown incomplete", zap.Error(err))
	}
	common.RespondOK(c, "Signed out; the account itself was not deleted", gin.H{"redirect": b.location})
}

// ginBrowser applies cookie changes to the response and records where the
// view asked to navigate.
type ginBrowser struct {
	c        *gin.Context
	secure   bool
	location string
}

func newGinBrowser(c *gin.Context, secure bool) *ginBrowser {
	return &ginBrowser{c: c, secure: secure}
}

func (b *ginBrowser) ClearCookie(name string) {
	b.c.SetCookie(name, "", -1, "/", "", b.secure, true)
}

func (b *ginBrowser) Redirect(path string) {
	b.location = path
}
