// File: internal/settings/view.go
package settings

import (
	"context"
	"fmt"
	"strings"

	"giraffeql_web/internal/profile"
	"giraffeql_web/internal/session"

	"go.uber.org/zap"
)

// PlaceholderUsername is shown until a user has been adopted.
const PlaceholderUsername = "Anonymous"

// SyncState is the outcome of reconciling the shared user into the view.
type SyncState int

const (
	// Loaded means the fields were derived from the shared user.
	Loaded SyncState = iota
	// Empty means there is no user and the fields were reset to placeholders.
	Empty
	// Malformed means the user lacks displayName or photos; the fields were left untouched.
	Malformed
)

func (s SyncState) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Empty:
		return "empty"
	case Malformed:
		return "malformed"
	default:
		return fmt.Sprintf("SyncState(%d)", int(s))
	}
}

// Browser is the navigation surface the view drives on delete.
type Browser interface {
	ClearCookie(name string)
	Redirect(path string)
}

// View is the editable mirror behind the settings page.
type View struct {
	Username  string
	Email     string
	AvatarURL string

	session       *session.Context
	input         session.Input
	client        profile.Client
	defaultAvatar string
	logger        *zap.Logger
}

// NewView creates a view with placeholder fields for one page load.
func NewView(sc *session.Context, in session.Input, client profile.Client, defaultAvatar string, logger *zap.Logger) *View {
	return &View{
		Username:      PlaceholderUsername,
		Email:         "",
		AvatarURL:     defaultAvatar,
		session:       sc,
		input:         in,
		client:        client,
		defaultAvatar: defaultAvatar,
		logger:        logger,
	}
}

// SignedIn reports whether the page was loaded with an authorization.
func (v *View) SignedIn() bool {
	return v.input.Authorization != nil
}

// Mount adopts the page-load input into the shared user, or logs out when
// the session is missing.
func (v *View) Mount(ctx context.Context) error {
	if v.input.Authorization == nil {
		v.logger.Debug("No authorization on mount, logging out")
		return v.session.Logout(ctx)
	}

	incoming := v.input.User
	current := v.session.User()
	if incoming != nil && !current.IsEmpty() && current.Username == incoming.Username {
		return nil
	}
	if incoming != nil {
		return v.session.StoreUser(ctx, incoming)
	}

	v.logger.Info("Session resolved without a user, logging out")
	return v.session.Logout(ctx)
}

// Sync derives the three fields from the shared user.
func (v *View) Sync() SyncState {
	u := v.session.User()
	if u.IsEmpty() {
		v.Username = PlaceholderUsername
		v.Email = ""
		v.AvatarURL = v.defaultAvatar
		return Empty
	}
	if !u.HasExpectedShape() || len(*u.Photos) == 0 {
		v.logger.Debug("Shared user not in expected shape, keeping current fields",
			zap.Bool("has_display_name", u.DisplayName != nil),
			zap.Bool("has_photos", u.Photos != nil),
		)
		return Malformed
	}

	v.Username = deriveUsername(u)
	if u.Email != nil {
		if email := profile.SubmittableEmail(*u.Email); email != "" {
			v.Email = email
		}
	}
	v.AvatarURL = (*u.Photos)[0].Value
	return Loaded
}

func deriveUsername(u *profile.User) string {
	if *u.DisplayName == "" {
		return u.Username
	}
	if fields := strings.Fields(*u.DisplayName); len(fields) > 0 {
		return fields[0]
	}
	return u.Username
}

// SetUsername edits the draft username.
func (v *View) SetUsername(s string) {
	v.Username = s
}

// SetEmail edits the draft email. It is validated only on submit.
func (v *View) SetEmail(s string) {
	v.Email = s
}

// UpdateInfo submits the draft to the profile backend and, on success,
// replaces the shared user with the server's copy. Without an authorization
// it does nothing. On failure the view keeps its last good state and the
// error is returned for logging only.
func (v *View) UpdateInfo(ctx context.Context) error {
	if v.input.Authorization == nil {
		return nil
	}

	req := profile.UpdateRequest{
		OAuthID:     v.oAuthID(),
		DisplayName: v.Username,
		Email:       profile.SubmittableEmail(v.Email),
	}
	if req.Email == "" && v.Email != "" {
		v.logger.Info("Dropping invalid draft email from update")
	}

	u, err := v.client.Update(ctx, *v.input.Authorization, req)
	if err != nil {
		v.logger.Warn("Profile update failed", zap.Error(err))
		return fmt.Errorf("update profile: %w", err)
	}
	if err := v.session.StoreUser(ctx, u); err != nil {
		return err
	}
	v.Sync()
	return nil
}

func (v *View) oAuthID() string {
	if v.input.User != nil && v.input.User.OAuthID != "" {
		return v.input.User.OAuthID
	}
	return v.session.User().OAuthID
}

// DeleteAccount tears the session down on this side only: it clears the
// cookie, logs out, and navigates home. No remote deletion is performed.
func (v *View) DeleteAccount(ctx context.Context, b Browser) error {
	if v.input.Authorization == nil {
		return nil
	}
	b.ClearCookie(session.CookieName)
	err := v.session.Logout(ctx)
	v.Sync()
	b.Redirect("/")
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// Snapshot is the render model of the view.
type Snapshot struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
	SignedIn  bool   `json:"signedIn"`
	State     string `json:"state"`
}

// Snapshot returns the current fields together with the last sync outcome.
func (v *View) Snapshot(state SyncState) Snapshot {
	return Snapshot{
		Username:  v.Username,
		Email:     v.Email,
		AvatarURL: v.AvatarURL,
		SignedIn:  v.SignedIn(),
		State:     state.String(),
	}
}
