package services

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aureajoias/aurea/app/models"
	"github.com/aureajoias/aurea/app/repositories"
	"github.com/aureajoias/aurea/pkg/auth"
	"github.com/aureajoias/aurea/pkg/event"
)

// TopicAuthChanged is the bus topic carrying sign-in/sign-out transitions.
const TopicAuthChanged = "auth.changed"

// AuthEvent is the payload published on TopicAuthChanged.
type AuthEvent struct {
	Kind   string // "SIGNED_IN" | "SIGNED_OUT"
	Claims *auth.Claims
}

const (
	EventSignedIn  = "SIGNED_IN"
	EventSignedOut = "SIGNED_OUT"
)

// Portuguese notification messages surfaced to the storefront.
const (
	MsgLoginOK     = "Login realizado com sucesso!"
	MsgRegisterOK  = "Conta criada com sucesso!"
	MsgLogoutOK    = "Logout realizado com sucesso!"
	MsgLoginFailed = "E-mail ou senha incorretos"
	MsgEmailTaken  = "Este e-mail já está cadastrado"
)

var (
	// ErrInvalidCredentials is returned by SignIn on a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned by SignUp when the email already has a profile.
	ErrEmailTaken = errors.New("email already registered")
)

// SessionController tracks the authenticated user and their profile row.
// Construct it with NewSessionController, which subscribes to the auth bus
// before any bootstrap can publish, then call Bootstrap once at startup.
type SessionController struct {
	profiles *repositories.ProfileRepository
	bus      *event.Bus
	sub      *event.Subscription
	log      *slog.Logger

	mu        sync.Mutex
	claims    *auth.Claims
	profile   *models.Profile
	loading   bool
	resolving bool
	closed    bool
}

func NewSessionController(db *gorm.DB, bus *event.Bus, log *slog.Logger) *SessionController {
	c := &SessionController{
		profiles: repositories.NewProfileRepository(db),
		bus:      bus,
		log:      log,
		loading:  true,
	}

	// Subscribe before Bootstrap runs so a transition firing between the
	// two calls is observed.
	c.sub = bus.Subscribe(TopicAuthChanged, c.onAuthEvent)
	return c
}

// Bootstrap reads the persisted session token, if any, and resolves the
// matching profile in the background. An empty or invalid token leaves the
// controller anonymous with loading done.
func (c *SessionController) Bootstrap(token string) {
	if token == "" {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
		return
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		c.log.Warn("session: stale token on bootstrap", "error", err)
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.claims = claims
	c.mu.Unlock()
	c.scheduleResolve(claims)
}

// onAuthEvent applies a sign-in/sign-out transition. It returns immediately;
// profile resolution happens on its own goroutine.
func (c *SessionController) onAuthEvent(payload interface{}) {
	ev, ok := payload.(AuthEvent)
	if !ok {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	if ev.Kind == EventSignedOut || ev.Claims == nil {
		c.claims = nil
		c.profile = nil
		c.loading = false
		c.mu.Unlock()
		return
	}

	c.claims = ev.Claims
	c.mu.Unlock()
	c.scheduleResolve(ev.Claims)
}

// scheduleResolve starts one background profile resolution. A trigger that
// arrives while a resolution is already in flight is dropped.
func (c *SessionController) scheduleResolve(claims *auth.Claims) {
	c.mu.Lock()
	if c.resolving {
		c.mu.Unlock()
		return
	}
	c.resolving = true
	c.mu.Unlock()

	go c.resolveProfile(claims)
}

// resolveProfile fetches the user's profile row, creating it from the token
// claims when missing. Unexpected errors adopt a nil profile rather than
// blocking the session.
func (c *SessionController) resolveProfile(claims *auth.Claims) {
	var adopted *models.Profile

	profile, err := c.profiles.FindByID(claims.UserID)
	switch {
	case err == nil:
		adopted = &profile

	case errors.Is(err, gorm.ErrRecordNotFound):
		created := models.Profile{
			ID:      claims.UserID,
			Email:   claims.Email,
			IsAdmin: false,
		}
		if claims.FullName != "" {
			name := claims.FullName
			created.FullName = &name
		}
		if err := c.profiles.Create(&created); err != nil {
			c.log.Error("session: create missing profile", "error", err, "user_id", claims.UserID)
		} else {
			adopted = &created
		}

	default:
		c.log.Error("session: fetch profile", "error", err, "user_id", claims.UserID)
	}

	c.mu.Lock()
	if !c.closed && c.claims != nil && c.claims.UserID == claims.UserID {
		c.profile = adopted
	}
	c.loading = false
	c.resolving = false
	c.mu.Unlock()
}

// SignIn verifies the credentials and publishes a signed-in event. It
// returns the session token and the Portuguese success message.
func (c *SessionController) SignIn(email, password string) (string, string, error) {
	profile, err := c.profiles.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}

	if !auth.CheckPassword(profile.PasswordHash, password) {
		return "", "", ErrInvalidCredentials
	}

	fullName := ""
	if profile.FullName != nil {
		fullName = *profile.FullName
	}

	token, err := auth.GenerateToken(profile.ID, profile.Email, fullName, profile.IsAdmin)
	if err != nil {
		return "", "", err
	}

	claims := &auth.Claims{
		UserID:   profile.ID,
		Email:    profile.Email,
		FullName: fullName,
		IsAdmin:  profile.IsAdmin,
	}
	c.bus.Publish(TopicAuthChanged, AuthEvent{Kind: EventSignedIn, Claims: claims})

	return token, MsgLoginOK, nil
}

// SignUp creates a profile with a hashed password, then signs the new user
// in. Admin rights are never granted here.
func (c *SessionController) SignUp(email, password string, fullName *string) (string, string, error) {
	if _, err := c.profiles.FindByEmail(email); err == nil {
		return "", "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", "", err
	}

	profile := models.Profile{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		IsAdmin:      false,
	}
	if err := c.profiles.Create(&profile); err != nil {
		return "", "", err
	}

	name := ""
	if fullName != nil {
		name = *fullName
	}

	token, err := auth.GenerateToken(profile.ID, profile.Email, name, false)
	if err != nil {
		return "", "", err
	}

	claims := &auth.Claims{UserID: profile.ID, Email: profile.Email, FullName: name}
	c.bus.Publish(TopicAuthChanged, AuthEvent{Kind: EventSignedIn, Claims: claims})

	return token, MsgRegisterOK, nil
}

// SignOut publishes the signed-out event and returns the success message.
func (c *SessionController) SignOut() string {
	c.bus.Publish(TopicAuthChanged, AuthEvent{Kind: EventSignedOut})
	return MsgLogoutOK
}

// User returns the signed-in user's id and email, or zero values.
func (c *SessionController) User() (uuid.UUID, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.claims == nil {
		return uuid.Nil, ""
	}
	return c.claims.UserID, c.claims.Email
}

// Profile returns the resolved profile row, or nil.
func (c *SessionController) Profile() *models.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// IsAdmin reports whether the resolved profile has admin rights.
// No profile means no rights.
func (c *SessionController) IsAdmin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile != nil && c.profile.IsAdmin
}

// Loading reports whether the first profile resolution is still pending.
func (c *SessionController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Close cancels the bus subscription. No state updates occur afterwards.
func (c *SessionController) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.sub.Cancel()
}
