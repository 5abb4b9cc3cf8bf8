package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aureajoias/aurea/app/repositories"
	"github.com/aureajoias/aurea/app/services"
	"github.com/aureajoias/aurea/pkg/middleware"
	"github.com/aureajoias/aurea/pkg/response"
)

type AuthController struct {
	session  *services.SessionController
	profiles *repositories.ProfileRepository
}

func NewAuthController(session *services.SessionController, profiles *repositories.ProfileRepository) *AuthController {
	return &AuthController{session: session, profiles: profiles}
}

type registerRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName *string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates an account and returns a session token.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := validate.Struct(body); err != nil {
		response.ValidationError(w, validationErrors(err))
		return
	}

	token, message, err := c.session.SignUp(body.Email, body.Password, body.FullName)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			response.Error(w, http.StatusConflict, services.MsgEmailTaken)
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.Created(w, message, map[string]string{"token": token})
}

// Login verifies credentials and returns a session token.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := validate.Struct(body); err != nil {
		response.ValidationError(w, validationErrors(err))
		return
	}

	token, message, err := c.session.SignIn(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, services.MsgLoginFailed)
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.SuccessMessage(w, message, map[string]string{"token": token})
}

// Logout fires the signed-out event. Tokens are stateless, so the client
// simply discards its copy.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	message := c.session.SignOut()
	response.SuccessMessage(w, message, nil)
}

// Me returns the caller's token identity and profile row when it exists.
// A missing profile is not an error; the body carries a null profile.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())
	if ident == nil {
		response.Unauthorized(w)
		return
	}

	body := map[string]interface{}{
		"id":       ident.Claims.UserID,
		"email":    ident.Claims.Email,
		"is_admin": ident.Claims.IsAdmin,
		"profile":  nil,
	}
	if profile, err := c.profiles.FindByID(ident.Claims.UserID); err == nil {
		body["profile"] = profile
	}

	response.Success(w, body)
}
