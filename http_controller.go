package devconnect

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RegisterAuthRoutes mounts the account and session endpoints
func RegisterAuthRoutes[T any](app router.Router[T], protected router.MiddlewareFunc, opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Register, controller.RegistrationCreate).
		SetName("users.register")

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth.login")

	app.Get(controller.Routes.Login, controller.CurrentUser, protected).
		SetName("auth.me")

	return controller
}

// AuthControllerRoutes holds the endpoint paths
type AuthControllerRoutes struct {
	Register string
	Login    string
}

// AuthController serves registration, login and the current user
type AuthController struct {
	Debug      bool
	Logger     Logger
	Users      Users
	Registerer *RegisterUserHandler
	Auther     *Auther
	Routes     *AuthControllerRoutes
	UseHashid  bool
}

// AuthControllerOption configures the controller
type AuthControllerOption func(*AuthController) *AuthController

// WithControllerLogger sets the controller logger
func WithControllerLogger(l Logger) AuthControllerOption {
	return func(ac *AuthController) *AuthController {
		if l != nil {
			ac.Logger = l
		}
		return ac
	}
}

// WithUsers sets the user store
func WithUsers(users Users) AuthControllerOption {
	return func(ac *AuthController) *AuthController {
		ac.Users = users
		return ac
	}
}

// WithRegisterer sets the registration command
func WithRegisterer(r *RegisterUserHandler) AuthControllerOption {
	return func(ac *AuthController) *AuthController {
		ac.Registerer = r
		return ac
	}
}

// WithAuther sets the authenticator
func WithAuther(a *Auther) AuthControllerOption {
	return func(ac *AuthController) *AuthController {
		ac.Auther = a
		return ac
	}
}

// WithDebug dumps request payloads to the log
func WithDebug(debug bool) AuthControllerOption {
	return func(ac *AuthController) *AuthController {
		ac.Debug = debug
		return ac
	}
}

// WithHashid derives user ids from emails
func WithHashid(enabled bool) AuthControllerOption {
	return func(ac *AuthController) *AuthController {
		ac.UseHashid = enabled
		return ac
	}
}

// NewAuthController builds the controller, panicking on missing collaborators
func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Register: "/api/users",
			Login:    "/api/auth",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Users == nil {
		panic("Missing Users store in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing Auther in auth controller...")
	}

	if c.Registerer == nil {
		c.Registerer = NewRegisterUserHandler(c.Users, nil)
	}

	return c
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required.Error("Please include a valid email"),
			is.EmailFormat.Error("Please include a valid email"),
		),
		validation.Field(
			&r.Password,
			validation.Required.Error("Password is required"),
		),
	)
}

// TokenResponse is returned by register and login
type TokenResponse struct {
	Token string `json:"token"`
}

// RegistrationCreate handles POST /api/users
func (a *AuthController) RegistrationCreate(ctx router.Context) error {
	payload := new(RegisterUserMessage)
	if err := ctx.Bind(payload); err != nil {
		return NewBadInput("Invalid request body", err)
	}

	payload.Email = NormalizeEmail(payload.Email)
	a.dump("REGISTER", RegisterUserMessage{Name: payload.Name, Email: payload.Email})

	if err := payload.Validate(); err != nil {
		return goerrors.FromOzzoValidation(err, "invalid registration payload")
	}

	payload.UseHashid = a.UseHashid

	user, err := a.Registerer.Execute(ctx.Context(), *payload)
	if err != nil {
		return err
	}

	token, err := a.Auther.IssueToken(NewIdentityFromUser(user))
	if err != nil {
		return err
	}

	a.Logger.Info("user registered", "user_id", user.ID.String())

	return ctx.JSON(router.StatusOK, TokenResponse{Token: token})
}

// LoginPost handles POST /api/auth
func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)
	if err := ctx.Bind(payload); err != nil {
		return NewBadInput("Invalid request body", err)
	}

	payload.Email = NormalizeEmail(payload.Email)
	if err := payload.Validate(); err != nil {
		return goerrors.FromOzzoValidation(err, "invalid login payload")
	}

	token, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return ctx.JSON(router.StatusOK, TokenResponse{Token: token})
}

// CurrentUser handles GET /api/auth
func (a *AuthController) CurrentUser(ctx router.Context) error {
	id, err := CurrentUserID(ctx)
	if err != nil {
		return err
	}

	uid, err := ParseUserID(id)
	if err != nil {
		return err
	}

	user, err := a.Users.GetByID(ctx.Context(), uid)
	if err != nil {
		if IsRecordNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	return ctx.JSON(router.StatusOK, user)
}

func (a *AuthController) dump(label string, payload any) {
	if !a.Debug {
		return
	}
	a.Logger.Debug(fmt.Sprintf("======= %s =======\n%s", label, print.MaybePrettyJSON(payload)))
}
