package devconnect

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// RegisterUserMessage is the registration payload
type RegisterUserMessage struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	UseHashid bool   `json:"-"`
}

// Type names the command
func (e RegisterUserMessage) Type() string { return "user.register" }

// Validate checks the payload fields
func (e RegisterUserMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name,
			validation.Required.Error("Name is required"),
		),
		validation.Field(&e.Email,
			validation.Required.Error("Please include a valid email"),
			is.EmailFormat.Error("Please include a valid email"),
		),
		validation.Field(&e.Password,
			validation.Required.Error("Please enter a password with 6 or more characters"),
			validation.Length(6, 0).Error("Please enter a password with 6 or more characters"),
			validation.By(passwordFitsBcrypt),
		),
	)
}

// MaxPasswordBytes is the longest password bcrypt will hash
const MaxPasswordBytes = 72

// passwordFitsBcrypt counts bytes, not runes, since that is what bcrypt limits.
func passwordFitsBcrypt(value any) error {
	s, _ := value.(string)
	if len(s) > MaxPasswordBytes {
		return validation.NewError("validation_password_too_long", "Password must be at most 72 bytes")
	}
	return nil
}

// RegisterUserHandler creates user accounts
type RegisterUserHandler struct {
	users   Users
	hasher  PasswordAuthenticator
	timeout time.Duration
	now     func() time.Time
}

// NewRegisterUserHandler returns a handler backed by the given store
func NewRegisterUserHandler(users Users, hasher PasswordAuthenticator) *RegisterUserHandler {
	if hasher == nil {
		hasher = NewBcryptHasher(DefaultBcryptCost)
	}
	return &RegisterUserHandler{
		users:   users,
		hasher:  hasher,
		timeout: 10 * time.Second,
		now:     time.Now,
	}
}

// Execute registers the user described by event
func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	event.Email = NormalizeEmail(event.Email)
	if err := event.Validate(); err != nil {
		return nil, goerrors.FromOzzoValidation(err, "invalid registration payload")
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	email := event.Email

	existing, err := h.users.GetByIdentifier(ctx, email)
	if err != nil && !IsRecordNotFound(err) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up user")
	}
	if existing != nil && err == nil {
		return nil, ErrUserExists
	}

	hash, err := h.hasher.HashPassword(event.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	now := h.now().UTC()
	user := &User{
		ID:           uuid.New(),
		Name:         event.Name,
		Email:        email,
		PasswordHash: hash,
		Avatar:       GravatarURL(email),
		CreatedAt:    &now,
	}

	if event.UseHashid {
		if id, err := hashid.NewUUID(email); err == nil {
			user.ID = id
		}
	}

	created, err := h.users.Create(ctx, user)
	if err != nil {
		if IsDuplicateRecord(err) {
			return nil, ErrUserExists
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create user")
	}

	return created, nil
}
