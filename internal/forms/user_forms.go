package forms

import (
	"context"
	"strings"

	"chirp/internal/validation"
)

// CreateUserForm is the registration contract: username, email, display name,
// password with confirmation, optional avatar.
type CreateUserForm struct {
	Username    string
	Email       string
	DisplayName string
	Password1   string
	Password2   string
	// Avatar is the already-stored media path, set by the handler after a
	// successful upload; empty means the default placeholder.
	Avatar string

	Errors Errors
}

// Validate checks required fields, the 128-character bounds, password
// confirmation and username/email uniqueness. Returns true when valid.
func (f *CreateUserForm) Validate(ctx context.Context, users UserFinder) bool {
	f.Errors = Errors{}
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.DisplayName = strings.TrimSpace(f.DisplayName)

	if err := validation.ValidateRequired("username", f.Username); err != nil {
		f.Errors.Add("username", err.Error())
	} else if err := validation.ValidateBounded("username", f.Username); err != nil {
		f.Errors.Add("username", err.Error())
	}

	if err := validation.ValidateRequired("email", f.Email); err != nil {
		f.Errors.Add("email", err.Error())
	} else if err := validation.ValidateBounded("email", f.Email); err != nil {
		f.Errors.Add("email", err.Error())
	} else if err := validation.ValidateEmail(f.Email); err != nil {
		f.Errors.Add("email", err.Error())
	}

	if err := validation.ValidateRequired("display name", f.DisplayName); err != nil {
		f.Errors.Add("display_name", err.Error())
	} else if err := validation.ValidateBounded("display name", f.DisplayName); err != nil {
		f.Errors.Add("display_name", err.Error())
	}

	if err := validation.ValidateRequired("password", f.Password1); err != nil {
		f.Errors.Add("password1", err.Error())
	} else if err := validation.ValidatePassword(f.Password1); err != nil {
		f.Errors.Add("password1", err.Error())
	}
	if err := validation.ValidateRequired("password confirmation", f.Password2); err != nil {
		f.Errors.Add("password2", err.Error())
	} else if f.Password1 != "" && f.Password1 != f.Password2 {
		f.Errors.Add("password2", "The two password fields didn't match.")
	}

	// Uniqueness checks only once the field itself is well-formed.
	if len(f.Errors.Field("username")) == 0 {
		if existing, err := users.GetByUsername(ctx, f.Username); err == nil && existing != nil {
			f.Errors.Add("username", "A user with that username already exists.")
		}
	}
	if len(f.Errors.Field("email")) == 0 {
		if existing, err := users.GetByEmail(ctx, f.Email); err == nil && existing != nil {
			f.Errors.Add("email", "A user with that email already exists.")
		}
	}

	return !f.Errors.Any()
}

// UpdateUserForm is the self-update contract. Only email, display name and
// avatar are externally settable; username is immutable after creation.
type UpdateUserForm struct {
	Email       string
	DisplayName string
	Avatar      string

	Errors Errors
}

// Validate checks required fields, bounds and email uniqueness against other
// accounts. selfID excludes the caller's own record from the uniqueness check.
func (f *UpdateUserForm) Validate(ctx context.Context, users UserFinder, selfID uint) bool {
	f.Errors = Errors{}
	f.Email = strings.TrimSpace(f.Email)
	f.DisplayName = strings.TrimSpace(f.DisplayName)

	if err := validation.ValidateRequired("email", f.Email); err != nil {
		f.Errors.Add("email", err.Error())
	} else if err := validation.ValidateBounded("email", f.Email); err != nil {
		f.Errors.Add("email", err.Error())
	} else if err := validation.ValidateEmail(f.Email); err != nil {
		f.Errors.Add("email", err.Error())
	}

	if err := validation.ValidateRequired("display name", f.DisplayName); err != nil {
		f.Errors.Add("display_name", err.Error())
	} else if err := validation.ValidateBounded("display name", f.DisplayName); err != nil {
		f.Errors.Add("display_name", err.Error())
	}

	if len(f.Errors.Field("email")) == 0 {
		if existing, err := users.GetByEmail(ctx, f.Email); err == nil && existing != nil && existing.ID != selfID {
			f.Errors.Add("email", "A user with that email already exists.")
		}
	}

	return !f.Errors.Any()
}

// LoginForm is the authentication contract.
type LoginForm struct {
	Username string
	Password string

	Errors Errors
}

// CredentialsError is the single generic message shown for any authentication
// failure, so responses do not distinguish unknown, wrong-password and
// inactive accounts.
const CredentialsError = "Please enter a correct username and password. Note that both fields may be case-sensitive."

// Validate checks that both fields are present. Credential verification
// happens in the service layer; its failure is recorded via Reject.
func (f *LoginForm) Validate() bool {
	f.Errors = Errors{}
	if err := validation.ValidateRequired("username", f.Username); err != nil {
		f.Errors.Add("username", err.Error())
	}
	if err := validation.ValidateRequired("password", f.Password); err != nil {
		f.Errors.Add("password", err.Error())
	}
	return !f.Errors.Any()
}

// Reject marks the form with the generic credentials error.
func (f *LoginForm) Reject() {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	f.Errors.Add("__all__", CredentialsError)
}
