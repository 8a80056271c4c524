package server

import (
	"strconv"

	"chirp/internal/forms"
	"chirp/internal/media"
	"chirp/internal/presenter"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// registerData is the view model for the registration page.
type registerData struct {
	Form *forms.CreateUserForm
}

// editData is the view model for the self-edit page. Username is shown but
// not editable.
type editData struct {
	UserID   uint
	Username string
	Form     *forms.UpdateUserForm
}

// profileData is the view model for the public profile page.
type profileData struct {
	Username    string
	DisplayName string
	AvatarURL   string
	Tweets      []presenter.TweetPresenter
}

// ShowRegister renders the registration form.
func (s *Server) ShowRegister(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "users/new", "Join", registerData{
		Form: &forms.CreateUserForm{},
	})
}

// Register creates a new active account and redirects to the login page. A
// failed form re-renders with field errors and persists nothing.
func (s *Server) Register(c *fiber.Ctx) error {
	form := &forms.CreateUserForm{
		Username:    c.FormValue("username"),
		Email:       c.FormValue("email"),
		DisplayName: c.FormValue("display_name"),
		Password1:   c.FormValue("password1"),
		Password2:   c.FormValue("password2"),
	}

	ok := form.Validate(c.UserContext(), s.userRepo)

	if stored, uploadErr := s.saveUpload(c, "avatar", media.BucketAvatars); uploadErr != nil {
		form.Errors.Add("avatar", uploadErr.Error())
		ok = false
	} else if stored != nil {
		form.Avatar = stored.Path
	}

	if !ok {
		return s.render(c, fiber.StatusOK, "users/new", "Join", registerData{Form: form})
	}

	if _, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Username:    form.Username,
		Email:       form.Email,
		DisplayName: form.DisplayName,
		Password:    form.Password1,
		Avatar:      form.Avatar,
	}); err != nil {
		return err
	}

	setFlash(c, "success", "Your account was created. Please sign in.")
	return c.Redirect("/users/login", fiber.StatusSeeOther)
}

// ShowEditProfile renders the self-update form pre-filled with the caller's
// own data.
func (s *Server) ShowEditProfile(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return fiber.ErrForbidden
	}

	return s.render(c, fiber.StatusOK, "users/edit", "Your details", editData{
		UserID:   user.ID,
		Username: user.Username,
		Form: &forms.UpdateUserForm{
			Email:       user.Email,
			DisplayName: user.DisplayName,
		},
	})
}

// UpdateProfile applies the self-update form. The path identity must equal
// the session identity; a mismatch reports an error and redirects back to the
// edit form without touching any record.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return fiber.ErrForbidden
	}

	pathID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return fiber.ErrNotFound
	}
	if uint(pathID) != user.ID {
		setFlash(c, "error", "Current user can not update this user.")
		return c.Redirect("/users/edit", fiber.StatusSeeOther)
	}

	form := &forms.UpdateUserForm{
		Email:       c.FormValue("email"),
		DisplayName: c.FormValue("display_name"),
	}

	ok := form.Validate(c.UserContext(), s.userRepo, user.ID)

	if stored, uploadErr := s.saveUpload(c, "avatar", media.BucketAvatars); uploadErr != nil {
		form.Errors.Add("avatar", uploadErr.Error())
		ok = false
	} else if stored != nil {
		form.Avatar = stored.Path
	}

	if !ok {
		return s.render(c, fiber.StatusOK, "users/edit", "Your details", editData{
			UserID:   user.ID,
			Username: user.Username,
			Form:     form,
		})
	}

	updated, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:      user.ID,
		Email:       form.Email,
		DisplayName: form.DisplayName,
		Avatar:      form.Avatar,
	})
	if err != nil {
		return err
	}

	setFlash(c, "success", "Your details were updated.")
	return c.Redirect("/users/"+updated.Username, fiber.StatusSeeOther)
}

// ShowProfile renders a public profile by username, newest tweet first.
func (s *Server) ShowProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.userRepo.GetByUsername(c.UserContext(), username)
	if err != nil {
		return err
	}
	if user == nil {
		return fiber.ErrNotFound
	}

	tweets, err := s.tweetRepo.ListByUser(c.UserContext(), user.ID)
	if err != nil {
		return err
	}

	return s.render(c, fiber.StatusOK, "users/show", user.Username, profileData{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL(),
		Tweets:      presenter.NewTweets(tweets),
	})
}
