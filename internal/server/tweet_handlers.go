package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"chirp/internal/forms"
	"chirp/internal/media"
	"chirp/internal/models"
	"chirp/internal/presenter"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// feedData is the view model for the global feed page.
type feedData struct {
	Tweets []presenter.TweetPresenter
}

// composeData is the view model for the compose page.
type composeData struct {
	Form *forms.CreateTweetForm
}

// tweetData is the view model for the tweet detail page.
type tweetData struct {
	Tweet presenter.TweetPresenter
}

// Feed renders the global feed, oldest tweet first.
func (s *Server) Feed(c *fiber.Ctx) error {
	tweets, err := s.tweetRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "tweets/index", "Feed", feedData{
		Tweets: presenter.NewTweets(tweets),
	})
}

// ShowCompose renders the compose form. Viewing is public; submitting needs a
// session.
func (s *Server) ShowCompose(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "tweets/new", "Compose", composeData{
		Form: &forms.CreateTweetForm{},
	})
}

// CreateTweet persists a new tweet for the session user and redirects to the
// feed with a link to the new tweet. A failed form re-renders the compose page
// with field errors and creates nothing.
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	userID, ok := s.currentUserID(c)
	if !ok {
		return fiber.ErrForbidden
	}

	form := &forms.CreateTweetForm{Message: c.FormValue("message")}
	ok = form.Validate()

	if stored, uploadErr := s.saveUpload(c, "image", media.BucketAttachments); uploadErr != nil {
		form.Errors.Add("image", uploadErr.Error())
		ok = false
	} else if stored != nil {
		form.Image = stored.Path
		form.ImageWidth = stored.Width
		form.ImageHeight = stored.Height
	}

	if !ok {
		return s.render(c, fiber.StatusOK, "tweets/new", "Compose", composeData{Form: form})
	}

	tweet, err := s.tweetService.Compose(c.UserContext(), service.ComposeInput{
		UserID:      userID,
		Message:     form.Message,
		Image:       form.Image,
		ImageWidth:  form.ImageWidth,
		ImageHeight: form.ImageHeight,
	})
	if err != nil {
		return err
	}

	setFlash(c, "success", fmt.Sprintf(
		`Your tweet was posted. <a href="/tweets/%d">View it</a>.`, tweet.ID))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// ShowTweet renders a single tweet by numeric id.
func (s *Server) ShowTweet(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return fiber.ErrNotFound
	}

	tweet, err := s.tweetRepo.GetByID(c.UserContext(), uint(id))
	if err != nil {
		return err
	}

	return s.render(c, fiber.StatusOK, "tweets/show", tweet.String(), tweetData{
		Tweet: presenter.NewTweet(*tweet),
	})
}

// likeRequest is the body of the like endpoint. The id arrives as a string or
// a number depending on the client; json.Number accepts both.
type likeRequest struct {
	ID json.Number `json:"id"`
}

// LikeTweet increments a tweet's like counter by exactly 1 and returns the new
// value. Repeated likes from the same user each count again.
func (s *Server) LikeTweet(c *fiber.Ctx) error {
	var req likeRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil || req.ID.String() == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid data"))
	}

	id, err := strconv.ParseUint(req.ID.String(), 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid data"))
	}

	likes, err := s.tweetService.Like(c.UserContext(), uint(id))
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"likes": likes})
}

// saveUpload reads an optional multipart file field and stores it in the given
// media bucket. A missing field returns (nil, nil).
func (s *Server) saveUpload(c *fiber.Ctx, field, bucket string) (*media.Stored, error) {
	header, err := c.FormFile(field)
	if err != nil || header == nil || header.Size == 0 {
		// No file attached.
		return nil, nil
	}

	content, err := readUpload(header)
	if err != nil {
		return nil, err
	}

	return s.media.Save(bucket, content)
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, media.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return content, nil
}
