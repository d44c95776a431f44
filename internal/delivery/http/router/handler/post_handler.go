package handler

import (
	"log/slog"
	"net/http"

	"blog/internal/delivery/http/form"
	"blog/internal/domain/entity"
	"blog/internal/domain/service"
	"blog/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PostHandler serves the blog post pages.
type PostHandler struct {
	uc     usecase.PostUsecase
	qrcode service.QRCodeService
	logger *slog.Logger
}

func NewPostHandler(uc usecase.PostUsecase, qrcode service.QRCodeService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		uc:     uc,
		qrcode: qrcode,
		logger: logger,
	}
}

func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.uc.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}

	page := newPage("Blog Posts", nil)
	page.Data = posts

	return c.Render(http.StatusOK, "posts", page)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.findPost(c)
	if err != nil {
		return err
	}

	page := newPage(post.Title, nil)
	page.Data = post

	return c.Render(http.StatusOK, "post", page)
}

// PostQRCode returns a PNG QR code linking to the post page.
func (h *PostHandler) PostQRCode(c echo.Context) error {
	post, err := h.findPost(c)
	if err != nil {
		return err
	}

	png, err := h.qrcode.GeneratePostQR(postPath(post))
	if err != nil {
		return errors.Wrap(err, "failed to generate post QR code")
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=3600")

	return c.Blob(http.StatusOK, "image/png", png)
}

func (h *PostHandler) EditPostForm(c echo.Context) error {
	post, err := h.findPost(c)
	if err != nil {
		return err
	}

	page := newPage("Edit Post", &form.PostForm{
		Title:   post.Title,
		Content: post.Content,
		Author:  post.Author,
		Slug:    post.Slug,
	})
	page.Data = post

	return c.Render(http.StatusOK, "edit_post", page)
}

// EditPost overwrites every field of the post and shows the result.
func (h *PostHandler) EditPost(c echo.Context) error {
	post, err := h.findPost(c)
	if err != nil {
		return err
	}

	var f form.PostForm
	fieldErrs, err := bindAndValidate(c, &f)
	if err != nil {
		return err
	}

	page := newPage("Edit Post", &f)
	page.Data = post
	if fieldErrs != nil {
		page.Errors = fieldErrs

		return c.Render(http.StatusUnprocessableEntity, "edit_post", page)
	}

	updated, err := h.uc.UpdatePost(c.Request().Context(), &usecase.PostInput{
		ID:      post.ID,
		Title:   f.Title,
		Content: f.Content,
		Author:  f.Author,
		Slug:    f.Slug,
	})
	if err != nil {
		status, flash, ok := writeFailure(err)
		if !ok {
			return err
		}
		logFailure(c, h.logger, "Failed to update post", status, err)
		page.Flash(flash)

		return c.Render(status, "edit_post", page)
	}

	result := newPage(updated.Title, nil)
	result.Data = updated
	result.Flash("Post Has Been Updated!")

	return c.Render(http.StatusOK, "post", result)
}

func (h *PostHandler) AddPostForm(c echo.Context) error {
	return c.Render(http.StatusOK, "add_post", newPage("Add Post", &form.PostForm{}))
}

func (h *PostHandler) AddPost(c echo.Context) error {
	var f form.PostForm
	fieldErrs, err := bindAndValidate(c, &f)
	if err != nil {
		return err
	}

	page := newPage("Add Post", &f)
	if fieldErrs != nil {
		page.Errors = fieldErrs

		return c.Render(http.StatusUnprocessableEntity, "add_post", page)
	}

	if _, err := h.uc.CreatePost(c.Request().Context(), &usecase.PostInput{
		Title:   f.Title,
		Content: f.Content,
		Author:  f.Author,
		Slug:    f.Slug,
	}); err != nil {
		status, flash, ok := writeFailure(err)
		if !ok {
			return err
		}
		logFailure(c, h.logger, "Failed to add post", status, err)
		page.Flash(flash)

		return c.Render(status, "add_post", page)
	}

	page.Form = &form.PostForm{}
	page.Flash("Blog Post Submitted Successfully!")

	return c.Render(http.StatusOK, "add_post", page)
}

func (h *PostHandler) findPost(c echo.Context) (*entity.Post, error) {
	id, err := parseID(c)
	if err != nil {
		return nil, err
	}

	return h.uc.GetPost(c.Request().Context(), id)
}

func postPath(post *entity.Post) string {
	return "/posts/" + post.ID.String()
}
