package handler

import (
	"net/http"
	"time"

	"blog/internal/delivery/http/response"
	"blog/internal/domain/entity"
	"blog/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// APIHandler serves the read-only JSON view of users and posts.
type APIHandler struct {
	users usecase.UserUsecase
	posts usecase.PostUsecase
}

func NewAPIHandler(users usecase.UserUsecase, posts usecase.PostUsecase) *APIHandler {
	return &APIHandler{
		users: users,
		posts: posts,
	}
}

// UserResponse is the public view of a user. The password digest is never exposed.
type UserResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	FavoriteColor string    `json:"favorite_color,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type PostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

func (h *APIHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}

	return response.Success(c, http.StatusOK, out, "")
}

func (h *APIHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "")
}

func (h *APIHandler) ListPosts(c echo.Context) error {
	posts, err := h.posts.ListPosts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}

	return response.Success(c, http.StatusOK, out, "")
}

func (h *APIHandler) GetPost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	post, err := h.posts.GetPost(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toPostResponse(post), "")
}

func toUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:            u.ID.String(),
		Name:          u.Name,
		Email:         u.Email,
		FavoriteColor: u.FavoriteColor,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func toPostResponse(p *entity.Post) PostResponse {
	return PostResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		Slug:      p.Slug,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
