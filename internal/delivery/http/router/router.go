// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"net/http"

	"blog/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	PageHandler *handler.PageHandler
	UserHandler *handler.UserHandler
	PostHandler *handler.PostHandler
	APIHandler  *handler.APIHandler
}

// Route is one row of the routing table.
type Route struct {
	Method  string
	Path    string
	Handler echo.HandlerFunc
}

// router holds all the handlers that need to be registered.
type router struct {
	pages *handler.PageHandler
	users *handler.UserHandler
	posts *handler.PostHandler
	api   *handler.APIHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		pages: params.PageHandler,
		users: params.UserHandler,
		posts: params.PostHandler,
		api:   params.APIHandler,
	}
}

// Routes returns the routing table. Static segments win over parameters in
// echo, so /user/add is never taken as a greeting for "add".
func (r *router) Routes() []Route {
	return []Route{
		{http.MethodGet, "/", r.pages.Index},
		{http.MethodGet, "/user/:name", r.pages.Greet},
		{http.MethodGet, "/name", r.pages.NameForm},
		{http.MethodPost, "/name", r.pages.SubmitName},

		{http.MethodGet, "/user/add", r.users.AddUserForm},
		{http.MethodPost, "/user/add", r.users.AddUser},
		{http.MethodGet, "/update/:id", r.users.UpdateUserForm},
		{http.MethodPost, "/update/:id", r.users.UpdateUser},
		{http.MethodGet, "/delete/:id", r.users.ConfirmDelete},
		{http.MethodPost, "/delete/:id", r.users.DeleteUser},
		{http.MethodGet, "/test_pw", r.users.TestPasswordForm},
		{http.MethodPost, "/test_pw", r.users.TestPassword},

		{http.MethodGet, "/posts", r.posts.ListPosts},
		{http.MethodGet, "/posts/:id", r.posts.GetPost},
		{http.MethodGet, "/posts/:id/qrcode.png", r.posts.PostQRCode},
		{http.MethodGet, "/posts/edit/:id", r.posts.EditPostForm},
		{http.MethodPost, "/posts/edit/:id", r.posts.EditPost},
		{http.MethodGet, "/add_post", r.posts.AddPostForm},
		{http.MethodPost, "/add_post", r.posts.AddPost},

		{http.MethodGet, "/health", handler.HealthCheck},
		{http.MethodGet, "/api/users", r.api.ListUsers},
		{http.MethodGet, "/api/users/:id", r.api.GetUser},
		{http.MethodGet, "/api/posts", r.api.ListPosts},
		{http.MethodGet, "/api/posts/:id", r.api.GetPost},
	}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	for _, route := range r.Routes() {
		e.Add(route.Method, route.Path, route.Handler)
	}
}
