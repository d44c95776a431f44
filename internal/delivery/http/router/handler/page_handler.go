// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"blog/internal/delivery/http/form"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the pages that touch no storage.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

type indexView struct {
	FirstName      string
	Stuff          string
	FavouritePizza []any
}

type nameView struct {
	Name string
}

func (h *PageHandler) Index(c echo.Context) error {
	page := newPage("Home", nil)
	page.Data = indexView{
		FirstName:      "John",
		Stuff:          "This is bold text",
		FavouritePizza: []any{"Pepperoni", "Cheese", "Mushrooms", 41},
	}

	return c.Render(http.StatusOK, "index", page)
}

// Greet renders a greeting for the name in the path.
func (h *PageHandler) Greet(c echo.Context) error {
	page := newPage("User", nil)
	page.Data = nameView{Name: c.Param("name")}

	return c.Render(http.StatusOK, "user", page)
}

func (h *PageHandler) NameForm(c echo.Context) error {
	page := newPage("Name", &form.NamerForm{})
	page.Data = nameView{}

	return c.Render(http.StatusOK, "name", page)
}

// SubmitName echoes the submitted name back. Nothing is stored.
func (h *PageHandler) SubmitName(c echo.Context) error {
	var f form.NamerForm
	fieldErrs, err := bindAndValidate(c, &f)
	if err != nil {
		return err
	}

	page := newPage("Name", &f)
	if fieldErrs != nil {
		page.Errors = fieldErrs
		page.Data = nameView{}

		return c.Render(http.StatusUnprocessableEntity, "name", page)
	}

	page.Data = nameView{Name: f.Name}
	page.Form = &form.NamerForm{}
	page.Flash("Form Submitted Successfully!")

	return c.Render(http.StatusOK, "name", page)
}
