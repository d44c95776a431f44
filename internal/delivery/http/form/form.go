// Package form declares the HTML forms accepted by the page handlers. Field
// names in `form` tags are the input names used by the templates.
package form

// UserForm is submitted on /user/add.
type UserForm struct {
	Name            string `form:"name" mod:"trim" validate:"required,max=200"`
	Email           string `form:"email" mod:"trim" validate:"required,email,max=120"`
	FavoriteColor   string `form:"favorite_color" mod:"trim" validate:"max=120"`
	Password        string `form:"password_hash" validate:"notblank,bcryptlen"`
	PasswordConfirm string `form:"password_hash2" validate:"notblank,bcryptlen,eqfield=Password"`
}

// UserEditForm is submitted on /update/:id. The password cannot be changed there.
type UserEditForm struct {
	Name          string `form:"name" mod:"trim" validate:"required,max=200"`
	Email         string `form:"email" mod:"trim" validate:"required,email,max=120"`
	FavoriteColor string `form:"favorite_color" mod:"trim" validate:"max=120"`
}

type PostForm struct {
	Title   string `form:"title" mod:"trim" validate:"required,max=255"`
	Content string `form:"content" validate:"notblank"`
	Author  string `form:"author" mod:"trim" validate:"required,max=255"`
	Slug    string `form:"slug" mod:"trim" validate:"required,max=255"`
}

// PasswordForm is submitted on /test_pw.
type PasswordForm struct {
	Email    string `form:"email" mod:"trim" validate:"required"`
	Password string `form:"password_hash" validate:"notblank"`
}

type NamerForm struct {
	Name string `form:"name" mod:"trim" validate:"required"`
}
