package models

import "errors"

// Domain errors returned by the store layer. Handlers map these to HTTP
// problem responses; they never carry driver-level details.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("a user with this email already exists")
	ErrAuthorNotFound   = errors.New("author not found")
	ErrBookNotFound     = errors.New("book not found")
	ErrQuoteNotFound    = errors.New("quote not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateTag     = errors.New("a category with this tag already exists")
)
