package user

import (
	"errors"
	"fmt"
)

type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"firstname"`
	LastName       string `json:"lastname"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profilePicture"`
}

// Input is the writable part of a User as accepted by create and update.
type Input struct {
	Email          string `json:"email" form:"email"`
	FirstName      string `json:"firstname" form:"firstname"`
	LastName       string `json:"lastname" form:"lastname"`
	Age            int    `json:"age" form:"age"`
	Gender         string `json:"gender" form:"gender"`
	Phone          string `json:"phone" form:"phone"`
	ProfilePicture string `json:"profilePicture" form:"profilePicture"`
}

func (in Input) isMissingRequiredFields() bool {
	return in.Email == "" || in.FirstName == "" || in.LastName == "" || in.Age == 0 ||
		in.Gender == "" || in.Phone == "" || in.ProfilePicture == ""
}

func (in Input) toUser(id int64) User {
	return User{
		ID:             id,
		Email:          in.Email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Age:            in.Age,
		Gender:         in.Gender,
		Phone:          in.Phone,
		ProfilePicture: in.ProfilePicture,
	}
}

var (
	ErrValidation = errors.New("all fields are required")
	ErrNotFound   = errors.New("user not found")
)

// StoreError reports a failed statement against the store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("user store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
