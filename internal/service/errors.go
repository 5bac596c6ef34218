package service

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid order request")
	ErrUnauthorized      = errors.New("not authorized")
	ErrInvalidTransition = errors.New("illegal order status transition")
)
