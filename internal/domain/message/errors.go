package message

import "errors"

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrNotSender       = errors.New("user is not the sender of this message")
)
