package domain

import "errors"

var (
	// ErrInvalidAddress is returned when a key is not a dotted-decimal IPv4 address
	ErrInvalidAddress = errors.New("invalid IPv4 address")
	// ErrFileRead is returned when an existing annotation file cannot be read or parsed
	ErrFileRead = errors.New("failed to read annotation file")
	// ErrFileWrite is returned when the annotation file cannot be written
	ErrFileWrite = errors.New("failed to write annotation file")
)
