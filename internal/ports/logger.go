package ports

import "github.com/qwerty0zero/book-catalog/pkg/log"

// Logger is the structured logger used across the application layer.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field
