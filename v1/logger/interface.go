package logger

import "context"

//go:generate mockgen -source=interface.go -destination=mock_log.go -package=logger

// Log defines the logging contract consumed by the other hivetrace packages.
// It is implemented by the concrete *Logger type.
//
// The error parameter is separate from the fields maps because nearly every
// call site has exactly one error in hand; pass nil when there is none.
type Log interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})

	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
