package errors

import (
	"fmt"
	"os"
	"strings"

	"pastectl/pkg/logger"

	"github.com/fatih/color"
)

type ExitCode int

const (
	ExitCodeSuccess       ExitCode = 0
	ExitCodeGeneral       ExitCode = 1
	ExitCodeConfig        ExitCode = 2
	ExitCodeClipboard     ExitCode = 3
	ExitCodeValidation    ExitCode = 4
	ExitCodeFileOperation ExitCode = 5
	ExitCodeImage         ExitCode = 6
	ExitCodeEncode        ExitCode = 7
)

type Error struct {
	Code       ExitCode
	Message    string
	Underlying error
	Suggestion string
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

func New(code ExitCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func NewWithError(code ExitCode, message string, err error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
	}
}

func NewWithSuggestion(code ExitCode, message string, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	if wrapped, ok := err.(*Error); ok {
		return &Error{
			Code:       wrapped.Code,
			Message:    message + ": " + wrapped.Message,
			Underlying: wrapped.Underlying,
			Suggestion: wrapped.Suggestion,
		}
	}

	return &Error{
		Code:       ExitCodeGeneral,
		Message:    message,
		Underlying: err,
	}
}

func IsExitCode(err error, code ExitCode) bool {
	if err == nil {
		return false
	}

	if e, ok := err.(*Error); ok {
		return e.Code == code
	}

	return false
}

// HandleReturn processes an error, prints it to stderr, and returns the
// appropriate exit code. It does not call os.Exit - the caller is responsible
// for exiting the program.
func HandleReturn(err error) ExitCode {
	if err == nil {
		return ExitCodeSuccess
	}

	var exitCode ExitCode = ExitCodeGeneral
	var message string
	var suggestion string

	if e, ok := err.(*Error); ok {
		exitCode = e.Code
		message = e.Message
		suggestion = e.Suggestion

		if e.Underlying != nil {
			logger.Error().Err(e.Underlying).Msg(e.Message)
		} else {
			logger.Error().Msg(e.Message)
		}
	} else {
		message = err.Error()
		logger.Error().Msg(message)
	}

	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)

	fmt.Fprintln(os.Stderr)
	red.Fprint(os.Stderr, "Error: ")
	fmt.Fprintln(os.Stderr, message)

	if suggestion != "" {
		yellow.Fprint(os.Stderr, "Suggestion: ")
		lines := strings.Split(suggestion, "\n")
		for i, line := range lines {
			if i == 0 {
				fmt.Fprintln(os.Stderr, line)
			} else {
				fmt.Fprintln(os.Stderr, "           "+line)
			}
		}
	}

	fmt.Fprintln(os.Stderr)

	return exitCode
}

func ClipboardUnavailableError(err error) *Error {
	return &Error{
		Code:       ExitCodeClipboard,
		Message:    "Cannot open system clipboard",
		Underlying: err,
		Suggestion: "Make sure a display session is available (DISPLAY or WAYLAND_DISPLAY).",
	}
}

func MissingFilenameError(path string) *Error {
	return &Error{
		Code:    ExitCodeValidation,
		Message: fmt.Sprintf("Could not determine filename for '%s'", path),
	}
}

func MissingExtensionError(path string) *Error {
	return NewWithSuggestion(ExitCodeValidation,
		fmt.Sprintf("Could not determine extension for '%s'", path),
		"Files without an extension are not supported.")
}

func CopyFailedError(path string, err error) *Error {
	return &Error{
		Code:       ExitCodeFileOperation,
		Message:    fmt.Sprintf("Failed to copy '%s'", path),
		Underlying: err,
	}
}

func InvalidImageBufferError(width, height, length int) *Error {
	return &Error{
		Code:    ExitCodeValidation,
		Message: fmt.Sprintf("Invalid image buffer: got %d bytes for %dx%d RGBA", length, width, height),
	}
}

func ImageDecodeFailedError(width, height int) *Error {
	return &Error{
		Code:    ExitCodeImage,
		Message: fmt.Sprintf("Could not build image from raw %dx%d data", width, height),
	}
}

func EncodeFailedError(err error) *Error {
	return &Error{
		Code:       ExitCodeEncode,
		Message:    "Failed to encode PNG",
		Underlying: err,
	}
}

func ConfigError(message string) *Error {
	return NewWithSuggestion(ExitCodeConfig, message,
		"Check your configuration file or set the required environment variables.")
}

func ValidationError(message string) *Error {
	return &Error{
		Code:    ExitCodeValidation,
		Message: message,
	}
}
