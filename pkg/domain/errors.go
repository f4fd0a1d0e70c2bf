package domain

import "errors"

const MissingAPIKeyMessage = "Please enter your OpenAI API key"

var (
	ErrNotFound           = errors.New("not found")
	ErrMissingAPIKey      = errors.New("api key is missing")
	ErrNoAssistant        = errors.New("no assistant selected")
	ErrEmptyPrompt        = errors.New("prompt is empty")
	ErrRunInProgress      = errors.New("a run is already in progress")
	ErrNoActiveRun        = errors.New("no active run")
	ErrRunFailed          = errors.New("run did not complete")
	ErrRunTimeout         = errors.New("run timed out")
	ErrRunCancelled       = errors.New("run cancelled")
	ErrFileTypeNotAllowed = errors.New("file type is not allowed")
	ErrFileTooLarge       = errors.New("file is too large")
)
