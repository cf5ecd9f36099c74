package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("wrong password")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrSessionNotFound    = errors.New("session not found")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")

	ErrClientNotFound      = errors.New("client not found")
	ErrHouseNotFound       = errors.New("house not found")
	ErrConsumptionNotFound = errors.New("consumption not found")

	ErrClientRequired = errors.New("select a specific client")
	ErrHouseRequired  = errors.New("select a house")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidReading = errors.New("invalid reading")

	ErrForbidden = errors.New("access forbidden")

	ErrDocumentNotFound = errors.New("document not found")
	ErrCorruptDocument  = errors.New("stored document is corrupt")
	ErrInvalidImport    = errors.New("invalid backup file")
)
