package errors

import stderr "errors"

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

// IsBadRequest reports whether the error is a request the caller can fix.
func IsBadRequest(e error) bool {
	var invalidLanguage *InvalidLanguageError
	var invalidPath *InvalidPathError
	return stderr.As(e, &invalidLanguage) || stderr.As(e, &invalidPath)
}

// IsNotFound reports whether the error refers to a session or file that does not exist.
func IsNotFound(e error) bool {
	var sessionNotFound *SessionNotFoundError
	var fileNotFound *FileNotFoundError
	return stderr.As(e, &sessionNotFound) || stderr.As(e, &fileNotFound)
}
