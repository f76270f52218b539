package viewmodel

import apperrors "github.com/jrsteele09/captal-web/internal/errors"

// isSessionExpired marks failures the page cannot recover from; handlers send the user to /login
func isSessionExpired(err error) bool {
	return apperrors.Is(err, apperrors.ErrSessionExpired)
}
