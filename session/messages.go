package session

import (
	"net/http"

	"github.com/jrsteele09/betatips/api"
	"github.com/jrsteele09/betatips/internal/utils"
)

// User facing messages.
const (
	MsgLoginSuccess          = "Login successful! Welcome back!"
	MsgInvalidCredentials    = "Invalid username or password. Please check your credentials and try again."
	MsgAccountDeactivated    = "Account has been deactivated. Contact support for help."
	MsgLoginFailed           = "Login failed. Please check your internet connection and try again."
	MsgRegisterSuccess       = "Registration successful!"
	MsgRegisterFailed        = "Registration failed"
	MsgPasswordMismatch      = "New passwords do not match"
	MsgPasswordTooShort      = "New password must be at least 6 characters"
	MsgPasswordChanged       = "Password changed successfully! You can now use your new password for future logins."
	MsgWrongCurrentPassword  = "Current password is incorrect. Please check and try again."
	MsgSessionExpired        = "Session expired. Please login again."
	MsgChangePasswordFailed  = "Failed to change password. Please try again."
	MsgLoggedOut             = "Logged out"
	MsgBootstrapUnreachable  = "Could not verify your session. Check your connection and try again."
	MsgTokenStorageFailed    = "Could not save your session on this device."
	MsgTokenStorageReadError = "Could not read your saved session."
)

func loginFailureMessage(err error) string {
	switch api.StatusCode(err) {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return MsgInvalidCredentials
	case http.StatusForbidden:
		return MsgAccountDeactivated
	}
	return utils.FirstNonEmpty(api.ServerMessage(err), MsgLoginFailed)
}

func changePasswordFailureMessage(err error) string {
	switch api.StatusCode(err) {
	case http.StatusBadRequest:
		return MsgWrongCurrentPassword
	case http.StatusUnauthorized:
		return MsgSessionExpired
	}
	return utils.FirstNonEmpty(api.ServerMessage(err), MsgChangePasswordFailed)
}
