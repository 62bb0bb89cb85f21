package httpapi

import (
	"errors"

	"github.com/arshan09/AuthenticationApp/internal/common"
	"github.com/gofiber/fiber/v2"
)

const (
	msgInternal          = "Internal Server Error"
	msgRegistered        = "User registered successfully"
	msgLoginOK           = "Login successful"
	msgResetLinkSent     = "Password reset link sent to your email"
	msgResetOK           = "Password reset successful"
	msgAccessInvalid     = "Access token is not valid"
	msgRefreshInvalid    = "Refresh token is not valid"
	msgInvalidUserID     = "Invalid user ID in token"
	msgDeviceNotAuthed   = "Device not authorized"
	msgMissingToken      = "Access token is required"
	msgUserExists        = "User already exists"
	msgWeakPassword      = "Password is too weak"
	msgInvalidCreds      = "Invalid credentials"
	msgInvalidOTP        = "Invalid OTP"
	msgUserNotFound      = "User not found"
	msgInvalidResetToken = "Invalid or expired token"
	msgUnauthorized      = "Unauthorized"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// errorStatus maps domain errors to a status and message. The boolean is
// false for errors that have no public mapping.
func errorStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, common.ErrConflict):
		return fiber.StatusBadRequest, msgUserExists, true
	case errors.Is(err, common.ErrWeakPassword):
		return fiber.StatusBadRequest, msgWeakPassword, true
	case errors.Is(err, common.ErrInvalidOTP):
		return fiber.StatusBadRequest, msgInvalidOTP, true
	case errors.Is(err, common.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, msgInvalidCreds, true
	case errors.Is(err, common.ErrInvalidOrExpiredToken):
		return fiber.StatusBadRequest, msgInvalidResetToken, true
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound, msgUserNotFound, true
	case errors.Is(err, common.ErrDeviceNotAuthorized):
		return fiber.StatusUnauthorized, msgDeviceNotAuthed, true
	case errors.Is(err, common.ErrorUnauthorized):
		return fiber.StatusUnauthorized, msgUnauthorized, true
	default:
		return fiber.StatusInternalServerError, msgInternal, false
	}
}

func (s *Server) writeError(c *fiber.Ctx, err error) error {
	status, msg, known := errorStatus(err)
	if !known {
		s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(errorBody{Error: msg})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorBody{Error: err.Error()})
}
