package httpapi

import (
	"strconv"

	"github.com/arshan09/AuthenticationApp/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := decodeStrict(c, &req); err != nil {
		return badRequest(c, err)
	}

	_, err := s.users.Register(c.UserContext(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		DeviceID: req.DeviceID,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(messageBody{Message: msgRegistered})
}

func (s *Server) verifyOTPAndLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := decodeStrict(c, &req); err != nil {
		return badRequest(c, err)
	}

	pair, err := s.users.VerifyOTPAndLogin(c.UserContext(), services.LoginInput{
		Email:    req.Email,
		OTP:      req.OTP,
		Password: req.Password,
		DeviceID: req.DeviceID,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(loginResponse{
		Message:      msgLoginOK,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) refreshToken(c *fiber.Ctx) error {
	id, _ := IdentityFrom(c)
	if id.UserID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Error: msgInvalidUserID})
	}

	pair, err := s.users.RefreshToken(c.UserContext(), id.UserID, id.DeviceID)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(refreshResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (s *Server) listUsers(c *fiber.Ctx) error {
	// non-numeric values become 0 and fall back to the defaults
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	users, err := s.users.ListUsers(c.UserContext(), page, limit)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(users)
}

func (s *Server) forgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := decodeStrict(c, &req); err != nil {
		return badRequest(c, err)
	}

	if err := s.users.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(messageBody{Message: msgResetLinkSent})
}

func (s *Server) resetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := decodeStrict(c, &req); err != nil {
		return badRequest(c, err)
	}

	if err := s.users.ResetPassword(c.UserContext(), req.ResetToken, req.NewPassword); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(messageBody{Message: msgResetOK})
}
