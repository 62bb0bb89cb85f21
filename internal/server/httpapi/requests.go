package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	DeviceID string `json:"deviceId"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.DeviceID, validation.Required, validation.Length(1, 200)),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	OTP      string `json:"otpInput"`
	Password string `json:"password"`
	DeviceID string `json:"deviceId"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.OTP, validation.Required),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.DeviceID, validation.Length(0, 200)),
	)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r forgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

type resetPasswordRequest struct {
	ResetToken  string `json:"resetToken"`
	NewPassword string `json:"newPassword"`
}

func (r resetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ResetToken, validation.Required),
		validation.Field(&r.NewPassword, validation.Required),
	)
}

var errEmptyBody = errors.New("request body is empty")

// decodeStrict decodes a single JSON object, rejecting unknown fields and
// trailing data, then validates it.
func decodeStrict(c *fiber.Ctx, dst validation.Validatable) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("invalid JSON: unexpected trailing data")
	}
	return dst.Validate()
}
