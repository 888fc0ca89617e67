package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pinktech/kounty-api/internal/api/dto"
	"github.com/pinktech/kounty-api/internal/service"
	"github.com/pinktech/kounty-api/pkg/errorutil"
)

// AuthHandler exposes the authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// SignIn handles POST /api/sign-in.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("Los datos enviados no son válidos.", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	token, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(token)
}

// SignUp handles POST /api/sign-up.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("Los datos enviados no son válidos.", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	err := h.auth.SignUp(c.UserContext(), service.SignUpParams{
		CountryCode: req.CountryCode,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}

	return c.SendStatus(http.StatusCreated)
}

// ConfirmSignUp handles POST /api/confirm-sign-up.
func (h *AuthHandler) ConfirmSignUp(c *fiber.Ctx) error {
	var req dto.ConfirmSignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("Los datos enviados no son válidos.", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.auth.ConfirmSignUp(c.UserContext(), req.Email, req.ConfirmationCode); err != nil {
		return err
	}

	return c.SendStatus(http.StatusNoContent)
}

// ForgotPassword handles POST /api/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("Los datos enviados no son válidos.", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.auth.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Se ha enviado un correo electrónico con las instrucciones correspondientes.",
	})
}

// ConfirmForgotPassword handles POST /api/confirm-forgot-password.
func (h *AuthHandler) ConfirmForgotPassword(c *fiber.Ctx) error {
	var req dto.ConfirmForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("Los datos enviados no son válidos.", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	err := h.auth.ConfirmForgotPassword(c.UserContext(), service.ConfirmForgotPasswordParams{
		Email:            req.Email,
		NewPassword:      req.NewPassword,
		ConfirmPassword:  req.ConfirmPassword,
		ConfirmationCode: req.ConfirmationCode,
	})
	if err != nil {
		return err
	}

	return c.SendStatus(http.StatusCreated)
}
