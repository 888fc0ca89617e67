package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pinktech/kounty-api/internal/api/dto"
	"github.com/pinktech/kounty-api/internal/auth"
	"github.com/pinktech/kounty-api/internal/service"
	"github.com/pinktech/kounty-api/pkg/errorutil"
)

// CredentialsHandler exposes CRUD for datasource authentication credentials.
type CredentialsHandler struct {
	credentials *service.CredentialService
}

// NewCredentialsHandler constructs handler.
func NewCredentialsHandler(credentials *service.CredentialService) *CredentialsHandler {
	return &CredentialsHandler{credentials: credentials}
}

// Create handles POST /api/authentication-credentials.
func (h *CredentialsHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("El usuario no esta autenticado.")
	}

	var req dto.CreateCredentialRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("Los datos enviados no son válidos.", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	credential, err := h.credentials.Create(c.UserContext(), service.CreateCredentialParams{
		Name:         req.Name,
		Username:     req.Username,
		AccessToken:  req.AccessToken,
		Status:       req.Status,
		DatasourceID: req.DatasourceID,
	}, user.ID)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(credential)
}

// Show handles GET /api/authentication-credentials/:id.
func (h *CredentialsHandler) Show(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("El usuario no esta autenticado.")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorutil.NewValidationError("El identificador no es válido.", nil)
	}

	credential, err := h.credentials.Show(c.UserContext(), id, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(credential)
}

// RetrieveByDatasource handles GET /api/datasources/:datasourceId, listing
// the caller's credentials for that datasource.
func (h *CredentialsHandler) RetrieveByDatasource(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("El usuario no esta autenticado.")
	}

	datasourceID, err := uuid.Parse(c.Params("datasourceId"))
	if err != nil {
		return errorutil.NewValidationError("El identificador no es válido.", nil)
	}

	credentials, err := h.credentials.Retrieve(c.UserContext(), datasourceID, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(credentials)
}

// Update handles PUT /api/authentication-credentials/:id.
func (h *CredentialsHandler) Update(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("El usuario no esta autenticado.")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorutil.NewValidationError("El identificador no es válido.", nil)
	}

	var req dto.UpdateCredentialRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("Los datos enviados no son válidos.", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if _, err := h.credentials.Rename(c.UserContext(), id, user.ID, req.Name); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// UpdateStatus handles PUT /api/authentication-credentials/:id/status.
func (h *CredentialsHandler) UpdateStatus(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("El usuario no esta autenticado.")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorutil.NewValidationError("El identificador no es válido.", nil)
	}

	var req dto.UpdateCredentialStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("Los datos enviados no son válidos.", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.credentials.UpdateStatus(c.UserContext(), id, user.ID, req.Status); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete handles DELETE /api/authentication-credentials/:id.
func (h *CredentialsHandler) Delete(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("El usuario no esta autenticado.")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorutil.NewValidationError("El identificador no es válido.", nil)
	}

	if err := h.credentials.Delete(c.UserContext(), id, user.ID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
