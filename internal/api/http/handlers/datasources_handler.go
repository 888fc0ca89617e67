package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pinktech/kounty-api/internal/domain"
	"github.com/pinktech/kounty-api/internal/repository"
	"github.com/pinktech/kounty-api/pkg/errorutil"
)

// DatasourcesHandler exposes the datasource catalog.
type DatasourcesHandler struct {
	datasources repository.DatasourceRepository
}

// NewDatasourcesHandler constructs handler.
func NewDatasourcesHandler(datasources repository.DatasourceRepository) *DatasourcesHandler {
	return &DatasourcesHandler{datasources: datasources}
}

// Retrieve handles GET /api/datasources.
func (h *DatasourcesHandler) Retrieve(c *fiber.Ctx) error {
	datasources, err := h.datasources.Retrieve(c.UserContext())
	if err != nil {
		var domainErr *errorutil.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return errorutil.NewInternalError(err)
	}
	if datasources == nil {
		datasources = []domain.Datasource{}
	}
	return c.JSON(datasources)
}
