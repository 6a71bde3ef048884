package entity

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/sorrel/internal/repositories/entity"
	ctxmiddleware "github.com/Ramsey-B/sorrel/pkg/context"
	"github.com/Ramsey-B/sorrel/pkg/models"
)

var validate = validator.New()

// Register registers entity routes
func Register(g *echo.Group) {
	g.GET("/:kind", ListEntities)
	g.GET("/:kind/:id", GetEntity)
	g.PUT("/:kind/:id", UpdateEntity)
	g.DELETE("/:kind/:id", DeleteEntity)
}

// ListEntities lists every entity of one kind for the tenant
func ListEntities(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := ctxmiddleware.GetTenantID(ctx)
	if tenantID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "tenant_id is required")
	}

	kind := models.EntityKind(c.Param("kind"))
	if !kind.Valid() {
		return httperror.NewHTTPError(http.StatusBadRequest, "unknown entity kind")
	}

	ctx, repo, err := ectoinject.GetContext[*entity.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	entities, err := repo.ListByKind(ctx, tenantID, kind)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entities)
}

// GetEntity gets an entity by ID
func GetEntity(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := ctxmiddleware.GetTenantID(ctx)
	if tenantID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "tenant_id is required")
	}

	ctx, repo, err := ectoinject.GetContext[*entity.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	found, err := repo.Get(ctx, tenantID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, found)
}

// UpdateEntityRequest is the request body for overwriting an entity's
// identity fields
type UpdateEntityRequest struct {
	Name      string  `json:"name" validate:"required"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Reference *string `json:"reference,omitempty"`
	Barcode   *string `json:"barcode,omitempty"`
}

// UpdateEntity overwrites an entity's identity fields
func UpdateEntity(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := ctxmiddleware.GetTenantID(ctx)
	if tenantID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "tenant_id is required")
	}

	kind := models.EntityKind(c.Param("kind"))
	if !kind.Valid() {
		return httperror.NewHTTPError(http.StatusBadRequest, "unknown entity kind")
	}

	var req UpdateEntityRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*entity.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	updated, err := repo.Update(ctx, &models.CandidateEntity{
		ID:        c.Param("id"),
		TenantID:  tenantID,
		Kind:      kind,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Reference: req.Reference,
		Barcode:   req.Barcode,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteEntity removes an entity
func DeleteEntity(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := ctxmiddleware.GetTenantID(ctx)
	if tenantID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "tenant_id is required")
	}

	ctx, repo, err := ectoinject.GetContext[*entity.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	if err := repo.Delete(ctx, tenantID, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
