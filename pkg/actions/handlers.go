package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ramsey-B/sorrel/internal/repositories/entity"
	"github.com/Ramsey-B/sorrel/pkg/models"
)

// Action names understood by the default create handlers
const (
	ActionCreateClient   = "create_client"
	ActionCreateSupplier = "create_supplier"
	ActionCreateProduct  = "create_product"
)

var createActions = map[string]models.EntityKind{
	ActionCreateClient:   models.EntityKindClient,
	ActionCreateSupplier: models.EntityKindSupplier,
	ActionCreateProduct:  models.EntityKindProduct,
}

// RegisterCreateHandlers binds the default repository-backed create handlers
// for every entity kind.
func RegisterCreateHandlers(d *Dispatcher, repo *entity.Repository) {
	for action, kind := range createActions {
		d.Register(action, createHandler(repo, kind))
	}
}

func createHandler(repo *entity.Repository, kind models.EntityKind) HandlerFunc {
	return func(ctx context.Context, tenantID string, req models.CreateActionRequest) (models.ActionResult, error) {
		fields := req.Fields
		name := fields.Name
		if name == "" && kind == models.EntityKindClient {
			name = strings.TrimSpace(fmt.Sprintf("%s %s", fields.FirstName, fields.LastName))
		}

		created, err := repo.Create(ctx, &models.CandidateEntity{
			TenantID:  tenantID,
			Kind:      kind,
			Name:      name,
			Email:     optional(fields.Email),
			Phone:     optional(fields.Phone),
			Reference: optional(fields.Reference),
			Barcode:   optional(fields.Barcode),
		})
		if err != nil {
			return models.ActionResult{}, err
		}

		return models.ActionResult{
			Success:    true,
			EntityType: kind,
			EntityID:   created.ID,
		}, nil
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
