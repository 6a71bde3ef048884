package entity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/sorrel/pkg/database"
	"github.com/Ramsey-B/sorrel/pkg/models"
	"github.com/Ramsey-B/sorrel/pkg/tracing"
)

const table = "entities"

var columns = []string{"id", "tenant_id", "kind", "name", "email", "phone", "reference", "barcode", "created_at", "updated_at"}

// Repository handles candidate entity persistence. It backs the resolver's
// candidate scans and the default create handlers.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new entity repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// ListByKind returns every entity of one kind for a tenant, oldest first.
// The resolver treats the result as a point-in-time snapshot.
func (r *Repository) ListByKind(ctx context.Context, tenantID string, kind models.EntityKind) ([]models.CandidateEntity, error) {
	ctx, span := tracing.StartSpan(ctx, "entity.Repository.ListByKind")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(table)
	sb.Where(
		sb.Equal("tenant_id", tenantID),
		sb.Equal("kind", string(kind)),
	)
	sb.OrderBy("created_at", "id")

	query, args := sb.Build()
	entities := []models.CandidateEntity{}
	if err := r.db.SelectContext(ctx, &entities, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list entities")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list entities")
	}

	return entities, nil
}

// Get retrieves an entity by ID
func (r *Repository) Get(ctx context.Context, tenantID string, id string) (*models.CandidateEntity, error) {
	ctx, span := tracing.StartSpan(ctx, "entity.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From(table)
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("tenant_id", tenantID),
	)

	query, args := sb.Build()
	var entity models.CandidateEntity
	if err := r.db.GetContext(ctx, &entity, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("entity %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get entity")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get entity")
	}

	return &entity, nil
}

// Create persists a new entity
func (r *Repository) Create(ctx context.Context, entity *models.CandidateEntity) (*models.CandidateEntity, error) {
	ctx, span := tracing.StartSpan(ctx, "entity.Repository.Create")
	defer span.End()

	if entity.ID == "" {
		entity.ID = uuid.New().String()
	}
	entity.CreatedAt = time.Now().UTC()
	entity.UpdatedAt = entity.CreatedAt

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto(table)
	sb.Cols(columns...)
	sb.Values(entity.ID, entity.TenantID, string(entity.Kind), entity.Name, entity.Email, entity.Phone, entity.Reference, entity.Barcode, entity.CreatedAt, entity.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"entity_id": entity.ID}).Error("Failed to create entity")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create entity")
	}

	return entity, nil
}

// Update overwrites an entity's identity fields
func (r *Repository) Update(ctx context.Context, entity *models.CandidateEntity) (*models.CandidateEntity, error) {
	ctx, span := tracing.StartSpan(ctx, "entity.Repository.Update")
	defer span.End()

	entity.UpdatedAt = time.Now().UTC()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update(table)
	sb.Set(
		sb.Assign("name", entity.Name),
		sb.Assign("email", entity.Email),
		sb.Assign("phone", entity.Phone),
		sb.Assign("reference", entity.Reference),
		sb.Assign("barcode", entity.Barcode),
		sb.Assign("updated_at", entity.UpdatedAt),
	)
	sb.Where(
		sb.Equal("id", entity.ID),
		sb.Equal("tenant_id", entity.TenantID),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"entity_id": entity.ID}).Error("Failed to update entity")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update entity")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("entity %s not found", entity.ID))
	}

	return entity, nil
}

// Delete removes an entity
func (r *Repository) Delete(ctx context.Context, tenantID string, id string) error {
	ctx, span := tracing.StartSpan(ctx, "entity.Repository.Delete")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewDeleteBuilder()
	sb.DeleteFrom(table)
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("tenant_id", tenantID),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"entity_id": id}).Error("Failed to delete entity")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete entity")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("entity %s not found", id))
	}

	return nil
}
