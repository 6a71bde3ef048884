package resolution

import (
	"errors"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/sorrel/pkg/actions"
	ctxmiddleware "github.com/Ramsey-B/sorrel/pkg/context"
	"github.com/Ramsey-B/sorrel/pkg/matching"
	"github.com/Ramsey-B/sorrel/pkg/models"
)

var validate = validator.New()

// Register registers resolution routes
func Register(g *echo.Group) {
	g.POST("/resolve", ResolveCreate)
	g.POST("/similar", FindSimilar)
	g.POST("/reply", HandleReply)
}

// ResolveCreateRequest is the request body for resolving a create action
type ResolveCreateRequest struct {
	ConversationID string                     `json:"conversation_id" validate:"required"`
	Request        models.CreateActionRequest `json:"request" validate:"required"`
}

// ResolveCreate runs a create action through duplicate detection. The
// response either carries the created entity or the blocked payload with
// up to three suggestions and a pending confirmation.
func ResolveCreate(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID := ctxmiddleware.GetTenantID(ctx)
	if tenantID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "tenant_id is required")
	}

	var req ResolveCreateRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, dispatcher, err := ectoinject.GetContext[*actions.Dispatcher](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	result, err := dispatcher.ResolveCreate(ctx, tenantID, req.ConversationID, req.Request)
	if err != nil {
		if errors.Is(err, models.ErrUnknownEntityKind) {
			return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// FindSimilarRequest is the request body for a permissive similarity search
type FindSimilarRequest struct {
	EntityType models.EntityKind   `json:"entity_type" validate:"required"`
	Fields     models.EntityFields `json:"fields"`
	ExcludeID  string              `json:"exclude_id,omitempty"`
	MinScore   *float64            `json:"min_score,omitempty"`
}

// FindSimilar returns ranked matches without blocking anything. Callers use
// it for search-style lookups with a lower threshold than create blocking.
func FindSimilar(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID := ctxmiddleware.GetTenantID(ctx)
	if tenantID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "tenant_id is required")
	}

	var req FindSimilarRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, resolver, err := ectoinject.GetContext[*matching.Resolver](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	minScore := req.MinScore
	if minScore == nil {
		searchThreshold := resolver.SearchThreshold()
		minScore = &searchThreshold
	}

	matches, err := resolver.FindSimilar(ctx, tenantID, matching.Query{
		Kind:      req.EntityType,
		Fields:    req.Fields,
		ExcludeID: req.ExcludeID,
		MinScore:  minScore,
	})
	if err != nil {
		if errors.Is(err, models.ErrUnknownEntityKind) {
			return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"matches": matching.SimilarEntities(matches, 0),
	})
}

// HandleReplyRequest is the request body for a confirmation reply
type HandleReplyRequest struct {
	ConversationID string `json:"conversation_id" validate:"required"`
	Message        string `json:"message"`
	// Choice bypasses free-text classification when the caller already knows
	// the decision.
	Choice models.ConfirmationChoice `json:"choice,omitempty"`
}

// HandleReplyResponse wraps the action result with whether the message was
// consumed as a confirmation reply at all.
type HandleReplyResponse struct {
	Handled bool                 `json:"handled"`
	Result  *models.ActionResult `json:"result,omitempty"`
}

// HandleReply feeds a user message (or an explicit choice) through the
// conversation's pending confirmation. Handled is false when nothing was
// pending or the message did not classify, so the caller routes the message
// through normal conversation handling.
func HandleReply(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID := ctxmiddleware.GetTenantID(ctx)
	if tenantID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "tenant_id is required")
	}

	var req HandleReplyRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, dispatcher, err := ectoinject.GetContext[*actions.Dispatcher](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	var (
		result  models.ActionResult
		handled bool
	)
	if req.Choice != "" {
		result, handled, err = dispatcher.ResolveChoice(ctx, tenantID, req.ConversationID, req.Choice)
	} else {
		result, handled, err = dispatcher.HandleReply(ctx, tenantID, req.ConversationID, req.Message)
	}
	if err != nil {
		return err
	}

	resp := HandleReplyResponse{Handled: handled}
	if handled {
		resp.Result = &result
	}
	return c.JSON(http.StatusOK, resp)
}
