package http

import (
	"net/http"

	"github.com/worklens/worklens-backend-go/internal/domain/access"
	"github.com/worklens/worklens-backend-go/internal/handler/http/response"
)

type AccessHandler interface {
	// GetContext returns the requester's resolved visibility set
	GetContext(w http.ResponseWriter, r *http.Request)
}

type accessHandlerImpl struct {
	resolver access.Resolver
}

func NewAccessHandler(resolver access.Resolver) AccessHandler {
	return &accessHandlerImpl{
		resolver: resolver,
	}
}

// GetContext handles GET /access/context
func (h *accessHandlerImpl) GetContext(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, err := requesterEmail(ctx)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	resolved, err := h.resolver.Resolve(ctx, email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resolved.ToResponse())
}
