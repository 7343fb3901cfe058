package handlers

import (
	"github.com/gin-gonic/gin"

	"quarryledger/internal/domain"
	"quarryledger/internal/domain/catalogs/quarry"
	"quarryledger/internal/infrastructure/http/v1/dto"
)

// QuarryHandler handles quarry catalog endpoints.
type QuarryHandler struct {
	*BaseHandler
	service *quarry.Service
}

// NewQuarryHandler creates a new quarry handler.
func NewQuarryHandler(base *BaseHandler, service *quarry.Service) *QuarryHandler {
	return &QuarryHandler{BaseHandler: base, service: service}
}

// Create handles POST /quarries.
func (h *QuarryHandler) Create(c *gin.Context) {
	var req dto.QuarryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	q := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), q); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, q.ID.String())
}

// Update handles PUT /quarries/:id.
func (h *QuarryHandler) Update(c *gin.Context) {
	quarryID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.QuarryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	q := req.ToEntity()
	q.ID = quarryID
	if err := h.service.Update(c.Request.Context(), q); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}

// Delete handles DELETE /quarries/:id.
func (h *QuarryHandler) Delete(c *gin.Context) {
	quarryID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), quarryID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Get handles GET /quarries/:id.
func (h *QuarryHandler) Get(c *gin.Context) {
	quarryID, ok := h.ParseID(c)
	if !ok {
		return
	}

	q, err := h.service.Get(c.Request.Context(), quarryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}

// List handles GET /quarries.
func (h *QuarryHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	q.Defaults()

	result, err := h.service.List(c.Request.Context(), domain.ListFilter{
		Search:  q.Search,
		OrderBy: q.OrderBy,
		Limit:   q.Limit,
		Offset:  q.Offset,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}
