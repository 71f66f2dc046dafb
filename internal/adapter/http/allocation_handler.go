package http

import (
	"net/http"

	"collections-backend/internal/usecase/allocation"

	"github.com/labstack/echo/v4"
)

type AllocationHandler struct{ uc *allocation.Usecase }

func NewAllocationHandler(uc *allocation.Usecase) *AllocationHandler {
	return &AllocationHandler{uc: uc}
}

// Allocate answers 201 with the new case, 204 when the pool is empty and
// 409 when the agent still holds an active case.
func (h *AllocationHandler) Allocate(c echo.Context) error {
	agentID, err := pathID(c, "agent_id")
	if err != nil {
		return badRequest(c, err)
	}
	dto, err := h.uc.AllocateNext(c.Request().Context(), agentID)
	if err != nil {
		return writeError(c, err, http.StatusNoContent)
	}
	return c.JSON(http.StatusCreated, dto)
}
