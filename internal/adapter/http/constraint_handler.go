package http

import (
	"net/http"

	ucConstraint "collections-backend/internal/usecase/constraint"

	"github.com/labstack/echo/v4"
)

type ConstraintHandler struct{ uc *ucConstraint.Usecase }

func NewConstraintHandler(uc *ucConstraint.Usecase) *ConstraintHandler {
	return &ConstraintHandler{uc: uc}
}

func (h *ConstraintHandler) ListActive(c echo.Context) error {
	customerID, err := pathID(c, "customer_id")
	if err != nil {
		return badRequest(c, err)
	}
	dto, err := h.uc.ListActive(c.Request().Context(), customerID)
	if err != nil {
		return writeError(c, err, http.StatusUnprocessableEntity)
	}
	return c.JSON(http.StatusOK, dto)
}
