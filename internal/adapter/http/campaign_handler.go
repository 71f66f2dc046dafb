package http

import (
	"errors"
	"io"
	"net/http"

	"collections-backend/internal/usecase/distribution"

	"github.com/labstack/echo/v4"
)

type CampaignHandler struct{ uc *distribution.Usecase }

func NewCampaignHandler(uc *distribution.Usecase) *CampaignHandler {
	return &CampaignHandler{uc: uc}
}

type rechurnReq struct {
	CustomerIDs []uint64 `json:"customer_ids" validate:"omitempty,dive,gt=0"`
	Codes       []string `json:"codes"        validate:"omitempty,dive,dispcode"`
}

func (h *CampaignHandler) Distribute(c echo.Context) error {
	campaignID, err := pathID(c, "campaign_id")
	if err != nil {
		return badRequest(c, err)
	}
	res, err := h.uc.Distribute(c.Request().Context(), campaignID)
	if err != nil {
		return writeError(c, err, http.StatusUnprocessableEntity)
	}
	return c.JSON(http.StatusOK, res)
}

// Rechurn accepts an empty body, meaning every stalled customer.
func (h *CampaignHandler) Rechurn(c echo.Context) error {
	campaignID, err := pathID(c, "campaign_id")
	if err != nil {
		return badRequest(c, err)
	}

	var req rechurnReq
	if err := c.Bind(&req); err != nil && !errors.Is(err, io.EOF) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	res, err := h.uc.Rechurn(c.Request().Context(), campaignID, distribution.RechurnInput{
		CustomerIDs: req.CustomerIDs,
		Codes:       req.Codes,
	})
	if err != nil {
		return writeError(c, err, http.StatusUnprocessableEntity)
	}
	return c.JSON(http.StatusOK, res)
}
