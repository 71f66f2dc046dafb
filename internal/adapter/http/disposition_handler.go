package http

import (
	"net/http"

	"collections-backend/internal/domain/disposition"
	ucDisposition "collections-backend/internal/usecase/disposition"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type DispositionHandler struct{ uc *ucDisposition.Usecase }

func NewDispositionHandler(uc *ucDisposition.Usecase) *DispositionHandler {
	return &DispositionHandler{uc: uc}
}

// Field-level rule checks happen in the usecase so every violation is
// reported together; only shape is checked here.
type submitDispositionReq struct {
	Code         string           `json:"code"           validate:"required,dispcode"`
	Amount       *decimal.Decimal `json:"amount"`
	FollowUpDate *string          `json:"follow_up_date"`
	FollowUpTime *string          `json:"follow_up_time" validate:"omitempty,hhmm"`
	PaymentDate  *string          `json:"payment_date"`
	PaymentTime  *string          `json:"payment_time"   validate:"omitempty,hhmm"`
	Target       *string          `json:"target"         validate:"omitempty,max=32"`
	Remarks      string           `json:"remarks"        validate:"max=1000"`
	IsEdit       bool             `json:"is_edit"`
}

func (h *DispositionHandler) Submit(c echo.Context) error {
	agentID, err := pathID(c, "agent_id")
	if err != nil {
		return badRequest(c, err)
	}
	customerID, err := pathID(c, "customer_id")
	if err != nil {
		return badRequest(c, err)
	}

	var req submitDispositionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	res, err := h.uc.Submit(c.Request().Context(), ucDisposition.SubmitInput{
		CustomerID: customerID,
		AgentID:    agentID,
		Code:       req.Code,
		Fields: disposition.Fields{
			Amount:       req.Amount,
			FollowUpDate: req.FollowUpDate,
			FollowUpTime: req.FollowUpTime,
			PaymentDate:  req.PaymentDate,
			PaymentTime:  req.PaymentTime,
			Target:       req.Target,
		},
		IsEdit:  req.IsEdit,
		Remarks: req.Remarks,
	})
	if err != nil {
		return writeError(c, err, http.StatusUnprocessableEntity)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *DispositionHandler) History(c echo.Context) error {
	customerID, err := pathID(c, "customer_id")
	if err != nil {
		return badRequest(c, err)
	}
	dto, err := h.uc.History(c.Request().Context(), customerID)
	if err != nil {
		return writeError(c, err, http.StatusUnprocessableEntity)
	}
	return c.JSON(http.StatusOK, dto)
}

// Rules serves the rule table so forms know which inputs to render.
func (h *DispositionHandler) Rules(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"date_layout": disposition.DateLayout,
		"time_layout": disposition.TimeLayout,
		"rules":       disposition.Rules(),
	})
}
