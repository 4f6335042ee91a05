// README: Order handlers for create/get and lifecycle transitions.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hail/internal/modules/order"
	"hail/internal/types"
)

type OrderHandler struct {
	order *order.Service
}

func NewOrderHandler(svc *order.Service) *OrderHandler {
	return &OrderHandler{order: svc}
}

type createOrderReq struct {
	Stops   []types.Point `json:"stops"`
	OrderAt *string       `json:"orderAt"`
}

type fareDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type createOrderResp struct {
	ID                       int64   `json:"id"`
	DrivingDistancesInMeters []int64 `json:"drivingDistancesInMeters"`
	Fare                     fareDTO `json:"fare"`
}

type orderResp struct {
	ID                       int64         `json:"id"`
	Stops                    []types.Point `json:"stops"`
	DrivingDistancesInMeters []int64       `json:"drivingDistancesInMeters"`
	Fare                     fareDTO       `json:"fare"`
	Status                   order.Status  `json:"status"`
	CreatedTime              time.Time     `json:"createdTime"`
	OrderDateTime            time.Time     `json:"orderDateTime"`
	OngoingTime              *time.Time    `json:"ongoingTime,omitempty"`
	CompletedAt              *time.Time    `json:"completedAt,omitempty"`
	CancelledAt              *time.Time    `json:"cancelledAt,omitempty"`
}

func toOrderResp(o *order.Order) orderResp {
	return orderResp{
		ID:                       o.ID,
		Stops:                    o.Stops,
		DrivingDistancesInMeters: o.LegMeters,
		Fare:                     fareDTO{Amount: o.Fare.Amount(), Currency: o.Fare.Currency},
		Status:                   o.Status,
		CreatedTime:              o.CreatedTime,
		OrderDateTime:            o.OrderTime,
		OngoingTime:              o.OngoingTime,
		CompletedAt:              o.CompletedAt,
		CancelledAt:              o.CancelledAt,
	}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	cmd := order.CreateCommand{Stops: req.Stops}
	if req.OrderAt != nil {
		at, err := time.Parse(time.RFC3339, *req.OrderAt)
		if err != nil {
			writeError(c, http.StatusBadRequest, "orderAt must be an RFC 3339 timestamp")
			return
		}
		cmd.OrderAt = &at
	}

	o, err := h.order.Create(c.Request.Context(), cmd)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createOrderResp{
		ID:                       o.ID,
		DrivingDistancesInMeters: o.LegMeters,
		Fare:                     fareDTO{Amount: o.Fare.Amount(), Currency: o.Fare.Currency},
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	o, err := h.order.Get(c.Request.Context(), id)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(o))
}

func (h *OrderHandler) Take(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	o, err := h.order.Take(c.Request.Context(), id)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          o.ID,
		"status":      o.Status,
		"ongoingTime": o.OngoingTime,
	})
}

func (h *OrderHandler) Complete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	o, err := h.order.Complete(c.Request.Context(), id)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          o.ID,
		"status":      o.Status,
		"completedAt": o.CompletedAt,
	})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	o, err := h.order.Cancel(c.Request.Context(), id)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          o.ID,
		"status":      o.Status,
		"cancelledAt": o.CancelledAt,
	})
}
