package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/erp/odoo-connector/internal/application/connector"
	"github.com/erp/odoo-connector/internal/domain/trade"
	"github.com/erp/odoo-connector/internal/interfaces/http/dto"
)

// TradeHandler serves the order status bridge, the pending-sync exports
// and the invoice data endpoint.
type TradeHandler struct {
	BaseHandler
	orders   trade.OrderRepository
	bridge   *connector.StatusBridge
	exporter *connector.Exporter
}

// NewTradeHandler creates a trade handler.
func NewTradeHandler(orders trade.OrderRepository, bridge *connector.StatusBridge, exporter *connector.Exporter) *TradeHandler {
	return &TradeHandler{orders: orders, bridge: bridge, exporter: exporter}
}

// RegisterRoutes registers the trade endpoints.
func (h *TradeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/order/status", h.OrderStatus)
	rg.POST("/order/status/change/:type", h.ChangeStatus)
	rg.GET("/order/sync/status", h.SyncStatus)
	rg.POST("/odoo/order/status", h.ApplyOdooStatus)
	rg.GET("/pending/customer-sync", h.PendingCustomerSync)
	rg.GET("/pending/order-sync", h.PendingOrderSync)
	rg.POST("/invoice/odoo", h.Invoice)
}

// OrderStatus returns the current state of all three machines for one
// order.
func (h *TradeHandler) OrderStatus(c *gin.Context) {
	order, ok := h.lookupOrder(c)
	if !ok {
		return
	}
	h.Success(c, gin.H{
		"orderNumber":      order.Number,
		"orderState":       order.State,
		"deliveryState":    order.Delivery.State,
		"transactionState": order.Transaction.State,
	})
}

// ChangeStatus drives one machine of one order from the shop side and
// pushes the result to Odoo.
func (h *TradeHandler) ChangeStatus(c *gin.Context) {
	machineType := trade.MachineType(c.Param("type"))
	if _, err := trade.MachineFor(machineType); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var payload struct {
		OrderNumber string `json:"orderNumber" binding:"required"`
		Target      string `json:"target" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()
	order, err := h.orders.FindByNumber(ctx, payload.OrderNumber)
	if err != nil {
		h.NotFound(c, err.Error())
		return
	}
	machine, _ := trade.MachineFor(machineType)
	if _, err := machine.Apply(order.StateFor(machineType), payload.Target); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	order.SetState(machineType, payload.Target)
	if err := h.orders.Save(ctx, order); err != nil {
		h.Internal(c, err.Error())
		return
	}
	if err := h.bridge.NotifyChange(ctx, order, machineType); err != nil {
		h.Internal(c, err.Error())
		return
	}
	h.Success(c, gin.H{
		"orderNumber": order.Number,
		"machine":     string(machineType),
		"newState":    payload.Target,
	})
}

// SyncStatus reports whether the order and its customer contact reached
// Odoo.
func (h *TradeHandler) SyncStatus(c *gin.Context) {
	order, ok := h.lookupOrder(c)
	if !ok {
		return
	}
	h.Success(c, gin.H{
		"orderNumber":    order.Number,
		"orderSynced":    order.Synced,
		"customerSynced": order.Customer.Synced,
		"odooId":         order.Correlation.OdooID,
	})
}

// ApplyOdooStatus applies a batch of inbound status notifications.
func (h *TradeHandler) ApplyOdooStatus(c *gin.Context) {
	payloads, err := bindList[connector.StatusPayload](c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	outcomes, failures := h.bridge.ApplyBatch(c.Request.Context(), payloads)
	// The delivery-return cancellation acknowledges with its own flat
	// shape, keys at the top level of the envelope.
	if len(outcomes) == 1 && len(failures) == 0 && outcomes[0].ReturnCancelled {
		c.JSON(http.StatusOK, gin.H{
			"type":           dto.TypeSuccess,
			"responseCode":   http.StatusOK,
			"deliveryStatus": true,
			"orderId":        outcomes[0].OrderID,
		})
		return
	}
	c.JSON(http.StatusOK, dto.SuccessWithReports(http.StatusOK, outcomes, failures))
}

// PendingCustomerSync pushes the customer contacts of all orders still
// pending contact export.
func (h *TradeHandler) PendingCustomerSync(c *gin.Context) {
	h.BatchResult(c, h.exporter.ExportPendingCustomers(c.Request.Context(), h.limit(c)))
}

// PendingOrderSync pushes all orders still pending export.
func (h *TradeHandler) PendingOrderSync(c *gin.Context) {
	h.BatchResult(c, h.exporter.ExportPendingOrders(c.Request.Context(), h.limit(c)))
}

// Invoice returns invoice data for the requested order numbers.
func (h *TradeHandler) Invoice(c *gin.Context) {
	var payload struct {
		OrderNumbers []string `json:"orderNumbers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	invoices, failures := h.exporter.Invoice(c.Request.Context(), payload.OrderNumbers)
	c.JSON(http.StatusOK, dto.SuccessWithReports(http.StatusOK, invoices, failures))
}

func (h *TradeHandler) lookupOrder(c *gin.Context) (*trade.Order, bool) {
	number := c.Query("orderNumber")
	if number == "" {
		h.BadRequest(c, "orderNumber query parameter is required")
		return nil, false
	}
	order, err := h.orders.FindByNumber(c.Request.Context(), number)
	if err != nil {
		h.NotFound(c, err.Error())
		return nil, false
	}
	return order, true
}

func (h *TradeHandler) limit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		return 100
	}
	return limit
}
