package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/metrics"
	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/models"
)

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.orders.ListOrders(c.Request.Context())
	if err != nil {
		log.Error("Failed to list orders: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) createOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.OrdersTotal.WithLabelValues("validation_failed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing order information."})
		return
	}
	if err := req.Validate(); err != nil {
		metrics.OrdersTotal.WithLabelValues("validation_failed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing order information."})
		return
	}

	address, _ := req.ShippingAddress()
	order := models.Order{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Address:       address,
		Items:         req.Items,
		// The total is always recomputed here; client arithmetic is
		// not trusted.
		Total:     models.ComputeTotal(req.Items),
		CreatedAt: time.Now().UTC(),
	}

	stored, err := s.orders.InsertOrder(c.Request.Context(), order)
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("failed").Inc()
		log.Error("Failed to store order: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.OrdersTotal.WithLabelValues("accepted").Inc()
	metrics.OrderValue.Observe(stored.Total)

	log.WithFields(log.Fields{
		"order_id": stored.ID,
		"items":    len(stored.Items),
		"total":    stored.Total,
	}).Info("Order placed")

	c.JSON(http.StatusCreated, models.CreateOrderResponse{
		OrderID: stored.ID,
		Message: "Order placed successfully!",
	})
}
