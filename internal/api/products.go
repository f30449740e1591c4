package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/metrics"
	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/models"
	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/store"
)

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.catalog.ListProducts(c.Request.Context())
	if err != nil {
		log.Error("Failed to list products: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) createProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	// The store assigns the identifier; a client-sent one is dropped.
	p.ID = ""

	created, err := s.catalog.CreateProduct(c.Request.Context(), p)
	if err != nil {
		log.Error("Failed to create product: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	metrics.ProductEvents.WithLabelValues("create").Inc()

	log.WithFields(log.Fields{
		"product_id": created.ID,
		"name":       created.Name,
	}).Info("Product created")

	c.JSON(http.StatusOK, created)
}

func (s *Server) updateProduct(c *gin.Context) {
	id := c.Param("id")

	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := s.catalog.UpdateProduct(c.Request.Context(), id, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.Error("Failed to update product: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	metrics.ProductEvents.WithLabelValues("update").Inc()

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Product updated successfully!"})
}

func (s *Server) deleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := s.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.Error("Failed to delete product: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	metrics.ProductEvents.WithLabelValues("delete").Inc()

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Product deleted successfully!"})
}
