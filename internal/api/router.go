package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter configures the Gin router with all routes and middleware.
func SetupRouter(handler *Handler, logger *zap.Logger, ginMode string) *gin.Engine {
	gin.SetMode(ginMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogger(logger))

	router.GET("/health", handler.Health)

	v1 := router.Group("/api/v1")
	{
		invoices := v1.Group("/invoices")
		{
			invoices.GET("", handler.ListInvoices)
			invoices.POST("", handler.CreateInvoice)
			invoices.GET("/:id", handler.InvoiceDetails)
			invoices.GET("/:id/status", handler.InvoiceStatus)
			invoices.DELETE("/:id", handler.CancelInvoice)
		}

		cardInvoices := v1.Group("/cardinvoices")
		{
			cardInvoices.POST("", handler.CreateCardPayment)
			cardInvoices.GET("/:id/status", handler.CardInvoiceStatus)
			cardInvoices.POST("/:id/reverse", handler.ReverseCardInvoice)
		}

		payments := v1.Group("/payments")
		{
			payments.GET("", handler.ListPayments)
			payments.GET("/:id", handler.PaymentDetails)
		}
	}

	// Called by the gateway itself; authenticated by the notification
	// signature, not by any session.
	router.POST("/notification", handler.HandleNotification)

	return router
}
