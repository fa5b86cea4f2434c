package handler

import (
	"math"
	"net/http"

	"app/internal/config"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	razorpay "github.com/razorpay/razorpay-go"
)

// /api/payment の決済API。ゲートウェイに注文を作ってIDを返すだけで、
// 決済確定の反映は /api/orders/update-payment 側
type PaymentHandler struct {
	client *razorpay.Client
	keyID  string
}

func NewPaymentHandler(cfg config.Config) *PaymentHandler {
	return &PaymentHandler{
		client: razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		keyID:  cfg.RazorpayKeyID,
	}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/payment")

	g.POST("/create-payment", h.createPayment)
	g.GET("/test", h.test)
}

type createPaymentRequest struct {
	Amount float64 `json:"amount"`
}

func (h *PaymentHandler) createPayment(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount must be positive"})
	}

	//ゲートウェイはパイサ単位
	data := map[string]interface{}{
		"amount":   int64(math.Round(req.Amount * 100)),
		"currency": "INR",
		"receipt":  "VTL-" + uuid.NewString(),
	}
	order, err := h.client.Order.Create(data, nil)
	if err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "payment gateway error"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"order":  order,
		"key_id": h.keyID,
	})
}

func (h *PaymentHandler) test(c echo.Context) error {
	return c.JSON(http.StatusOK, SuccessResponse{Message: "payment api up"})
}
