package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/orders の注文API
type OrderHandler struct {
	uc     *usecase.OrderUsecase
	export *usecase.OrderExportUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase, export *usecase.OrderExportUsecase) *OrderHandler {
	return &OrderHandler{uc: uc, export: export}
}

// 注文のルートを登録。更新系と一覧はスタッフ専用
func (h *OrderHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc, staff echo.MiddlewareFunc) {
	g := e.Group("/api/orders")

	g.POST("/create-order-pending", h.createPending)
	g.GET("/get/:order_no", h.getByOrderNo)
	g.POST("/update-payment", h.updatePayment)

	g.GET("/all", h.listAll, auth, staff)
	g.GET("/:id", h.getByID, auth, staff)
	g.POST("/update-status", h.updateStatus, auth, staff)
	g.GET("/export-excel", h.exportExcel, auth, staff)
	g.GET("/export-excel-range", h.exportExcelRange, auth, staff)
}

type createPendingRequest struct {
	Name        string                      `json:"name"`
	City        string                      `json:"city"`
	State       string                      `json:"state"`
	Country     string                      `json:"country"`
	Address     string                      `json:"address"`
	Pin         string                      `json:"pin"`
	Email       string                      `json:"email"`
	Mobile      string                      `json:"mobile"`
	Quantity    int64                       `json:"quantity"`
	TotalAmount float64                     `json:"total_amount"`
	OrderDate   *time.Time                  `json:"order_date"`
	Products    []usecase.CreatePendingItem `json:"products"`
}

func (h *OrderHandler) createPending(c echo.Context) error {
	var req createPendingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	in := usecase.CreatePendingInput{
		Name:        req.Name,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		Address:     req.Address,
		Pin:         req.Pin,
		Email:       req.Email,
		Mobile:      req.Mobile,
		Quantity:    req.Quantity,
		TotalAmount: req.TotalAmount,
		Products:    req.Products,
	}
	if req.OrderDate != nil {
		in.OrderDate = *req.OrderDate
	}

	orderNo, err := h.uc.CreatePending(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"order_no": orderNo})
}

func (h *OrderHandler) getByOrderNo(c echo.Context) error {
	out, err := h.uc.GetByOrderNo(c.Request().Context(), c.Param("order_no"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) getByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	out, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) listAll(c echo.Context) error {
	outs, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

type updateStatusRequest struct {
	OrderNo string `json:"order_no"`
	Status  string `json:"status"`
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), req.OrderNo, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updatePaymentRequest struct {
	OrderNo           string `json:"order_no"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
}

func (h *OrderHandler) updatePayment(c echo.Context) error {
	var req updatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := h.uc.UpdatePayment(c.Request().Context(), req.OrderNo, req.RazorpayPaymentID, req.RazorpayOrderID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "payment updated"})
}

// 今月分のExcel
func (h *OrderHandler) exportExcel(c echo.Context) error {
	now := time.Now()
	data, filename, err := h.export.ExportMonth(c.Request().Context(), now.Year(), now.Month())
	if err != nil {
		return writeError(c, err)
	}
	return writeXLSX(c, filename, data)
}

// 月指定のExcel（?month=YYYY-MM）
func (h *OrderHandler) exportExcelRange(c echo.Context) error {
	month := c.QueryParam("month")
	data, filename, err := h.export.ExportRange(c.Request().Context(), month)
	if err != nil {
		return writeError(c, err)
	}
	return writeXLSX(c, filename, data)
}

func writeXLSX(c echo.Context, filename string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
