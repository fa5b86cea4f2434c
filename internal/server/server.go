package server

import (
	"app/internal/config"
	"app/internal/handler"
	appmw "app/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Order     *handler.OrderHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	Shipment  *handler.ShipmentHandler
	Payment   *handler.PaymentHandler
	Upload    *handler.UploadHandler
	Dashboard *handler.DashboardHandler
}

// Newはechoを組み立ててルートを張る。起動は呼び出し側
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowCredentials: true,
	}))
	//画像アップロードがあるので少し広め
	e.Use(echomw.BodyLimit("25M"))

	e.GET("/health", health)

	auth := appmw.AuthJWT(cfg)
	staff := appmw.StaffRoleGuard()

	h.Auth.RegisterRoutes(e, auth)
	h.Order.RegisterRoutes(e, auth, staff)
	h.Product.RegisterRoutes(e, auth, staff)
	h.Category.RegisterRoutes(e, auth, staff)
	h.Shipment.RegisterRoutes(e, auth, staff)
	h.Payment.RegisterRoutes(e)
	h.Upload.RegisterRoutes(e, auth, staff)
	h.Dashboard.RegisterRoutes(e, auth, staff)

	return e
}

func health(c echo.Context) error {
	return c.JSON(200, map[string]string{"status": "ok"})
}
