package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/infra/storage"
	"app/internal/invoice"
	"app/internal/mailer"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	//.envは無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var log *zap.Logger
	if cfg.GoEnv == "prod" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.Counter{},
		&model.Product{},
		&model.Category{},
		&model.Order{},
		&model.Shipment{},
		&model.AdminUser{},
	); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	shipmentRepo := infraRepo.NewShipmentGormRepository(gormDB)
	adminUserRepo := infraRepo.NewAdminUserGormRepository(gormDB)
	dashboardRepo := infraRepo.NewDashboardGormRepository(gormDB)

	objectStorage, err := storage.NewMinioStorage(cfg)
	if err != nil {
		log.Fatal("object storage init failed", zap.Error(err))
	}

	//請求書PDFとメール
	renderer := invoice.NewComposer(invoice.NewWkhtmltopdfRenderer(60 * time.Second))
	notifier := mailer.NewNotifier(mailer.NewSMTPMailer(cfg), log, 30*time.Second)

	//Usecase生成
	orderUC := usecase.NewOrderUsecase(
		txManager, adminUserRepo, renderer, notifier,
		invoice.InvoiceNoFromOrderNo, cfg.FEURL, log,
	)
	exportUC := usecase.NewOrderExportUsecase(txManager)
	productUC := usecase.NewProductUsecase(productRepo, cfg.PublicBaseURL)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, objectStorage, cfg.PublicBaseURL, log)
	shipmentUC := usecase.NewShipmentUsecase(shipmentRepo, orderRepo)
	dashboardUC := usecase.NewDashboardUsecase(dashboardRepo, productRepo)
	authUC := usecase.NewAuthUsecase(cfg, adminUserRepo)

	//Handler生成
	h := server.Handlers{
		Auth:      handler.NewAuthHandler(authUC),
		Order:     handler.NewOrderHandler(orderUC, exportUC),
		Product:   handler.NewProductHandler(productUC),
		Category:  handler.NewCategoryHandler(categoryUC),
		Shipment:  handler.NewShipmentHandler(shipmentUC),
		Payment:   handler.NewPaymentHandler(cfg),
		Upload:    handler.NewUploadHandler(objectStorage, cfg.PublicBaseURL),
		Dashboard: handler.NewDashboardHandler(dashboardUC),
	}

	//Server起動
	e := server.New(cfg, h)
	log.Info("starting api", zap.String("port", cfg.Port))
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
