package app

import (
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/steve958/plant-shop/internal/adapters/httpserver"
	"github.com/steve958/plant-shop/internal/adapters/mail"
	"github.com/steve958/plant-shop/internal/adapters/repo/postgres"
	"github.com/steve958/plant-shop/internal/adapters/storage/localfs"
	"github.com/steve958/plant-shop/internal/config"
	"github.com/steve958/plant-shop/internal/domain"
	"github.com/steve958/plant-shop/internal/usecase"
)

type App struct {
	DB        *gorm.DB
	Cfg       *config.Config
	CatalogUC *usecase.CatalogUC
	ProductUC *usecase.ProductUC
	OrderUC   *usecase.OrderUC
	AuthUC    *usecase.AuthUC
	Storage   domain.FileStorage
	OAuth     *oauth2.Config
}

func NewApp(db *gorm.DB, cfg *config.Config) (*App, error) {
	prodRepo := postgres.NewProductRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	userRepo := postgres.NewUserRepo(db)

	_ = os.MkdirAll(cfg.StorageDir, 0o755)
	storage := localfs.New(cfg.StorageDir)

	var oauthCfg *oauth2.Config
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.BaseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	return &App{
		DB:        db,
		Cfg:       cfg,
		CatalogUC: &usecase.CatalogUC{Products: prodRepo},
		ProductUC: &usecase.ProductUC{Products: prodRepo, Storage: storage},
		OrderUC:   &usecase.OrderUC{Orders: orderRepo, Notifier: mail.NewNotifier(cfg.SMTP)},
		AuthUC:    &usecase.AuthUC{Users: userRepo},
		Storage:   storage,
		OAuth:     oauthCfg,
	}, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Cfg, a.CatalogUC, a.ProductUC, a.OrderUC, a.AuthUC, a.Storage, a.OAuth)
}

func (a *App) Migrate() error {
	return a.DB.AutoMigrate(
		&domain.Product{}, &domain.Image{}, &domain.User{}, &domain.Order{}, &domain.OrderItem{},
	)
}
