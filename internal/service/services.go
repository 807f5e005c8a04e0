package service

import (
	"github.com/MKhiriev/warehouse-keeper/internal/adapter"
	"github.com/MKhiriev/warehouse-keeper/internal/config"
	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/store"
	"github.com/MKhiriev/warehouse-keeper/internal/validators"
	"github.com/MKhiriev/warehouse-keeper/models"
)

type Services struct {
	AuthService    AuthService
	ResetService   ResetService
	UserService    UserService
	ProductService ProductService
	ContactService ContactService
	AppInfoService AppInfoService
}

// Adapters groups the outbound integrations the services depend on.
type Adapters struct {
	Mailer adapter.Mailer
	Images adapter.ImageStorage
}

func NewServices(storages *store.Storages, adapters Adapters, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewRequestValidator(cfg.Storage.Images.MaxSize)
	userService := NewUserService(storages.UserRepository, validator, logger)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, validator, cfg.App, logger),
		ResetService:   NewResetService(storages.UserRepository, storages.ResetTokenRepository, adapters.Mailer, validator, cfg.App, cfg.Mail, logger),
		UserService:    userService,
		ProductService: NewProductService(storages.ProductRepository, adapters.Images, validator, cfg.Storage.Images, logger),
		ContactService: NewContactService(userService, adapters.Mailer, validator, cfg.Mail, logger),
		AppInfoService: appInfoService,
	}, nil
}
