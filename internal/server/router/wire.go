package router

import (
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/config"
	"github.com/mamadbah2/livestock/internal/repository/sheets"
	"github.com/mamadbah2/livestock/internal/server/handlers"
	"github.com/mamadbah2/livestock/internal/service/accounts"
	"github.com/mamadbah2/livestock/internal/service/animals"
	"github.com/mamadbah2/livestock/internal/service/breeding"
	"github.com/mamadbah2/livestock/internal/service/finance"
	"github.com/mamadbah2/livestock/internal/service/health"
	"github.com/mamadbah2/livestock/internal/service/milk"
	"github.com/mamadbah2/livestock/internal/service/notifications"
	"github.com/mamadbah2/livestock/internal/service/reporting"
	"github.com/mamadbah2/livestock/internal/service/vaccination"
	whatsappsvc "github.com/mamadbah2/livestock/internal/service/whatsapp"
	emailclient "github.com/mamadbah2/livestock/pkg/clients/email"
	waclient "github.com/mamadbah2/livestock/pkg/clients/whatsapp"
)

// Store is the union of the persistence surfaces of every service. Both the
// MongoDB and the in-memory repositories satisfy it.
type Store interface {
	animals.Store
	breeding.Store
	vaccination.Store
	finance.Store
	milk.Store
	health.Store
	accounts.Store
	notifications.Store
	reporting.Store
	whatsappsvc.ReceiptStore
}

// Deps are the external collaborators of the application.
type Deps struct {
	Config   *config.Config
	Store    Store
	Email    emailclient.Client
	WhatsApp waclient.Client
	// Sheet is nil when report export is not configured.
	Sheet  sheets.Repository
	Logger *zap.Logger
}

// Services holds the wired domain services.
type Services struct {
	Animals       *animals.Service
	Breeding      *breeding.Service
	Vaccinations  *vaccination.Service
	Finance       *finance.Service
	Milk          *milk.Service
	Health        *health.Service
	Accounts      *accounts.Service
	Notifications *notifications.Service
	Reporting     *reporting.Service
	Webhook       *whatsappsvc.MetaWhatsAppService
}

// NewServices wires every domain service on top of deps.
func NewServices(deps Deps) (*Services, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loc, err := deps.Config.Notifications.Location()
	if err != nil {
		return nil, err
	}
	price := deps.Config.Milk.DefaultPricePerLiter

	milkSvc := milk.NewService(deps.Store, price, logger.Named("svc.milk"))
	return &Services{
		Animals:       animals.NewService(deps.Store, logger.Named("svc.animals")),
		Breeding:      breeding.NewService(deps.Store, logger.Named("svc.breeding")),
		Vaccinations:  vaccination.NewService(deps.Store, logger.Named("svc.vaccination")),
		Finance:       finance.NewService(deps.Store, logger.Named("svc.finance")),
		Milk:          milkSvc,
		Health:        health.NewService(deps.Store, logger.Named("svc.health")),
		Accounts:      accounts.NewService(deps.Store, price, logger.Named("svc.accounts")),
		Notifications: notifications.NewService(deps.Store, deps.Email, deps.WhatsApp, loc, logger.Named("svc.notifications")),
		Reporting:     reporting.NewService(deps.Store, milkSvc, deps.Sheet, logger.Named("svc.reporting")),
		Webhook:       whatsappsvc.NewMetaWhatsAppService(deps.Config.WhatsApp, deps.Store, logger.Named("svc.whatsapp")),
	}, nil
}

// NewHandlers builds the HTTP adapters of s.
func NewHandlers(s *Services, logger *zap.Logger) Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Handlers{
		Animals:      handlers.NewAnimalHandler(s.Animals, logger.Named("handlers.animals")),
		Breeding:     handlers.NewBreedingHandler(s.Breeding, logger.Named("handlers.breeding")),
		Vaccinations: handlers.NewVaccinationHandler(s.Vaccinations, logger.Named("handlers.vaccinations")),
		Finance:      handlers.NewFinanceHandler(s.Finance, s.Milk, logger.Named("handlers.finance")),
		Health:       handlers.NewHealthHandler(s.Health, logger.Named("handlers.health")),
		Accounts:     handlers.NewAccountHandler(s.Accounts, logger.Named("handlers.accounts")),
		Reporting:    handlers.NewReportingHandler(s.Reporting, s.Notifications, logger.Named("handlers.reporting")),
		Functions:    handlers.NewFunctionsHandler(s.Notifications, logger.Named("handlers.functions")),
		Webhook:      handlers.NewWebhookHandler(s.Webhook, logger.Named("handlers.whatsapp")),
	}
}
