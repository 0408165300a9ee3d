// Package app contains the application setup for the shop.
package app

import (
	"io"
	"log/slog"

	"github.com/abgdnv/shopcart/internal/cart"
	"github.com/abgdnv/shopcart/internal/catalog"
	"github.com/abgdnv/shopcart/internal/config"
	"github.com/abgdnv/shopcart/internal/messaging"
	"github.com/abgdnv/shopcart/internal/order"
	"github.com/abgdnv/shopcart/internal/service"
	"github.com/abgdnv/shopcart/internal/transport/cli"
)

type Dependencies struct {
	ShopService service.ShopService
	Logger      *slog.Logger
}

// SetupDependencies builds the catalog, the session cart and the shop service around them.
func SetupDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	sService := service.NewService(
		catalog.NewInMemoryStore(catalog.Default()...),
		cart.New(),
		order.NewFileWriter(cfg.Shop.SummaryPath),
		messaging.NewLogPublisher(logger),
		service.Options{
			Currency:    cfg.Shop.Currency,
			MaxQuantity: cfg.Shop.MaxQuantity,
		},
		logger,
	)

	return &Dependencies{
		ShopService: sService,
		Logger:      logger,
	}
}

// SetupMenu creates the interactive menu bound to the given streams.
func SetupMenu(deps *Dependencies, cfg *config.Config, in io.Reader, out, errOut io.Writer) *cli.Menu {
	opts := cli.Options{
		Currency:    cfg.Shop.Currency,
		SummaryPath: cfg.Shop.SummaryPath,
		MaxQuantity: cfg.Shop.MaxQuantity,
	}
	return cli.NewMenu(deps.ShopService, in, out, errOut, opts, deps.Logger)
}
