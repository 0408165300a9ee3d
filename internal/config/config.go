package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abgdnv/shopcart/internal/platform/configloader"
	"github.com/go-playground/validator/v10"
)

var _ configloader.Validator = (*Config)(nil)

// AppName is the configuration namespace; environment variables use the SHOP_ prefix.
const AppName = "shop"

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	File  string `koanf:"file"`
}

type ShopConfig struct {
	SummaryPath string `koanf:"summarypath" validate:"required"`
	Currency    string `koanf:"currency"    validate:"required,max=10"`
	MaxQuantity int    `koanf:"maxquantity" validate:"min=1"`
}

type Config struct {
	Log  LogConfig  `koanf:"log"`
	Shop ShopConfig `koanf:"shop"`
}

// Defaults returns the configuration used when no file or environment overrides a key.
func Defaults() map[string]any {
	return map[string]any{
		"log.level":        "warn",
		"log.file":         "",
		"shop.summarypath": "order_summary.txt",
		"shop.currency":    "Ksh",
		"shop.maxquantity": 1000,
	}
}

// Load reads the configuration from defaults, config.yaml, .env and SHOP_* environment variables.
func Load() (*Config, error) {
	return configloader.Load[*Config](AppName, configloader.Options{Defaults: Defaults()})
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Shop Configuration ---\n")
	b.WriteString(fmt.Sprintf("  shop.summarypath: %s\n", c.Shop.SummaryPath))
	b.WriteString(fmt.Sprintf("  shop.currency: %s\n", c.Shop.Currency))
	b.WriteString(fmt.Sprintf("  shop.maxquantity: %d\n", c.Shop.MaxQuantity))

	b.WriteString("\n--- Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  log.file: %s\n", orDefault(c.Log.File, "<stderr>")))

	return b.String()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fieldErr := validationErrors[0]
		return fmt.Errorf("invalid %s: %v failed on rule: %s", fieldErr.Namespace(), fieldErr.Value(), fieldErr.Tag())
	}
	return err
}
