package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"kassa/internal/core"
)

// Backend names for report rendering.
const (
	BackendExcel  = "excel"
	BackendSheets = "sheets"
)

type Config struct {
	// MoySklad API
	BaseURL  string
	Username string
	Password string

	// Currency identifiers (substrings of the currency meta href)
	CurrencyPLN string
	CurrencyUSD string
	CurrencyEUR string

	// Payment type display names
	PaymentCash string
	PaymentCard string

	// Drop unknown-currency/unknown-payment orders instead of keeping them
	// in the detail sheet.
	DropUnclassified bool

	// Rendering
	Backend       string
	OutputPath    string
	SpreadsheetID string

	// HTTP server
	Port string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		BaseURL:  getEnv("MOYSKLAD_BASE_URL", "https://api.moysklad.ru/api/remap/1.2/entity"),
		Username: getEnv("MOYSKLAD_USERNAME", ""),
		Password: getEnv("MOYSKLAD_PASSWORD", ""),

		CurrencyPLN: getEnv("CURRENCY_PLN_ID", "currency/e03f64a6-2225-11ed-0a80-073a00365127"),
		CurrencyUSD: getEnv("CURRENCY_USD_ID", "currency/e15d9c47-2226-11ed-0a80-04b900364797"),
		CurrencyEUR: getEnv("CURRENCY_EUR_ID", "currency/e1754d40-cc82-11ec-0a80-08ab00701a1e"),

		PaymentCash: getEnv("PAYMENT_TYPE_CASH", "Cash-in-showroom"),
		PaymentCard: getEnv("PAYMENT_TYPE_CARD", "Card-in-showroom"),

		DropUnclassified: getEnvBool("DROP_UNCLASSIFIED", false),

		Backend:       getEnv("REPORT_BACKEND", BackendExcel),
		OutputPath:    getEnv("REPORT_OUTPUT_PATH", "./financial_report.xlsx"),
		SpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),

		Port: getEnv("PORT", "8080"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "kassa"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "report_requests"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.Username == "" {
		errors = append(errors, "MOYSKLAD_USERNAME is required")
	}
	if c.Password == "" {
		errors = append(errors, "MOYSKLAD_PASSWORD is required")
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.Backend {
	case BackendExcel:
		if c.OutputPath == "" {
			errors = append(errors, "output path cannot be empty when using the excel backend")
		}
	case BackendSheets:
		if c.SpreadsheetID == "" {
			errors = append(errors, "GOOGLE_SPREADSHEET_ID is required when using the sheets backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid report backend '%s': must be one of [%s %s]", c.Backend, BackendExcel, BackendSheets))
	}

	if c.CurrencyPLN == "" && c.CurrencyUSD == "" && c.CurrencyEUR == "" {
		errors = append(errors, "at least one currency identifier must be configured")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// CurrencyTable builds the resolver table from the configured identifiers.
func (c *Config) CurrencyTable() core.CurrencyTable {
	return core.NewCurrencyTable(c.CurrencyPLN, c.CurrencyUSD, c.CurrencyEUR)
}

// PaymentTable builds the classifier table from the configured display names.
func (c *Config) PaymentTable() core.PaymentTable {
	return core.PaymentTable{Cash: c.PaymentCash, Card: c.PaymentCard}
}

// Normalizer builds a normalizer wired with the configured tables and policy.
func (c *Config) Normalizer() core.Normalizer {
	return core.Normalizer{
		Currencies:       c.CurrencyTable(),
		Payments:         c.PaymentTable(),
		DropUnclassified: c.DropUnclassified,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
