package cmd

import (
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	JWTSecret      string
	GatewaySecret  string
	RabbitMQURL    string
	CommissionRate decimal.Decimal
	PaymentTTL     time.Duration
}
