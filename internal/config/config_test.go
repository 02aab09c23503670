package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	cfg := Load()

	assert.Equal(t, "customers", cfg.Collections.Customers)
	assert.Equal(t, "stitching_orders", cfg.Collections.StitchingOrders)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
}

func TestLoadCollectionOverrides(t *testing.T) {
	t.Setenv("COLLECTION_ORDERS", "retail_orders")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	cfg := Load()

	assert.Equal(t, "retail_orders", cfg.Collections.Orders)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
}

func TestDSN(t *testing.T) {
	pg := DatabaseConfig{Driver: "postgres", Host: "db", User: "u", Password: "p", Name: "boutique", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=boutique port=5432 sslmode=disable TimeZone=UTC", pg.DSN())

	my := DatabaseConfig{Driver: "mysql", Host: "db", User: "u", Password: "p", Name: "boutique", Port: "3306"}
	assert.Equal(t, "u:p@tcp(db:3306)/boutique?charset=utf8mb4&parseTime=True&loc=Local", my.DSN())
}

func TestLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, "UTC", AppConfig{Timezone: "Mars/Olympus"}.Location().String())
}
