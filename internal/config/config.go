package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port      string
	RedisAddr string
	AMQPURL   string
	Exchange  string

	// VendorAcceptWindow is the SLA: how long a vendor has to accept a
	// marketplace order before the sweeper cancels it.
	VendorAcceptWindow   time.Duration
	SLASweepInterval     time.Duration
	VendorOfflineTimeout time.Duration
	VendorSweepInterval  time.Duration

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string
}

func FromEnv() Config {
	return Config{
		Port:      envOr("PORT", "8080"),
		RedisAddr: envOr("REDIS_HOST", "localhost") + ":6379",
		AMQPURL:   os.Getenv("RABBITMQ_URL"),
		Exchange:  envOr("RABBITMQ_EXCHANGE", "fulfillment.exchange"),

		VendorAcceptWindow:   time.Duration(envIntOr("VENDOR_ACCEPT_MINUTES", 10)) * time.Minute,
		SLASweepInterval:     30 * time.Second,
		VendorOfflineTimeout: 60 * time.Second,
		VendorSweepInterval:  30 * time.Second,

		RazorpayKeyID:         os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayWebhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
