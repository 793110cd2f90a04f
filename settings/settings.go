package settings

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var lock = &sync.Mutex{}
var singleSettingsInstace *settings

type settings struct {
	JWT_SECRET_KEY          string
	MONGO_DB                string
	MONGO_HOST              string
	MONGO_CONNECTION        string
	NATS_HOST               string
	AWS_BUCKET              string
	AWS_REGION              string
	ELS_HOST                string
	ELS_PORT                string
	ELS_USERNAME            string
	ELS_PASSWORD            string
	RAZORPAY_KEY_ID         string
	RAZORPAY_KEY_SECRET     string
	RAZORPAY_WEBHOOK_SECRET string
	PLATFORM_NAME           string
	CLIENT_URL              string
	NODE_ENV                string
}

func newSettings() *settings {
	return &settings{
		JWT_SECRET_KEY:          os.Getenv("JWT_SECRET_KEY"),
		MONGO_DB:                os.Getenv("MONGO_DB"),
		MONGO_HOST:              os.Getenv("MONGO_HOST"),
		MONGO_CONNECTION:        os.Getenv("MONGO_CONNECTION"),
		NATS_HOST:               os.Getenv("NATS_HOST"),
		AWS_BUCKET:              os.Getenv("AWS_BUCKET"),
		AWS_REGION:              os.Getenv("AWS_REGION"),
		ELS_HOST:                os.Getenv("ELS_HOST"),
		ELS_PORT:                os.Getenv("ELS_PORT"),
		ELS_USERNAME:            os.Getenv("ELS_USERNAME"),
		ELS_PASSWORD:            os.Getenv("ELS_PASSWORD"),
		RAZORPAY_KEY_ID:         os.Getenv("RAZORPAY_KEY_ID"),
		RAZORPAY_KEY_SECRET:     os.Getenv("RAZORPAY_KEY_SECRET"),
		RAZORPAY_WEBHOOK_SECRET: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
		PLATFORM_NAME:           os.Getenv("PLATFORM_NAME"),
		CLIENT_URL:              os.Getenv("CLIENT_URL"),
		NODE_ENV:                os.Getenv("NODE_ENV"),
	}
}

func init() {
	if os.Getenv("NODE_ENV") != "prod" {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("No .env file found")
		}
	}
}

func GetSettings() *settings {
	if singleSettingsInstace == nil {
		lock.Lock()
		defer lock.Unlock()
		singleSettingsInstace = newSettings()
	}
	return singleSettingsInstace
}
