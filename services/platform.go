package services

import (
	"encoding/json"

	"github.com/edumesh/Backend_ELearning/db"
	"github.com/edumesh/Backend_ELearning/models"
	natsPackage "github.com/nats-io/nats.go"
	"go.mongodb.org/mongo-driver/bson"
)

func init() {
	platformStats()
}

// platformStats answers the admin dashboard service with raw counters
func platformStats() {
	nats.Subscribe("get_platform_stats", func(m *natsPackage.Msg) {
		courses, err := courseModel.Use().CountDocuments(db.Ctx, bson.D{})
		if err != nil {
			return
		}
		tests, err := mockTestModel.Use().CountDocuments(db.Ctx, bson.D{})
		if err != nil {
			return
		}
		attempts, err := attemptModel.Use().CountDocuments(db.Ctx, bson.D{})
		if err != nil {
			return
		}
		purchases, err := purchaseModel.Use().CountDocuments(db.Ctx, bson.D{
			{
				Key:   "status",
				Value: models.PURCHASE_COMPLETED,
			},
		})
		if err != nil {
			return
		}
		data, err := json.Marshal(map[string]interface{}{
			"courses":    courses,
			"mock_tests": tests,
			"attempts":   attempts,
			"purchases":  purchases,
		})
		if err != nil {
			return
		}
		m.Respond(data)
	})
}
