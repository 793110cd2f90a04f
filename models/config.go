package models

import (
	"github.com/edumesh/Backend_ELearning/db"
	"github.com/edumesh/Backend_ELearning/settings"
)

var settingsData = settings.GetSettings()

// MongoDB
var DbConnect = db.NewConnection(
	settingsData.MONGO_HOST,
	settingsData.MONGO_DB,
)
