package repository

import (
	"sync"

	"veriface.io/entities"
	"veriface.io/infrastructure/database/connection/datastore"
	"veriface.io/infrastructure/database/repository/mongo"
)

var reportOnce = sync.Once{}

var reportRepository mongo.MongoRepository[entities.AuthenticityReport]

func ReportRepo() *mongo.MongoRepository[entities.AuthenticityReport] {
	reportOnce.Do(func() {
		reportRepository = mongo.MongoRepository[entities.AuthenticityReport]{Model: datastore.ReportModel}
	})
	return &reportRepository
}
