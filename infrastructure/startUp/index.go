package startup

import (
	"veriface.io/infrastructure/biometric"
	"veriface.io/infrastructure/database"
	"veriface.io/infrastructure/database/connection/datastore"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/media_store"
)

// Used to start services such as loggers, databases, queues, etc.
func StartServices() {
	logger.InitializeLogger()
	database.SetUpDatabase()
	media_store.InitialiseMediaStore()
	biometric.InitialiseBiometricServices()
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	datastore.CleanUp()
}
