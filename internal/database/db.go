package database

import (
	"restaurant-recap/internal/logger"
	"restaurant-recap/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table owned by the service, children after their parent
var Models = []interface{}{
	&model.DailyReport{},
	&model.DailyKPI{},
	&model.ChannelSale{},
	&model.ConsumptionMode{},
	&model.Correction{},
	&model.Miscellaneous{},
	&model.Payment{},
	&model.Discount{},
	&model.VATSummary{},
	&model.AnnexSale{},
	&model.AuditLog{},
}

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Unique violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	if err := db.AutoMigrate(Models...); err != nil {
		logger.GetAppLogger().WithError(err).Warn("Failed to auto-migrate models")
	}

	return db, nil
}
