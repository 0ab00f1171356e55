package db

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/PawshSuite/groom-scheduler/internal/config"
	"github.com/PawshSuite/groom-scheduler/internal/models"
	"github.com/PawshSuite/groom-scheduler/internal/timezone"
)

func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	db.Exec(`
        UPDATE shops
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, timezone.DefaultTimezone)

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Shop{},
		&models.User{},
		&models.Client{},
		&models.Pet{},
		&models.GroomService{},
		&models.Item{},
		&models.WorkingHours{},
		&models.Appointment{},
		&models.AppointmentPet{},
		&models.AppointmentPetService{},
		&models.AppointmentPetItem{},
		&models.Invoice{},
		&models.InvoiceLine{},
		&models.WaitlistEntry{},
		&models.AuditLog{},
	)
}
