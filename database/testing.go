package database

import (
	"lms/models"
	courseModels "lms/models/course"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectTestDb opens an in-memory SQLite database with the full schema
// migrated and installs it as the global instance for the test's duration.
func ConnectTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	// One named in-memory database per test so parallel tests stay isolated
	// while gorm's connection pool still sees the same schema.
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.PaymentTransaction{},
		&courseModels.InPersonCourse{},
		&courseModels.OnlineCourse{},
		&courseModels.SelfPacedCourse{},
		&courseModels.CourseVideo{},
		&courseModels.CourseSession{},
		&courseModels.Enrollment{},
		&courseModels.Certificate{},
	)
	if err != nil {
		t.Fatalf("Test migration failed: %v", err)
	}

	prev := Database
	Database = DbInstance{Db: db}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		Database = prev
	})

	return db
}
