package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-booking-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens MySQL, migrates the schema and seeds baseline
// rows. The returned handle is the only one; nothing keeps global state.
func ConnectDatabase() (*gorm.DB, error) {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Admin{},
		&models.AuthToken{},
		&models.Role{},
		&models.RolePermission{},
		&models.Setting{},
		&models.Room{},
		&models.Booking{},
		&models.ConferenceEnquiry{},
		&models.BlockedDate{},
		&models.Payment{},
	); err != nil {
		return nil, err
	}

	if err := SeedDatabase(db); err != nil {
		return nil, err
	}
	return db, nil
}

// AllPermissions is the full capability set granted to the owner role.
var AllPermissions = []string{
	"bookings.view",
	"bookings.create",
	"bookings.edit",
	"bookings.delete",
	"payments.view",
	"payments.create",
	"payments.edit",
	"payments.delete",
	"blockedDates.view",
	"blockedDates.manage",
	"rooms.manage",
	"settings.view",
	"settings.edit",
}

// SeedDatabase ensures the owner role, a default admin and the default
// settings exist. Safe to run on every boot.
func SeedDatabase(db *gorm.DB) error {
	var ownerRole models.Role
	err := db.Preload("Permissions").Where("LOWER(name) = ?", "owner").First(&ownerRole).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		ownerRole = models.Role{Name: "owner", Description: "System owner with full access"}
		if err := db.Create(&ownerRole).Error; err != nil {
			return err
		}
	}

	var permCount int64
	db.Model(&models.RolePermission{}).Where("role_id = ?", ownerRole.ID).Count(&permCount)
	if permCount == 0 {
		perms := make([]models.RolePermission, 0, len(AllPermissions))
		for _, p := range AllPermissions {
			perms = append(perms, models.RolePermission{RoleID: ownerRole.ID, Permission: p})
		}
		if err := db.Create(&perms).Error; err != nil {
			return err
		}
	}

	var adminCount int64
	db.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		password := envOrDefault("ADMIN_DEFAULT_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.Admin{
			FullName: "Admin User",
			Username: envOrDefault("ADMIN_DEFAULT_USERNAME", "admin@hotel.local"),
			Password: string(hash),
			RoleID:   &ownerRole.ID,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("Default admin seeded")
	}

	defaults := map[string]string{
		models.SettingMaxAdvanceBookingDays: "365",
		models.SettingVatEnabled:            "true",
		models.SettingVatRate:               "7.5",
		models.SettingCurrencySymbol:        "£",
		models.SettingCurrencyCode:          "GBP",
		models.SettingBookingRefPrefix:      "HTL",
	}
	for key, value := range defaults {
		var count int64
		db.Model(&models.Setting{}).Where("setting_key = ?", key).Count(&count)
		if count == 0 {
			if err := db.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
