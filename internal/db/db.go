package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"facturation/internal/models"
)

// Connect opens the database named by the DSN, picking the driver from its
// shape: postgres URLs and key=value lists go to the postgres driver,
// anything else is treated as a sqlite path/URI.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN est vide, vérifiez la configuration de l'environnement")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var (
		db  *gorm.DB
		err error
	)
	if IsPostgres(dsn) {
		for i := 0; i < 10; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			fmt.Println("Retrying DB connection...", err)
			time.Sleep(2 * time.Second)
		}
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	return db, nil
}

// ConnectAndMigrate connects using the DATABASE_DSN env var and brings the
// schema up to date. With MIGRATIONS=1 the SQL files in ./migrations run via
// golang-migrate (postgres only); otherwise AutoMigrate covers the four
// billing tables, which is enough for sqlite development setups.
func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	db, err := Connect(dsn)
	if err != nil {
		return nil, err
	}

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	for _, table := range []string{"produits", "clients", "factures", "ligne_factures"} {
		if !db.Migrator().HasTable(table) {
			return nil, fmt.Errorf("missing table after migration: %s", table)
		}
	}
	// Seeding only when explicitly requested (e.g. development) via DB_SEED=1|true
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		seed(db)
	}
	return db, nil
}

// AutoMigrate creates or updates the billing tables.
func AutoMigrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.Produit{}, &models.Client{}, &models.Facture{}, &models.LigneFacture{},
	}
	for _, m := range modelsToMigrate {
		if migErr := db.AutoMigrate(m); migErr != nil {
			return fmt.Errorf("automigrate %T: %w", m, migErr)
		}
	}
	return nil
}

// seed inserts a small demo catalogue and client set, idempotently.
func seed(db *gorm.DB) {
	baseProduits := []models.Produit{
		{Designation: "Clavier", Prix: decimal.NewFromFloat(25.00)},
		{Designation: "Écran 24\"", Prix: decimal.NewFromFloat(150.00)},
		{Designation: "Souris", Prix: decimal.NewFromFloat(12.50)},
	}
	for _, p := range baseProduits {
		var count int64
		db.Model(&models.Produit{}).Where("designation = ?", p.Designation).Count(&count)
		if count == 0 {
			db.Create(&p)
		}
	}
	baseClients := []models.Client{
		{Nom: "Martin", Prenom: "Claire", Sexe: "F", Adresse: "12 rue des Lilas, Lyon", Tel: "0472000001"},
		{Nom: "Bernard", Prenom: "Paul", Sexe: "M", Adresse: "3 avenue Foch, Paris", Tel: "0145000002"},
	}
	for _, c := range baseClients {
		var count int64
		db.Model(&models.Client{}).Where("nom = ? AND prenom = ?", c.Nom, c.Prenom).Count(&count)
		if count == 0 {
			db.Create(&c)
		}
	}
}

// runSQLMigrations executes migrations in ./migrations using the
// golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
