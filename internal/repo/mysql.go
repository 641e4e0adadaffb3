package repo

import (
	"DocVault/config"
	"DocVault/model"
	"database/sql"
	"errors"
	"fmt"
	mysqlDriver "github.com/go-sql-driver/mysql"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"log"
	"strings"
	"time"
)

var Db *gorm.DB

// autoMigrateAll migrates all database models.
func autoMigrateAll(db *gorm.DB) {
	db.AutoMigrate(&model.User{})
	db.AutoMigrate(&model.UserStorage{})
	db.AutoMigrate(&model.Folder{})
	db.AutoMigrate(&model.Document{})
	db.AutoMigrate(&model.FolderSharedUser{})
	db.AutoMigrate(&model.DocumentSharedUser{})
}

// InitMysql initializes the main MySQL connection.
func InitMysql() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPass,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName,
	)
	db, err := gorm.Open(gormMysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("init mysql fail", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("get sql db fail", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	autoMigrateAll(db)
	log.Println("init mysql success")
	Db = db
}

// InitMysqlTest initializes the test MySQL connection.
func InitMysqlTest() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPass,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBNameTest,
	)
	db, err := gorm.Open(gormMysql.Open(dsn), &gorm.Config{})
	if err != nil && isUnknownDatabaseError(err) {
		if createErr := ensureMySQLDatabase(config.AppConfig.DBNameTest); createErr != nil {
			log.Fatal("create test mysql database fail", createErr)
		}
		db, err = gorm.Open(gormMysql.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("init mysql fail", err)
	}

	autoMigrateAll(db)

	log.Println("init mysql success")
	Db = db
}

func isUnknownDatabaseError(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1049
	}
	return strings.Contains(strings.ToLower(err.Error()), "unknown database")
}

func ensureMySQLDatabase(dbName string) error {
	dbName = strings.TrimSpace(dbName)
	if dbName == "" {
		return errors.New("empty database name")
	}

	serverDSN := fmt.Sprintf("%s:%s@tcp(%s:%s)/?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPass,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
	)

	serverDB, err := sql.Open("mysql", serverDSN)
	if err != nil {
		return err
	}
	defer serverDB.Close()

	if err = serverDB.Ping(); err != nil {
		return err
	}

	_, err = serverDB.Exec(
		"CREATE DATABASE IF NOT EXISTS " + quoteMySQLIdentifier(dbName) + " CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci",
	)
	return err
}

func quoteMySQLIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
