package db

import (
	"context"
	"fmt"

	"besties/config"
	"besties/logs"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

func dsnFromConfig(dbConf config.DBConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.Port, dbConf.User, dbConf.Password, dbConf.DBName,
	)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// ConnectDB открывает postgres (мастер + реплики) или sqlite в зависимости от store.driver
func ConnectDB(conf *config.ConfigSchema) (*gorm.DB, error) {
	if conf == nil {
		return nil, fmt.Errorf("config is not loaded")
	}

	if conf.Store.Driver == "sqlite" {
		return OpenSQLite(conf.Databases.SQLitePath)
	}

	if conf.Databases.Master.Host == "" {
		return nil, fmt.Errorf("master database configuration is missing")
	}

	replicas := make([]gorm.Dialector, 0, len(conf.Databases.Replicas))
	for _, r := range conf.Databases.Replicas {
		replicas = append(replicas, postgres.Open(dsnFromConfig(r)))
	}

	orm, err := gorm.Open(postgres.Open(dsnFromConfig(conf.Databases.Master)), gormConfig())
	if err != nil {
		return nil, err
	}

	if len(replicas) > 0 {
		err = orm.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, err
		}
		logs.Log.WithField("replicas", len(replicas)).Info("read replicas registered")
	}

	if err = Migrate(orm); err != nil {
		return nil, err
	}
	return orm, nil
}

// OpenSQLite используется для локального запуска и тестов (":memory:")
func OpenSQLite(path string) (*gorm.DB, error) {
	orm, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// у каждого соединения своя in-memory база
		sqlDB, err := orm.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err = Migrate(orm); err != nil {
		return nil, err
	}
	return orm, nil
}

// GetReadOnlyDB возвращает подключение для чтения (реплики)
func GetReadOnlyDB(ctx context.Context, orm *gorm.DB) *gorm.DB {
	return orm.WithContext(ctx).Clauses(dbresolver.Read)
}

// GetWriteDB возвращает подключение для записи (мастер)
func GetWriteDB(ctx context.Context, orm *gorm.DB) *gorm.DB {
	return orm.WithContext(ctx).Clauses(dbresolver.Write)
}
