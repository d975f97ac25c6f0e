package database

import (
	"fmt"

	"jobAgent/internal/config"
	"jobAgent/internal/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
}

func New(cfg *config.Cfg, log *logger.Zap) (*DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к PostgreSQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("PostgreSQL недоступен: %w", err)
	}

	log.Info("Подключение к БД установлено", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.Name))
	return &DB{DB: db}, nil
}

func (d *DB) Close(log *logger.Zap) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		log.Error("Ошибка получения sql.DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("Ошибка закрытия БД", zap.Error(err))
	}
}

// OpenJournal выбирает журнал по конфигурации. Возвращаемая функция закрывает соединение.
func OpenJournal(cfg *config.Cfg, log *logger.Zap) (Journal, func(), error) {
	if !cfg.Database.Enabled() {
		log.Info("DB_HOST не задан, журнал запусков хранится в памяти")
		return NewMemoryJournal(), func() {}, nil
	}

	db, err := New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return NewRunRepository(db.DB), func() { db.Close(log) }, nil
}
