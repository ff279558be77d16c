package db

import (
	"blog/config"

	"github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var Instance *gorm.DB

// Init opens the configured database and stores it in Instance.
// MySQL wins over Postgres, Postgres over SQLite.
func Init() {
	var (
		db  *gorm.DB
		err error
	)
	switch {
	case config.MYSQL_DSN != "":
		db, err = OpenMySQL(config.MYSQL_DSN)
	case config.POSTGRES_DSN != "":
		db, err = Open(postgres.Open(config.POSTGRES_DSN))
		log.Info("[db] using postgres")
	default:
		db, err = OpenSQLite(config.SQLITE_FILE)
		log.Infof("[db] using sqlite file %s", config.SQLITE_FILE)
	}
	if err != nil || db == nil {
		panic(err)
	}
	Instance = db
}

func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	level := logger.Warn
	if config.DEBUG_MODE {
		level = logger.Info
	}
	return gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		PrepareStmt:            true,
		Logger:                 logger.Default.LogMode(level),
	})
}

// OpenMySQL forces parseTime as all timestamps are time.Time
func OpenMySQL(dsn string) (*gorm.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	cfg.ParseTime = true
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = "utf8mb4"
	}
	log.Infof("[db] using mysql %s/%s", cfg.Addr, cfg.DBName)
	return Open(gormmysql.Open(cfg.FormatDSN()))
}

// OpenSQLite opens a file (or ":memory:") with foreign keys enforced.
// A single connection is used, SQLite serializes writers anyway.
func OpenSQLite(file string) (*gorm.DB, error) {
	dsn := "file:" + file + "?_foreign_keys=1"
	if file == ":memory:" {
		dsn = "file::memory:?_foreign_keys=1"
	}
	db, err := Open(sqlite.Open(dsn))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
