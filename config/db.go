package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"lumarise-backend/logger"
	"lumarise-backend/models"
)

const (
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	port := u.Port()
	if port == "" {
		port = "3306"
	}
	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	cfg := mysqlConfig()
	cfg.User = u.User.Username()
	cfg.Passwd, _ = u.User.Password()
	cfg.Addr = net.JoinHostPort(u.Hostname(), port)
	cfg.DBName = dbName
	for key, values := range u.Query() {
		if len(values) > 0 {
			cfg.Params[key] = values[0]
		}
	}
	return cfg.FormatDSN(), nil
}

func mysqlConfig() *mysqldriver.Config {
	cfg := mysqldriver.NewConfig()
	cfg.Net = "tcp"
	cfg.ParseTime = true
	// Date-only columns are written as UTC midnights; reading them back in
	// another zone would shift the day.
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

func sqliteDSN(raw string) string {
	dsn := strings.TrimPrefix(strings.TrimPrefix(raw, "sqlite://"), "sqlite:")
	if !strings.Contains(dsn, "_pragma=foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}
	return dsn
}

// ResolveDSN picks the SQL dialect and driver DSN. DATABASE_URL (or the
// older MYSQL_URL) wins; otherwise the DB_* parts build a MySQL DSN.
func ResolveDSN(cfg DBConfig) (string, string, error) {
	raw := strings.TrimSpace(cfg.URL)
	if raw == "" {
		raw = strings.TrimSpace(cfg.MySQLURL)
	}

	if raw != "" {
		switch {
		case strings.HasPrefix(raw, "mysql://"):
			dsn, err := mysqlDSNFromURL(raw)
			return DialectMySQL, dsn, err
		case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
			return DialectPostgres, raw, nil
		case strings.HasPrefix(raw, "sqlite:"), strings.HasPrefix(raw, "file:"), raw == ":memory:":
			return DialectSQLite, sqliteDSN(raw), nil
		default:
			// Plain go-sql-driver DSN, e.g. user:pass@tcp(host:3306)/db
			return DialectMySQL, raw, nil
		}
	}

	mc := mysqlConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	return DialectMySQL, mc.FormatDSN(), nil
}

type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Zerolog().Warn().Str("component", "gorm").Msgf(format, args...)
}

// OpenDatabase opens a gorm connection for the given dialect without migrating.
func OpenDatabase(dialect, dsn string, cfg DBConfig, logg *logger.Logger) (*gorm.DB, error) {
	if logg == nil {
		logg = logger.Nop()
	}

	var dialector gorm.Dialector
	switch dialect {
	case DialectMySQL:
		dialector = mysql.Open(dsn)
	case DialectPostgres:
		dialector = postgres.Open(dsn)
	case DialectSQLite:
		dialector = gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		})
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}

	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}
	gormLog := gormlogger.New(gormWriter{log: logg}, gormlogger.Config{
		SlowThreshold:             slow,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if dialect == DialectSQLite && strings.Contains(dsn, ":memory:") {
		// Every pooled connection would otherwise get its own empty database.
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
	}
	return db, nil
}

// ConnectDatabase resolves the DSN, opens the pool, pings and migrates.
func ConnectDatabase(ctx context.Context, cfg DBConfig, logg *logger.Logger) (*gorm.DB, error) {
	dialect, dsn, err := ResolveDSN(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database dsn: %w", err)
	}

	db, err := OpenDatabase(dialect, dsn, cfg, logg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping %s database: %w", dialect, err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Migrate creates or alters every table in parent-to-child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// SeedDatabase creates the first admin account when none exists and a
// password is configured. It reports whether an account was created.
func SeedDatabase(ctx context.Context, db *gorm.DB, admin AdminConfig, logg *logger.Logger) (bool, error) {
	if logg == nil {
		logg = logger.Nop()
	}
	if strings.TrimSpace(admin.Password) == "" {
		return false, nil
	}

	var adminCount int64
	if err := db.WithContext(ctx).Model(&models.Admin{}).Count(&adminCount).Error; err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if adminCount > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash default admin password: %w", err)
	}
	seed := models.Admin{
		Username: strings.TrimSpace(admin.Username),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.WithContext(ctx).Create(&seed).Error; err != nil {
		return false, fmt.Errorf("create default admin: %w", err)
	}

	logg.Info(logg.WithField(ctx, "username", seed.Username), "default admin seeded")
	return true, nil
}
