package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "hotel-admin/logger"
)

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
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
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	// DATE columns must come back as UTC midnight.
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?%s", user, pass, net.JoinHostPort(host, port), dbName, q.Encode())
	return dsn, dbName, nil
}

// ResolveDSN returns the go-sql-driver DSN and the schema name. MYSQL_URL wins over
// DATABASE_URL, which wins over the DB_* fields.
func ResolveDSN(cfg *Config) (string, string, error) {
	raw := strings.TrimSpace(cfg.MySQLURL)
	if raw == "" {
		raw = strings.TrimSpace(cfg.DatabaseURL)
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		parsed, err := mysqldriver.ParseDSN(raw)
		if err != nil {
			return "", "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		return raw, parsed.DBName, nil
	}

	mc := mysqldriver.NewConfig()
	mc.User = cfg.DB.User
	mc.Passwd = cfg.DB.Pass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.DB.Host, cfg.DB.Port)
	mc.DBName = cfg.DB.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}

	return mc.FormatDSN(), cfg.DB.Name, nil
}

func Connect(cfg *Config) (*gorm.DB, error) {
	dsn, _, err := ResolveDSN(cfg)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if cfg.DB.LogSQL {
		level = logger.Info
	}
	newLogger := logger.New(
		applog.GormWriter{},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("cannot get raw sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("db", cfg.DB.Name).Msg("Database connection established")
	return db, nil
}

// PaymentStatusColumnValues reads the ENUM definition of bookings.payment_status.
func PaymentStatusColumnValues(db *gorm.DB, dbName string) ([]string, error) {
	var columnType string
	err := db.Raw(`
SELECT COLUMN_TYPE
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = ? AND TABLE_NAME = 'bookings' AND COLUMN_NAME = 'payment_status'
`, dbName).Scan(&columnType).Error
	if err != nil {
		return nil, err
	}

	return ParseEnumValues(columnType), nil
}

// ParseEnumValues turns "enum('a','b')" into [a b]. Anything else yields nil.
func ParseEnumValues(columnType string) []string {
	ct := strings.TrimSpace(columnType)
	if len(ct) < 6 || !strings.EqualFold(ct[:5], "enum(") || !strings.HasSuffix(ct, ")") {
		return nil
	}

	body := ct[5 : len(ct)-1]
	var values []string
	var cur strings.Builder
	inQuote := false
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case ch == '\'' && inQuote && i+1 < len(body) && body[i+1] == '\'':
			cur.WriteByte('\'')
			i++
		case ch == '\'':
			if inQuote {
				values = append(values, cur.String())
				cur.Reset()
			}
			inQuote = !inQuote
		case inQuote:
			cur.WriteByte(ch)
		}
	}
	return values
}

// LegalPaymentStatuses picks the storable payment_status values: explicit config first,
// then the live MySQL enum. A nil result means the canonical vocabulary applies.
func LegalPaymentStatuses(cfg *Config, db *gorm.DB) []string {
	if len(cfg.PaymentStatusValues) > 0 {
		out := make([]string, 0, len(cfg.PaymentStatusValues))
		for _, v := range cfg.PaymentStatusValues {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	if db == nil || db.Dialector.Name() != "mysql" {
		return nil
	}

	_, dbName, err := ResolveDSN(cfg)
	if err != nil || dbName == "" {
		return nil
	}

	values, err := PaymentStatusColumnValues(db, dbName)
	if err != nil {
		log.Warn().Err(err).Msg("could not read payment_status enum; using canonical values")
		return nil
	}
	return values
}
