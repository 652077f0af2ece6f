// Package db は全フィーチャーで共有するRDB接続を提供します。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Config はデータベースへの接続情報です。
// DSNが設定されている場合はそのままドライバに渡します。
type Config struct {
	Driver   string
	DSN      string
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
	// InstanceName はCloud SQLの接続名です。指定時、MySQLはunixソケット経由で接続します。
	InstanceName   string
	ConnectTimeout time.Duration
}

// BuildDSN はcfg.Driverに応じた接続文字列を組み立てます。
func BuildDSN(cfg Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	switch cfg.Driver {
	case DriverMySQL:
		if cfg.InstanceName != "" {
			return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
				cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	case DriverSQLite:
		if cfg.Name == "" {
			return "file::memory:?cache=shared"
		}
		return cfg.Name
	default:
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode)
	}
}

// Opener opens a GORM handle for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor returns the Opener of driver. Errors are translated so that unique
// violations surface as gorm.ErrDuplicatedKey.
func OpenerFor(driver string) (Opener, error) {
	var dialector func(string) gorm.Dialector
	switch driver {
	case DriverPostgres, "":
		dialector = postgres.Open
	case DriverMySQL:
		dialector = gmysql.Open
	case DriverSQLite:
		dialector = sqlite.Open
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dialector(dsn), &gorm.Config{TranslateError: true})
	}, nil
}

// ConnectWithRetry は成功するかtimeoutを過ぎるまでopenerを呼び出します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Provider はプロセス全体で1つのハンドルを提供します。初回利用時に接続します。
type Provider struct {
	cfg    Config
	opener Opener

	once   sync.Once
	mu     sync.Mutex
	db     *gorm.DB
	err    error
	closed bool
}

// NewProvider creates a Provider. Nothing is opened until Get is called.
func NewProvider(cfg Config) (*Provider, error) {
	opener, err := OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, opener: opener}, nil
}

// ErrClosed is returned by Get after Close.
var ErrClosed = errors.New("db provider closed")

// Get は共有ハンドルを返します。初回呼び出し時に接続し、
// 同時に呼ばれた場合も接続試行は1回だけです。
func (p *Provider) Get() (*gorm.DB, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	p.once.Do(func() {
		timeout := p.cfg.ConnectTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		db, err := ConnectWithRetry(BuildDSN(p.cfg), timeout, p.opener)

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.closed && err == nil {
			// 接続中にCloseされた
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			db, err = nil, ErrClosed
		}
		p.db, p.err = db, err
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	return p.db, p.err
}

// Close は接続プールを解放します。複数回呼んでも安全です。
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.db == nil {
		return nil
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
