package odoo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseAdmin covers the role and database operations the lifecycle
// needs against the host's PostgreSQL cluster.
type DatabaseAdmin interface {
	Ping(ctx context.Context) error
	// CreateRole creates a login role with CREATEDB; it fails if the role
	// already exists (create is deliberately not idempotent).
	CreateRole(ctx context.Context, name, password string) error
	DropRole(ctx context.Context, name string) error
	// OwnedDatabases lists every database owned by role, sorted.
	OwnedDatabases(ctx context.Context, role string) ([]string, error)
	// DropDatabase terminates active connections to name, then drops it.
	DropDatabase(ctx context.Context, name string) error
}

type postgresAdmin struct {
	db *gorm.DB
}

// NewDatabaseAdmin connects to the cluster's administrative database with
// the host's superuser credentials.
func NewDatabaseAdmin(host Host) (DatabaseAdmin, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%d sslmode=disable",
		host.DBHost, host.DBUser, host.DBPassword, host.DBPort)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, &DatabaseError{Op: "connect", Err: err}
	}
	return &postgresAdmin{db: db}, nil
}

// quoteIdent double-quotes a PostgreSQL identifier. Names reaching this
// point already passed the registry's character-class check; quoting keeps
// the statement well-formed regardless.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(value string) string {
	return `'` + strings.ReplaceAll(value, `'`, `''`) + `'`
}

func (a *postgresAdmin) Ping(ctx context.Context) error {
	if err := a.db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return &DatabaseError{Op: "ping", Err: err}
	}
	return nil
}

func (a *postgresAdmin) CreateRole(ctx context.Context, name, password string) error {
	var count int64
	err := a.db.WithContext(ctx).
		Raw("SELECT count(*) FROM pg_roles WHERE rolname = ?", name).
		Scan(&count).Error
	if err != nil {
		return &DatabaseError{Op: "check role", Err: err}
	}
	if count > 0 {
		return &DatabaseError{Op: "create role", Err: fmt.Errorf("role %q already exists", name)}
	}
	// DDL does not take bind parameters; both values are quoted above.
	stmt := fmt.Sprintf("CREATE ROLE %s WITH LOGIN CREATEDB PASSWORD %s",
		quoteIdent(name), quoteLiteral(password))
	if err := a.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return &DatabaseError{Op: "create role", Err: err}
	}
	return nil
}

func (a *postgresAdmin) DropRole(ctx context.Context, name string) error {
	stmt := fmt.Sprintf("DROP ROLE IF EXISTS %s", quoteIdent(name))
	if err := a.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return &DatabaseError{Op: "drop role", Err: err}
	}
	return nil
}

func (a *postgresAdmin) OwnedDatabases(ctx context.Context, role string) ([]string, error) {
	var names []string
	err := a.db.WithContext(ctx).
		Raw(`SELECT d.datname FROM pg_database d
		     JOIN pg_roles r ON d.datdba = r.oid
		     WHERE r.rolname = ? ORDER BY d.datname`, role).
		Scan(&names).Error
	if err != nil {
		return nil, &DatabaseError{Op: "list owned databases", Err: err}
	}
	return names, nil
}

func (a *postgresAdmin) DropDatabase(ctx context.Context, name string) error {
	err := a.db.WithContext(ctx).Exec(
		`SELECT pg_terminate_backend(pid) FROM pg_stat_activity
		 WHERE datname = ? AND pid <> pg_backend_pid()`, name).Error
	if err != nil {
		return &DatabaseError{Op: "terminate connections", Err: err}
	}
	stmt := fmt.Sprintf("DROP DATABASE IF EXISTS %s", quoteIdent(name))
	if err := a.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return &DatabaseError{Op: "drop database", Err: err}
	}
	return nil
}
