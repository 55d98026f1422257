package db

import (
	"testing"

	"gorm.io/gorm"
)

func clearDBEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_DRIVER", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_HOST", "DB_PORT", "INSTANCE_CONNECTION_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestMysqlDSN_TCP(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")

	dsn := mysqlDSN()

	expected := "testuser:testpass@tcp(localhost:3306)/testdb?charset=utf8mb4&parseTime=true&loc=Local"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

func TestMysqlDSN_CloudSQL(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	// Host/Port are also set: the unix socket must take precedence
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("INSTANCE_CONNECTION_NAME", "project:region:instance")

	dsn := mysqlDSN()

	expected := "testuser:testpass@unix(/cloudsql/project:region:instance)/testdb?charset=utf8mb4&parseTime=true&loc=Local"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

func TestPostgresDSN(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")

	dsn := postgresDSN()

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

func TestDialector_DriverSelection(t *testing.T) {
	tests := []struct {
		name         string
		driver       string
		expectedName string
	}{
		{name: "default is mysql", driver: "", expectedName: "mysql"},
		{name: "postgres", driver: "postgres", expectedName: "postgres"},
		{name: "sqlite", driver: "sqlite", expectedName: "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearDBEnv(t)
			t.Setenv("DB_DRIVER", tt.driver)

			var d gorm.Dialector = dialector()

			if d.Name() != tt.expectedName {
				t.Errorf("expected dialector %q, got %q", tt.expectedName, d.Name())
			}
		})
	}
}
