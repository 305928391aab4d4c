package config

import (
	"strings"
	"testing"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TILLPOINT_APP_ENV", "dev")
	t.Setenv("TILLPOINT_APP_PORT", "8080")
	t.Setenv("TILLPOINT_JWT_SECRET", "secret")
	t.Setenv("TILLPOINT_JWT_ISSUER", "tillpoint")
}

func TestLoadWithDSN(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TILLPOINT_DB_DSN", "postgres://till:pw@localhost:5432/tillpoint")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DB.DSN != "postgres://till:pw@localhost:5432/tillpoint" {
		t.Fatalf("dsn not preserved: %s", cfg.DB.DSN)
	}
	if !cfg.App.IsDev() || cfg.App.IsProd() {
		t.Fatal("env helpers disagree with TILLPOINT_APP_ENV=dev")
	}
	if cfg.Sales.Currency != "USD" {
		t.Fatalf("expected default currency USD, got %s", cfg.Sales.Currency)
	}
	if cfg.Sales.WalkInCustomerName != "Walk-in Customer" {
		t.Fatalf("unexpected walk-in default: %s", cfg.Sales.WalkInCustomerName)
	}
}

func TestLoadBuildsDSNFromLegacyVars(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TILLPOINT_DB_HOST", "db.internal")
	t.Setenv("TILLPOINT_DB_USER", "till")
	t.Setenv("TILLPOINT_DB_PASSWORD", "pw")
	t.Setenv("TILLPOINT_DB_NAME", "tillpoint")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, fragment := range []string{"postgres://", "till:pw@", "db.internal:5432", "/tillpoint", "sslmode=disable"} {
		if !strings.Contains(cfg.DB.DSN, fragment) {
			t.Fatalf("built dsn missing %q: %s", fragment, cfg.DB.DSN)
		}
	}
}

func TestLoadFailsWithoutDatabaseConfig(t *testing.T) {
	setBaseEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error without DSN or legacy vars")
	}
}

func TestLoadReportsMissingLegacyVars(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TILLPOINT_DB_HOST", "db.internal")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for partial legacy config")
	}
	if !strings.Contains(err.Error(), "TILLPOINT_DB_USER") || !strings.Contains(err.Error(), "TILLPOINT_DB_NAME") {
		t.Fatalf("error should name the missing vars: %v", err)
	}
}
