package infra

import (
	"fmt"

	"frtransportes/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies any idempotent SQL patches that GORM
// cannot express (sequences, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus the SQL patches. Shared with
// integration tests so a fresh container gets the exact production schema.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.Prestador{},
		&model.Servico{},
		&model.Parada{},
		&model.Lancamento{},
		&model.LancamentoPrestador{},
		&model.QuitacaoPrestador{},
		&model.RecusaServico{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Order numbers come from a dedicated sequence so concurrent creates
		// never race for the same number. Seeded from the current maximum so
		// an existing dataset keeps counting instead of restarting at 1.
		{"create and seed servicos_numero_seq", `
DO $$
DECLARE max_num BIGINT;
BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_class WHERE relkind = 'S' AND relname = 'servicos_numero_seq') THEN
    SELECT COALESCE(MAX(numero::BIGINT), 0) INTO max_num
    FROM servicos WHERE numero ~ '^[0-9]+$';
    EXECUTE format('CREATE SEQUENCE servicos_numero_seq START WITH %s', max_num + 1);
  END IF;
END $$`},
		// Partial index for the lateness cron query.
		{"create idx_servicos_atrasados", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_servicos_atrasados') THEN
    CREATE INDEX idx_servicos_atrasados
        ON servicos (agendado_para)
        WHERE agendado = true AND status IN ('aguardando_aceite', 'aceito', 'coletado');
  END IF;
END $$`},
		// Period-aggregation path: provider ledger is always filtered by
		// prestador + posting date.
		{"create idx_lancamentos_prestador_periodo", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_lancamentos_prestador_periodo') THEN
    CREATE INDEX idx_lancamentos_prestador_periodo
        ON lancamentos_prestador (prestador_id, data_lancamento);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
