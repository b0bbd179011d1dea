package infra

import (
	"fmt"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, then runs
// AutoMigrate to create / update all tables.
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

// RunMigrations applies the schema. Shared with integration tests so a
// fresh container gets the exact production layout.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Evento{},
		&model.Insumo{},
		&model.Producto{},
		&model.ProductoInsumo{},
		&model.InventarioProductoEvento{},
		&model.InventarioInsumoEvento{},
		&model.Pedido{},
		&model.PedidoItem{},
		&model.MovimientoInventario{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the kitchen board query (pedidos activos per evento).
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pedidos_activos') THEN
		    CREATE INDEX idx_pedidos_activos
		        ON pedidos (evento_id, created_at)
		        WHERE estado IN ('PENDIENTE', 'EN_PREPARACION');
		  END IF;
		END $$`,
		// Partial index for the low-stock sweep.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_inv_productos_bajo_minimo') THEN
		    CREATE INDEX idx_inv_productos_bajo_minimo
		        ON inventario_productos_evento (evento_id)
		        WHERE activo = true AND cantidad_actual < cantidad_minima;
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_inv_insumos_bajo_minimo') THEN
		    CREATE INDEX idx_inv_insumos_bajo_minimo
		        ON inventario_insumos_evento (evento_id)
		        WHERE activo = true AND cantidad_actual < cantidad_minima;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
