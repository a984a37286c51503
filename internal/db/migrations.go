package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'document_status') THEN
			CREATE TYPE document_status AS ENUM ('DRAFT', 'POSTED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'record_type') THEN
			CREATE TYPE record_type AS ENUM ('INCOME', 'EXPENSE');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS works (
		id UUID PRIMARY KEY,
		name VARCHAR(512) NOT NULL,
		unit VARCHAR(32),
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE TABLE IF NOT EXISTS people (
		id UUID PRIMARY KEY,
		full_name VARCHAR(256) NOT NULL,
		position VARCHAR(128),
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE TABLE IF NOT EXISTS site_objects (
		id UUID PRIMARY KEY,
		name VARCHAR(512) NOT NULL,
		address VARCHAR(512),
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE TABLE IF NOT EXISTS organizations (
		id UUID PRIMARY KEY,
		name VARCHAR(512) NOT NULL,
		bin VARCHAR(32),
		head_full_name VARCHAR(256),
		address VARCHAR(512),
		phone VARCHAR(64)
	);`,
	`CREATE TABLE IF NOT EXISTS estimates (
		id UUID PRIMARY KEY,
		number VARCHAR(64) NOT NULL,
		date DATE NOT NULL,
		object_id UUID NOT NULL REFERENCES site_objects(id),
		organization_id UUID REFERENCES organizations(id),
		status document_status NOT NULL DEFAULT 'DRAFT',
		posted_at TIMESTAMPTZ,
		posted_by_user_id UUID,
		total_sum NUMERIC(18,2) NOT NULL DEFAULT 0,
		total_labor NUMERIC(18,3) NOT NULL DEFAULT 0,
		comment TEXT,
		version INTEGER NOT NULL DEFAULT 1,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_by_user_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_estimates_number_date ON estimates (number, date) WHERE NOT is_deleted;`,
	`CREATE TABLE IF NOT EXISTS estimate_lines (
		id UUID PRIMARY KEY,
		estimate_id UUID NOT NULL REFERENCES estimates(id) ON DELETE CASCADE,
		parent_id UUID REFERENCES estimate_lines(id),
		is_group BOOLEAN NOT NULL DEFAULT FALSE,
		work_id UUID REFERENCES works(id),
		name VARCHAR(512),
		quantity NUMERIC(18,3) NOT NULL DEFAULT 0,
		price NUMERIC(18,4) NOT NULL DEFAULT 0,
		sum NUMERIC(18,2) NOT NULL DEFAULT 0,
		labor NUMERIC(18,3) NOT NULL DEFAULT 0,
		order_num INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_estimate_lines_estimate_id ON estimate_lines (estimate_id);`,
	`CREATE TABLE IF NOT EXISTS daily_reports (
		id UUID PRIMARY KEY,
		number VARCHAR(64) NOT NULL,
		date DATE NOT NULL,
		object_id UUID NOT NULL REFERENCES site_objects(id),
		estimate_id UUID NOT NULL REFERENCES estimates(id),
		status document_status NOT NULL DEFAULT 'DRAFT',
		posted_at TIMESTAMPTZ,
		posted_by_user_id UUID,
		total_sum NUMERIC(18,2) NOT NULL DEFAULT 0,
		total_labor NUMERIC(18,3) NOT NULL DEFAULT 0,
		comment TEXT,
		version INTEGER NOT NULL DEFAULT 1,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_by_user_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_daily_reports_number_date ON daily_reports (number, date) WHERE NOT is_deleted;`,
	`CREATE TABLE IF NOT EXISTS daily_report_lines (
		id UUID PRIMARY KEY,
		daily_report_id UUID NOT NULL REFERENCES daily_reports(id) ON DELETE CASCADE,
		estimate_line_id UUID NOT NULL REFERENCES estimate_lines(id),
		planned_labor NUMERIC(18,3) NOT NULL DEFAULT 0,
		actual_labor NUMERIC(18,3) NOT NULL DEFAULT 0,
		deviation NUMERIC(18,3) NOT NULL DEFAULT 0,
		order_num INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_daily_report_lines_report_id ON daily_report_lines (daily_report_id);`,
	`CREATE TABLE IF NOT EXISTS daily_report_executors (
		daily_report_line_id UUID NOT NULL REFERENCES daily_report_lines(id) ON DELETE CASCADE,
		person_id UUID NOT NULL REFERENCES people(id),
		PRIMARY KEY (daily_report_line_id, person_id)
	);`,
	`CREATE TABLE IF NOT EXISTS timesheets (
		id UUID PRIMARY KEY,
		number VARCHAR(64) NOT NULL,
		date DATE NOT NULL,
		object_id UUID NOT NULL REFERENCES site_objects(id),
		estimate_id UUID REFERENCES estimates(id),
		status document_status NOT NULL DEFAULT 'DRAFT',
		posted_at TIMESTAMPTZ,
		posted_by_user_id UUID,
		total_sum NUMERIC(18,2) NOT NULL DEFAULT 0,
		total_labor NUMERIC(18,3) NOT NULL DEFAULT 0,
		comment TEXT,
		version INTEGER NOT NULL DEFAULT 1,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_by_user_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_timesheets_number_date ON timesheets (number, date) WHERE NOT is_deleted;`,
	`CREATE TABLE IF NOT EXISTS timesheet_lines (
		id UUID PRIMARY KEY,
		timesheet_id UUID NOT NULL REFERENCES timesheets(id) ON DELETE CASCADE,
		person_id UUID NOT NULL REFERENCES people(id),
		work_id UUID REFERENCES works(id),
		work_date DATE NOT NULL,
		hours NUMERIC(18,3) NOT NULL DEFAULT 0,
		rate NUMERIC(18,4) NOT NULL DEFAULT 0,
		sum NUMERIC(18,2) NOT NULL DEFAULT 0,
		order_num INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_timesheet_lines_timesheet_id ON timesheet_lines (timesheet_id);`,
	`CREATE TABLE IF NOT EXISTS movements (
		id UUID PRIMARY KEY,
		period DATE NOT NULL,
		record_type record_type NOT NULL,
		object_id UUID NOT NULL,
		estimate_id UUID NOT NULL,
		work_id UUID,
		document_type VARCHAR(32) NOT NULL,
		document_id UUID NOT NULL,
		line_id UUID NOT NULL,
		line_order INTEGER NOT NULL,
		quantity NUMERIC(18,3) NOT NULL,
		sum NUMERIC(18,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_movements_period ON movements (period);`,
	`CREATE INDEX IF NOT EXISTS idx_movements_document ON movements (document_type, document_id);`,
	`CREATE INDEX IF NOT EXISTS idx_movements_dimensions ON movements (object_id, estimate_id, work_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
