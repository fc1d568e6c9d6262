// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	owner_name TEXT,
	email TEXT,
	phone TEXT,
	country TEXT,
	status TEXT NOT NULL DEFAULT 'active',
	certificate_path TEXT,
	logo_path TEXT,
	verified_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name);
CREATE INDEX IF NOT EXISTS idx_companies_status ON companies(status);

CREATE TABLE IF NOT EXISTS members (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	name TEXT NOT NULL,
	email TEXT,
	role TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (company_id) REFERENCES companies(id)
);

CREATE INDEX IF NOT EXISTS idx_members_company_id ON members(company_id);

CREATE TABLE IF NOT EXISTS departments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS account_documents (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	member_id TEXT,
	document_type TEXT NOT NULL CHECK(document_type IN ('contract', 'invoice', 'certificate', 'identity', 'other')),
	document_no TEXT,
	status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'in_progress', 'completed', 'rejected')),
	file_path TEXT,
	remarks TEXT,
	issued_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (company_id) REFERENCES companies(id),
	FOREIGN KEY (member_id) REFERENCES members(id)
);

CREATE INDEX IF NOT EXISTS idx_account_documents_company_id ON account_documents(company_id);
CREATE INDEX IF NOT EXISTS idx_account_documents_status ON account_documents(status);

CREATE TABLE IF NOT EXISTS product_categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	parent_id TEXT,
	description TEXT,
	status TEXT NOT NULL DEFAULT 'active',
	icon_path TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (parent_id) REFERENCES product_categories(id)
);

CREATE INDEX IF NOT EXISTS idx_product_categories_parent_id ON product_categories(parent_id);

CREATE TABLE IF NOT EXISTS email_templates (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT,
	subject TEXT NOT NULL,
	body TEXT,
	status TEXT NOT NULL DEFAULT 'active',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT,
	department_id INTEGER,
	role TEXT,
	status TEXT NOT NULL DEFAULT 'invited' CHECK(status IN ('invited', 'onboarding', 'active', 'exited')),
	joined_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (department_id) REFERENCES departments(id)
);

CREATE INDEX IF NOT EXISTS idx_employees_department_id ON employees(department_id);

CREATE TABLE IF NOT EXISTS forms (
	id TEXT PRIMARY KEY,
	form_name TEXT NOT NULL,
	form_title TEXT NOT NULL,
	form_description TEXT,
	status TEXT NOT NULL DEFAULT 'draft',
	department_ids TEXT NOT NULL DEFAULT '[]',
	category_ids TEXT NOT NULL DEFAULT '[]',
	section TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_forms_status ON forms(status);

CREATE TABLE IF NOT EXISTS export_log (
	id TEXT PRIMARY KEY,
	module TEXT NOT NULL,
	reason TEXT NOT NULL,
	file_name TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_export_log_module ON export_log(module);
`

// InitSchema creates all tables if they don't exist.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
