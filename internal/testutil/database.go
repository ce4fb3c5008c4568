package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB configura una base de datos de prueba
// Espera que exista una BD MySQL en localhost:3306 llamada 'almacen_test'
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/almacen_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB limpia la BD de prueba
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{
		"TicketLines", "Tickets", "Productions", "PurchaseLines", "Purchases",
		"Movements", "Inventory", "Recipes", "Products",
		"Cashiers", "Suppliers", "Branches",
	}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables crea las tablas necesarias para los tests
func SetupTestTables(t *testing.T, db *sql.DB) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS Branches (
			id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS Suppliers (
			id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(150) NOT NULL UNIQUE,
			phone VARCHAR(30),
			contact VARCHAR(150),
			active TINYINT(1) NOT NULL DEFAULT 1,
			createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS Cashiers (
			id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(150) NOT NULL UNIQUE,
			active TINYINT(1) NOT NULL DEFAULT 1,
			createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS Products (
			id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			code VARCHAR(50) UNIQUE,
			category VARCHAR(50) NOT NULL,
			unit VARCHAR(10) NOT NULL,
			sellable TINYINT(1) NOT NULL DEFAULT 0,
			price DECIMAL(12,4) NOT NULL DEFAULT 0,
			lastCost DECIMAL(16,6) NOT NULL DEFAULT 0,
			createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_category (category)
		)`,
		`CREATE TABLE IF NOT EXISTS Recipes (
			productId INT NOT NULL,
			componentId INT NOT NULL,
			qtyPerUnit DECIMAL(16,6) NOT NULL,
			PRIMARY KEY (productId, componentId)
		)`,
		`CREATE TABLE IF NOT EXISTS Inventory (
			productId INT NOT NULL,
			branchId INT NOT NULL,
			qtyBase DECIMAL(18,6) NOT NULL DEFAULT 0,
			PRIMARY KEY (productId, branchId)
		)`,
		`CREATE TABLE IF NOT EXISTS Movements (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			productId INT NOT NULL,
			branchId INT NOT NULL,
			deltaBase DECIMAL(18,6) NOT NULL,
			reason VARCHAR(20) NOT NULL,
			refTable VARCHAR(50) NOT NULL,
			refId BIGINT,
			note VARCHAR(255) NOT NULL DEFAULT '',
			createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_product_branch (productId, branchId)
		)`,
		`CREATE TABLE IF NOT EXISTS Purchases (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			branchId INT NOT NULL,
			supplierId INT,
			total DECIMAL(14,4) NOT NULL DEFAULT 0,
			note VARCHAR(255) NOT NULL DEFAULT '',
			createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS PurchaseLines (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			purchaseId BIGINT NOT NULL,
			productId INT NOT NULL,
			quantity DECIMAL(16,6) NOT NULL,
			totalCost DECIMAL(14,4) NOT NULL,
			unitCost DECIMAL(16,6) NOT NULL,
			INDEX idx_product (productId)
		)`,
		`CREATE TABLE IF NOT EXISTS Productions (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			productId INT NOT NULL,
			branchId INT NOT NULL,
			quantity DECIMAL(16,6) NOT NULL,
			note VARCHAR(255) NOT NULL DEFAULT '',
			createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS Tickets (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			type VARCHAR(10) NOT NULL,
			branchId INT NOT NULL,
			cashier VARCHAR(150),
			total DECIMAL(14,4) NOT NULL DEFAULT 0,
			note VARCHAR(255) NOT NULL DEFAULT '',
			createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS TicketLines (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			ticketId BIGINT NOT NULL,
			productId INT NOT NULL,
			quantity DECIMAL(16,6) NOT NULL,
			unitPrice DECIMAL(12,4) NOT NULL,
			catalogPrice DECIMAL(12,4) NOT NULL,
			subtotal DECIMAL(14,4) NOT NULL,
			INDEX idx_ticket (ticketId)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to create test table: %v", err)
		}
	}
}
