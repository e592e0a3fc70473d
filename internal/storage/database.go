package storage

import (
	"database/sql"
	"log"
	"os"

	_ "modernc.org/sqlite"
)

var db *sql.DB

func InitDB() {
	var err error

	dbPath := os.Getenv("SAFE_DB_PATH")
	if dbPath == "" {
		dbPath = "./safe_core.db"
	}

	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatal("InitDB(): Failed to open databse :", err)
	}
	if err = db.Ping(); err != nil {
		log.Fatal("storage.InitDB(): Failed to connect to database: ", err)
	}

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"username" TEXT NOT NULL UNIQUE,
			"password_hash" TEXT NOT NULL,
			"name" TEXT,
			"organization" TEXT,
			"role" TEXT
	);`
	createAnalysesTable := `
	CREATE TABLE IF NOT EXISTS analyses (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"job_id" TEXT NOT NULL UNIQUE,
			"user_id" INTEGER NOT NULL,
			"module" TEXT NOT NULL,
			"target" TEXT,
			"status" TEXT NOT NULL,
			"result" TEXT,
			"created_at" DATETIME NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
	)`

	if _, err := db.Exec(createUsersTable); err != nil {
		log.Fatalf("InitDB(): Failed to create users table: %v", err)
	}
	if _, err := db.Exec(createAnalysesTable); err != nil {
		log.Fatalf("InitDB(): Failed to create analyses table: %v", err)
	}
	log.Println("InitDB(): Init and create table successfully!")
}

// 테스트 및 종료 시 정리용
func CloseDB() {
	if db != nil {
		db.Close()
	}
}
