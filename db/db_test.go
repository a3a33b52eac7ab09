// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"path/filepath"
	"testing"
)

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	conn, err := Open(TypeSQLite, "file:"+path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	// Schema creation must be repeatable
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("second CreateSchema failed: %v", err)
	}

	_, err = conn.Exec(`INSERT INTO document (name, payload) VALUES ($1, $2)`, "polls", "{}")
	if err != nil {
		t.Fatalf("Failed to insert document: %v", err)
	}

	var payload string
	err = conn.QueryRow(`SELECT payload FROM document WHERE name = $1`, "polls").Scan(&payload)
	if err != nil {
		t.Fatalf("Failed to read document: %v", err)
	}
	if payload != "{}" {
		t.Errorf("Expected payload '{}', got '%s'", payload)
	}
}

func TestOpenUnsupportedType(t *testing.T) {
	_, err := Open("mysql", "whatever")
	if err == nil {
		t.Fatal("Expected error for unsupported database type")
	}
}
