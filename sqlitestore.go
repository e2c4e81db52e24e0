/*  D3pixelcanvas - On-chain pixel canvas program and local ledger tooling
    Copyright (C) 2019  David Vogel

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.  */

package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	_ "modernc.org/sqlite"
)

// Persists the accounts of the local ledger in a sqlite database.
type sqliteStore struct {
	db *sql.DB
}

func openSQLiteStore(path string) (*sqliteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("Empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("Can't create directory for %v: %v", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("Can't open database %v: %v", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	statements := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=FULL;",
		`CREATE TABLE IF NOT EXISTS accounts (
			key      BLOB PRIMARY KEY,
			owner    BLOB NOT NULL,
			lamports INTEGER NOT NULL,
			data     BLOB NOT NULL
		);`,
	}
	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			db.Close()
			return nil, fmt.Errorf("Can't initialize database %v: %v", path, err)
		}
	}

	log.Debugf("Opened account database %v", path)

	return &sqliteStore{db: db}, nil
}

func (ss *sqliteStore) getAccount(key solana.PublicKey) (*accountInfo, error) {
	var owner, data []byte
	var lamports int64

	err := ss.db.QueryRow("SELECT owner, lamports, data FROM accounts WHERE key = ?", key[:]).Scan(&owner, &lamports, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", errAccountNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("Can't query account %v: %v", key, err)
	}
	if len(owner) != solana.PublicKeyLength {
		return nil, fmt.Errorf("Account %v has a malformed owner", key)
	}

	return &accountInfo{
		Key:      key,
		Owner:    solana.PublicKeyFromBytes(owner),
		Lamports: uint64(lamports),
		Data:     data,
	}, nil
}

func (ss *sqliteStore) putAccounts(accounts ...*accountInfo) error {
	tx, err := ss.db.Begin()
	if err != nil {
		return fmt.Errorf("Can't begin transaction: %v", err)
	}
	defer tx.Rollback()

	for _, account := range accounts {
		_, err := tx.Exec(`INSERT INTO accounts (key, owner, lamports, data) VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET owner = excluded.owner, lamports = excluded.lamports, data = excluded.data`,
			account.Key[:], account.Owner[:], int64(account.Lamports), account.Data)
		if err != nil {
			return fmt.Errorf("Can't store account %v: %v", account.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Can't commit accounts: %v", err)
	}

	return nil
}

func (ss *sqliteStore) Close() error {
	return ss.db.Close()
}
