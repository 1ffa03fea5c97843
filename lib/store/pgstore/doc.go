// Package pgstore implements store.IStore on top of PostgreSQL using gorm.
//
// The phonebook is a single table created by the embedded migrations:
//
//	userphones(username VARCHAR(30) PRIMARY KEY, phones TEXT NOT NULL)
//
// Store is an upsert (INSERT ... ON CONFLICT (username) DO UPDATE), Remove
// reports whether a row was deleted. Database errors are returned as
// store.Error with code store.RetCUnavailable.
package pgstore
