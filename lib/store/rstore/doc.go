// Package rstore implements store.IStore on top of redis (go-redis).
// Every phonebook entry is a plain string key "<prefix><name>" without expiration.
package rstore
