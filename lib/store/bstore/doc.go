// Package bstore implements store.IStore on top of badger, an embedded
// persistent key-value database. Names are the keys, phone numbers the values.
// Data survives restarts of the process, no external service is needed.
package bstore
