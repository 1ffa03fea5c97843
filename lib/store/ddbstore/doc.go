// Package ddbstore implements store.IStore on top of an AWS DynamoDB table.
//
// The table needs a string partition key "name", the phone number(s) are kept
// in the string attribute "phone". Reads are strongly consistent. Credentials
// and region come from the default AWS configuration chain, an explicit
// endpoint can be set for local emulators.
package ddbstore
