// Package common provides the configuration structures and the logging setup
// shared by the server, the client and the cli.
//
// Key Components:
//
//   - ServerConfig: Listen endpoint and transport, validation endpoint, timeouts,
//     message size limit, admin endpoint, log level and the storage backend
//     configuration. Validate checks the struct tags (go-playground/validator)
//     including the section of the selected storage backend.
//
//   - ClientConfig: Server endpoint, transport, timeout and message size limit
//     used by the phonebook client.
//
//   - Logger: Custom implementation of dragonboat's logger.ILogger with the
//     format "LEVEL | name | message". InitLoggers installs it for all loggers.
package common
