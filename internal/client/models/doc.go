// Package models defines the data exchanged with the Loopa backend by the
// console's session subsystem: the operator profile, its roles and merchants,
// and the magic-link request/verify payloads.
package models
