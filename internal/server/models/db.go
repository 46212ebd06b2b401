// Package models defines server-side data models persisted in the database
// and returned by the HTTP API.
package models
