package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a conditional write finds the record in a
// different state than the caller read it in.
var ErrConflict = errors.New("conflict")
