package store

import "errors"

var (
	// ErrAccountNotFound reports a lookup for an account id or email that
	// has no row.
	ErrAccountNotFound = errors.New("account not found")

	// ErrCollectionNotFound reports a lookup for a collection that has no
	// row.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrAccountAlreadyExists reports an attempt to create a second account
	// with the same email address.
	ErrAccountAlreadyExists = errors.New("account already exists")
)
