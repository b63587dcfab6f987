package filestore

import "errors"

var (
	ErrBadName  = errors.New("filestore: invalid filter name")
	ErrNotFound = errors.New("filestore: filter not found")
)
