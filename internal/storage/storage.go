package storage

import "errors"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrShaderNotFound   = errors.New("shader source not found")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
)
