package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	// Documentos fiscales
	ErrMalformedDocument  = errors.New("documento XML mal formado")
	ErrIncompleteDocument = errors.New("documento NF-e incompleto")
	ErrUnsupportedFile    = errors.New("tipo de archivo no soportado")
)
