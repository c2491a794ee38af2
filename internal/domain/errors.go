package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("código duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrRefNotFound       = errors.New("referencia no encontrada")
	ErrInsufficientStock = errors.New("stock insuficiente")
)
