package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrUnsupportedKind   = errors.New("tipo de documento no soportado")
	ErrNoRecipient       = errors.New("el cliente no tiene correo de contacto")
)
