package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-api/query"
	"estate-api/repositories"
)

var (
	// ErrNotFound indica que el recurso no existe o está oculto para quien
	// llama
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials lo devuelve Login ante cualquier usuario/contraseña
	// incorrectos
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrConflict se devuelve cuando un campo único ya está en uso
	ErrConflict = errors.New("resource already exists")
)

// translate traduce los errores del repositorio a errores del servicio
func translate(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// parseID valida un ObjectID que manda el cliente
func parseID(field, raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, &query.ValidationError{Field: field, Message: "invalid object id"}
	}
	return id, nil
}
