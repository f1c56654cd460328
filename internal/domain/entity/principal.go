package entity

import "github.com/google/uuid"

// Principal is the authenticated actor behind an operation.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}
