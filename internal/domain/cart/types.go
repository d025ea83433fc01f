package cart

import (
	"github.com/google/uuid"
)

// OwnerKey identifies the single owner of a cart row: either an
// authenticated user or an anonymous device token. Never both.
type OwnerKey string

func OwnerForUser(userID uuid.UUID) OwnerKey {
	return OwnerKey("user:" + userID.String())
}

func OwnerForGuest(token string) OwnerKey {
	return OwnerKey("guest:" + token)
}

func (k OwnerKey) String() string {
	return string(k)
}
