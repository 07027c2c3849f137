package models

import (
	"github.com/google/uuid"
)

// ensureID assigns a v4 UUID when the caller did not provide one. Postgres also
// defaults ids via gen_random_uuid(), but the sqlite driver does not.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
