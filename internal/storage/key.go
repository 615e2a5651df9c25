package storage

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"growtracker/internal/model"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// GenerateKey builds the storage key for an uploaded file:
// <entitytype>/<entityId>/<uuid>-<sanitized filename>. The random suffix
// keeps repeated uploads of identically named files from colliding.
func GenerateKey(entityType model.EntityType, entityID, filename string) string {
	clean := unsafeKeyChars.ReplaceAllString(filename, "_")
	return fmt.Sprintf("%s/%s/%s-%s", strings.ToLower(string(entityType)), entityID, uuid.NewString(), clean)
}
