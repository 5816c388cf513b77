package auth

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/spec-kit/storefront-api/internal/domain"
	apperrors "github.com/spec-kit/storefront-api/pkg/util/errorutil"
)

// CanAccess allows admins, and otherwise only the owner of the resource.
// ownerID may be any representation CanonicalID understands.
func CanAccess(claim domain.Claim, ownerID any) bool {
	if claim.IsAdmin() {
		return true
	}
	caller := CanonicalID(claim.UserID)
	return caller != "" && caller == CanonicalID(ownerID)
}

// CheckPermissions is CanAccess for handlers: a deny becomes a 403.
func CheckPermissions(claim domain.Claim, ownerID any) error {
	if !CanAccess(claim, ownerID) {
		return apperrors.NewForbidden(msgNotAuthorized)
	}
	return nil
}

// CanonicalID renders an identifier in a form comparable across representations.
// Anything that parses as a UUID becomes its lowercase hyphenated form; other
// strings are compared trimmed. Unset or unsupported values yield "".
func CanonicalID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return canonicalString(id)
	case uuid.UUID:
		return canonicalUUID(id)
	case *uuid.UUID:
		if id == nil {
			return ""
		}
		return canonicalUUID(*id)
	case pgtype.UUID:
		if !id.Valid {
			return ""
		}
		return canonicalUUID(id.Bytes)
	case [16]byte:
		return canonicalUUID(id)
	case fmt.Stringer:
		return canonicalString(id.String())
	default:
		return ""
	}
}

func canonicalString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if id, err := uuid.Parse(s); err == nil {
		return canonicalUUID(id)
	}
	return s
}

func canonicalUUID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
