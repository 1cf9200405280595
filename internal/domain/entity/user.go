package entity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/b2b-portal-api/internal/domain"
)

// Role conjunto cerrado de roles. En el transporte viaja como string.
type Role string

// Roles válidos para User.
const (
	RoleAdmin Role = "Admin"
	RoleSales Role = "Sales"
	RoleBuyer Role = "Buyer"
)

// Roles lista ordenada de todos los roles.
var Roles = []Role{RoleAdmin, RoleSales, RoleBuyer}

// ParseRole valida un rol recibido del exterior. Distingue mayúsculas, igual que el wire format.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidRole, s)
}

func (r Role) String() string { return string(r) }

// User usuario del sistema; pertenece a exactamente una Company.
type User struct {
	ID           string
	CompanyID    string
	Email        string // en minúsculas, único en todo el sistema
	Mobile       string // normalizado, único en todo el sistema
	PasswordHash string // bcrypt; el texto plano nunca llega a persistencia
	Name         string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// NormalizeEmail recorta y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeMobile elimina espacios y valida 10–15 dígitos con '+' opcional.
// El valor devuelto son solo dígitos: "+5551234567" y "5551234567" son el mismo móvil.
func NormalizeMobile(mobile string) (string, error) {
	m := strings.Join(strings.Fields(mobile), "")
	if !mobilePattern.MatchString(m) {
		return "", domain.ErrInvalidMobile
	}
	return strings.TrimPrefix(m, "+"), nil
}

// NormalizeLoginIdentifier forma canónica de un identificador de login: email
// normalizado o móvil en dígitos. Si no es ninguno de los dos se recorta y pasa a minúsculas.
func NormalizeLoginIdentifier(identifier string) string {
	if LooksLikeEmail(identifier) {
		return NormalizeEmail(identifier)
	}
	if m, err := NormalizeMobile(identifier); err == nil {
		return m
	}
	return strings.ToLower(strings.TrimSpace(identifier))
}

// LooksLikeEmail decide si un identificador de login es un email; si no, se trata como móvil.
func LooksLikeEmail(identifier string) bool {
	return strings.Contains(identifier, "@")
}
