package jwt

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenLifetime vigencia fija de un token de sesión. No se renueva sin re-autenticación.
const TokenLifetime = 7 * 24 * time.Hour

// Errores de verificación. Cualquiera de ellos implica rechazo total del token.
var (
	ErrMalformed        = errors.New("jwt: token mal formado")
	ErrInvalidSignature = errors.New("jwt: firma inválida")
	ErrExpired          = errors.New("jwt: token expirado")
	ErrNoSigningKey     = errors.New("jwt: no hay clave de firma configurada")
)

// Claims incluye los claims estándar JWT más rol y tenant.
// El sub (RegisteredClaims.Subject) es el ID del usuario.
type Claims struct {
	jwt.RegisteredClaims
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
}

// Subject datos de identidad que se firman en el token.
type Subject struct {
	UserID   string
	TenantID string
	Role     string
}

type signingKey struct {
	id     string
	secret []byte
}

// Service emite y verifica tokens HS256.
// keys[0] firma; el resto solo verifica tokens emitidos antes de una rotación.
type Service struct {
	keys   []signingKey
	issuer string
	now    func() time.Time
}

// Option configura el Service.
type Option func(*Service)

// WithClock reemplaza el reloj (tests de expiración).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService construye el servicio con las claves ordenadas de la más nueva a la más antigua.
// Un anillo vacío o con claves vacías es un error de configuración (fatal en arranque).
func NewService(secrets []string, issuer string, opts ...Option) (*Service, error) {
	if len(secrets) == 0 {
		return nil, ErrNoSigningKey
	}
	s := &Service{issuer: issuer, now: time.Now}
	for i, secret := range secrets {
		if secret == "" {
			return nil, fmt.Errorf("%w: clave %d vacía", ErrNoSigningKey, i)
		}
		s.keys = append(s.keys, signingKey{id: keyID(secret), secret: []byte(secret)})
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// keyID deriva un identificador público y estable de la clave (header kid).
func keyID(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:4])
}

// Issue firma un token para el sujeto con iat=ahora y exp=ahora+7d.
func (s *Service) Issue(sub Subject) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(TokenLifetime)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
		Role:     sub.Role,
		TenantID: sub.TenantID,
	}
	key := s.keys[0]
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = key.id
	signed, err := token.SignedString(key.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Verify comprueba firma y luego expiración, y devuelve los claims.
// Errores: ErrMalformed, ErrInvalidSignature o ErrExpired (envueltos).
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMalformed
	}
	if err := checkSignatureEncoding(tokenString); err != nil {
		return nil, err
	}
	parser := s.parser()

	var lastErr error
	for _, key := range s.candidateKeys(tokenString) {
		claims := &Claims{}
		_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return key.secret, nil
		})
		if err == nil {
			if claims.Subject == "" || claims.TenantID == "" || claims.Role == "" || claims.IssuedAt == nil {
				return nil, fmt.Errorf("%w: faltan claims obligatorios", ErrMalformed)
			}
			return claims, nil
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			lastErr = err
			continue
		}
		return nil, classify(err)
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, lastErr)
}

func (s *Service) parser() *jwt.Parser {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	return jwt.NewParser(opts...)
}

// candidateKeys pone primero la clave indicada por el kid del header (si existe).
// Un kid desconocido no descarta las demás: la firma decide.
func (s *Service) candidateKeys(tokenString string) []signingKey {
	unverified, _, err := jwt.NewParser().ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return s.keys
	}
	kid, _ := unverified.Header["kid"].(string)
	if kid == "" {
		return s.keys
	}
	ordered := make([]signingKey, 0, len(s.keys))
	for _, k := range s.keys {
		if k.id == kid {
			ordered = append(ordered, k)
		}
	}
	for _, k := range s.keys {
		if k.id != kid {
			ordered = append(ordered, k)
		}
	}
	return ordered
}

// checkSignatureEncoding: si cabecera y claims decodifican, una firma que no es
// base64url estricto (bits de relleno incluidos) es ErrInvalidSignature.
func checkSignatureEncoding(tokenString string) error {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil
	}
	enc := base64.RawURLEncoding.Strict()
	for _, part := range parts[:2] {
		if _, err := enc.DecodeString(part); err != nil {
			return nil
		}
	}
	if _, err := enc.DecodeString(parts[2]); err != nil {
		return fmt.Errorf("%w: firma no decodificable: %v", ErrInvalidSignature, err)
	}
	return nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
