// Package session emite y valida las credenciales firmadas de los tres tipos
// de principal (cliente, admin de tenant y admin de plataforma).
//
// Cada clase es un namespace de firma independiente: secreto propio, cookie
// propia y TTL propio. Un token emitido para una clase nunca valida contra
// otra, aunque los claims tengan la misma forma: la firma no coincide y además
// el claim "class" se verifica explícitamente.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Class clase de principal. Determina secreto, cookie y TTL.
type Class string

const (
	ClassCustomer      Class = "customer"
	ClassTenantAdmin   Class = "tenant_admin"
	ClassPlatformAdmin Class = "platform_admin"
)

// Roles de los principals administrativos. Los clientes no llevan rol.
const (
	RoleTenantAdmin = "tenant_admin"
	RoleSuperAdmin  = "super_admin"
)

// ErrInvalidSession firma incorrecta, payload malformado, token expirado o clase equivocada.
var ErrInvalidSession = errors.New("sesión inválida o expirada")

// CookieName nombre de la cookie HTTP de la clase.
func (c Class) CookieName() string {
	switch c {
	case ClassTenantAdmin:
		return "tenant_admin_session"
	case ClassPlatformAdmin:
		return "platform_admin_session"
	default:
		return "user_session"
	}
}

// TTL vigencia de la credencial por clase: clientes 7 días, admins 24 horas.
func (c Class) TTL() time.Duration {
	if c == ClassCustomer {
		return 7 * 24 * time.Hour
	}
	return 24 * time.Hour
}

// Claims claims estándar JWT más los campos propios de la sesión.
// TenantID va vacío para admin de plataforma (principal global).
type Claims struct {
	jwt.RegisteredClaims
	Class       Class  `json:"class"`
	PrincipalID string `json:"principal_id"`
	Email       string `json:"email"`
	Role        string `json:"role,omitempty"`
	TenantID    string `json:"tenant_id,omitempty"`
}

// Config secretos de firma inyectados (nunca constantes de paquete).
type Config struct {
	CustomerSecret      string
	TenantAdminSecret   string
	PlatformAdminSecret string
	Issuer              string
}

// Manager emite y valida credenciales. Es puro: no consulta la base de datos.
type Manager struct {
	cfg Config
}

// NewManager construye el manager. Falla si algún secreto está vacío para que
// una mala configuración se detecte en el arranque y no en el primer login.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.CustomerSecret == "" || cfg.TenantAdminSecret == "" || cfg.PlatformAdminSecret == "" {
		return nil, fmt.Errorf("session: los tres secretos de firma son requeridos")
	}
	return &Manager{cfg: cfg}, nil
}

func (m *Manager) secret(class Class) []byte {
	switch class {
	case ClassTenantAdmin:
		return []byte(m.cfg.TenantAdminSecret)
	case ClassPlatformAdmin:
		return []byte(m.cfg.PlatformAdminSecret)
	default:
		return []byte(m.cfg.CustomerSecret)
	}
}

// Issue genera la credencial firmada de la clase. tenantID debe ir vacío solo
// para ClassPlatformAdmin. Devuelve el token y su fecha de expiración.
func (m *Manager) Issue(class Class, principalID, email, role, tenantID string) (string, time.Time, error) {
	if principalID == "" {
		return "", time.Time{}, fmt.Errorf("session: principalID requerido")
	}
	if class != ClassPlatformAdmin && tenantID == "" {
		return "", time.Time{}, fmt.Errorf("session: tenantID requerido para la clase %s", class)
	}
	now := time.Now()
	exp := now.Add(class.TTL())
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Class:       class,
		PrincipalID: principalID,
		Email:       email,
		Role:        role,
		TenantID:    tenantID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret(class))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Validate valida la credencial contra el namespace de la clase y devuelve los
// claims. La validación es puramente criptográfica/estructural: NO verifica
// que el tenant o el principal sigan existiendo; quien necesite esa garantía
// debe re-consultar la base.
func (m *Manager) Validate(class Class, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return m.secret(class), nil
	})
	if err != nil {
		return nil, ErrInvalidSession
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}
	// Defensa extra por si dos clases llegaran a compartir secreto por error de operación.
	if claims.Class != class {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
