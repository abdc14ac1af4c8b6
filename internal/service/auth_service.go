package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ngektech/patangenotes.in/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// dummyHash keeps the unknown-email path as expensive as a real bcrypt
// comparison, so login timing does not reveal which emails exist.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AdminIdentity is the verified identity carried through admin requests.
type AdminIdentity struct {
	Email string
}

// AuthService verifies the admin credential and issues self-verifying
// bearer tokens. Tokens are stateless: there is no session table and no
// revocation before expiry.
type AuthService struct {
	db       *gorm.DB
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates an AuthService instance.
func NewAuthService(gdb *gorm.DB, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{db: gdb, secret: []byte(secret), tokenTTL: tokenTTL}
}

// VerifyCredentials checks an email/password pair against the stored
// admin account. Unknown email and wrong password are indistinguishable
// to the caller.
func (s *AuthService) VerifyCredentials(email, password string) (*AdminIdentity, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	var admin db.Admin
	if err := s.db.Where("email = ?", normalized).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &AdminIdentity{Email: admin.Email}, nil
}

// IssueToken signs an HS256 token for the identity, valid for the
// configured window from now.
func (s *AuthService) IssueToken(identity AdminIdentity) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   identity.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken checks the signature and expiry of a bearer token and
// returns the identity it was issued to.
func (s *AuthService) VerifyToken(tokenString string) (*AdminIdentity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return &AdminIdentity{Email: claims.Subject}, nil
}
