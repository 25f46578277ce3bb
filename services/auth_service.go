package services

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rleomotos-api/models"
)

type AuthService struct {
	db     *gorm.DB
	users  *UserService
	tokens *TokenService
}

func NewAuthService(db *gorm.DB, users *UserService, tokens *TokenService) *AuthService {
	return &AuthService{db: db, users: users, tokens: tokens}
}

// RequestMeta is recorded alongside each issued refresh token.
type RequestMeta struct {
	UserAgent string
	IP        string
}

type AuthResult struct {
	User   *models.User `json:"user"`
	Tokens *TokenPair   `json:"tokens"`
}

// Register creates an account with the client role and returns a fresh
// token pair.
func (s *AuthService) Register(name, email, password string, storeID *uint, meta RequestMeta) (*AuthResult, error) {
	_, err := s.users.Create(UserInput{
		Name:     name,
		Email:    email,
		Password: password,
		StoreID:  storeID,
		Roles:    []string{"client"},
	}, nil)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, BadRequest("Could not register user")
	}
	return s.buildAuthResult(user, meta)
}

// Login authenticates by email/password. Every failure collapses to the
// same Unauthorized so callers cannot enumerate accounts.
func (s *AuthService) Login(email, password string, meta RequestMeta) (*AuthResult, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, Unauthorized("Invalid credentials")
	}
	if user.Status == models.UserStatusInactive {
		return nil, Unauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, Unauthorized("Invalid credentials")
	}

	now := time.Now()
	if err := s.db.Model(user).Update("last_login_at", now).Error; err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	return s.buildAuthResult(user, meta)
}

// Refresh rotates a refresh token: the presented token is matched against
// the user's stored non-revoked hashes, the match is revoked and a new pair
// issued. A refresh token is therefore single-use.
func (s *AuthService) Refresh(refreshToken string, meta RequestMeta) (*AuthResult, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, Unauthorized("Invalid refresh token")
	}

	user, err := s.users.FindByEmail(claims.Email)
	if err != nil || user.Status == models.UserStatusInactive {
		return nil, Unauthorized("Invalid refresh token")
	}

	matched, err := s.matchStoredToken(user.ID, refreshToken, true)
	if err != nil {
		return nil, err
	}
	if matched == nil {
		return nil, Unauthorized("Refresh token invalid or expired")
	}

	if err := s.revoke(matched); err != nil {
		return nil, err
	}
	return s.buildAuthResult(user, meta)
}

// Logout revokes the presented refresh token for the user.
func (s *AuthService) Logout(userID uint, refreshToken string) error {
	matched, err := s.matchStoredToken(userID, refreshToken, false)
	if err != nil {
		return err
	}
	if matched == nil {
		return NotFound("Refresh token not found")
	}
	return s.revoke(matched)
}

// matchStoredToken scans the user's non-revoked refresh-token records for
// one whose stored hash matches the presented token. When checkExpiry is
// set, expired rows are skipped.
func (s *AuthService) matchStoredToken(userID uint, refreshToken string, checkExpiry bool) (*models.RefreshToken, error) {
	var stored []models.RefreshToken
	err := s.db.Where("user_id = ? AND revoked_at IS NULL", userID).Find(&stored).Error
	if err != nil {
		return nil, err
	}

	digest := hashToken(refreshToken)
	now := time.Now()
	for i := range stored {
		if stored[i].TokenHash != digest {
			continue
		}
		if checkExpiry && !stored[i].Usable(now) {
			continue
		}
		return &stored[i], nil
	}
	return nil, nil
}

func (s *AuthService) revoke(token *models.RefreshToken) error {
	now := time.Now()
	return s.db.Model(token).Update("revoked_at", now).Error
}

func (s *AuthService) buildAuthResult(user *models.User, meta RequestMeta) (*AuthResult, error) {
	// Prefer loaded role associations; a user created moments ago may not
	// have them, so fall back to a fresh lookup.
	roles := user.RoleNames()
	if len(roles) == 0 {
		fresh, err := s.users.FindOne(user.ID)
		if err != nil {
			return nil, err
		}
		roles = fresh.RoleNames()
	}

	pair, err := s.tokens.IssuePair(user, roles)
	if err != nil {
		return nil, err
	}

	record := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(pair.RefreshToken),
		ExpiresAt: time.Now().Add(s.tokens.RefreshTTL()),
	}
	if meta.UserAgent != "" {
		record.UserAgent = &meta.UserAgent
	}
	if meta.IP != "" {
		record.IP = &meta.IP
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Tokens: pair}, nil
}

// hashToken returns the hex SHA-256 digest persisted instead of the token
// itself. bcrypt caps input at 72 bytes, far below a signed JWT's length.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
