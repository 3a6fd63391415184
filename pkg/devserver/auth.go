package devserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/sguter90/homenet/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const userContextKey contextKey = "user"

const hashPrefix = "v2:"

// Registration limits
const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
)

// JWTClaims represents the JWT token claims
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateJWT creates a signed access token for a user
func GenerateJWT(user models.User, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := JWTClaims{
		UserID:   user.ID.String(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT validates a token and returns its claims
func ParseJWT(tokenString, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// jwtAuthMiddleware validates bearer tokens and loads the user
func (s *Server) jwtAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		unauthorized := func(detail string) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, detail)
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized("Not authenticated")
			return
		}

		// Extract token from "Bearer <token>"
		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			unauthorized("Invalid authorization header format")
			return
		}

		claims, err := ParseJWT(authHeader[len(prefix):], s.cfg.JWTSecret)
		if err != nil {
			log.Debug().Err(err).Msg("Rejected token")
			unauthorized("Could not validate credentials")
			return
		}

		user, ok := s.store.userByID(models.ID(claims.UserID))
		if !ok {
			unauthorized("Could not validate credentials")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFromContext retrieves the authenticated user
func userFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

// preHash maps passwords of any length into bcrypt's 72 byte input limit
func preHash(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

func hashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(preHash(password)), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hashPrefix + string(hashed), nil
}

func checkPassword(passwordHash, password string) bool {
	if !strings.HasPrefix(passwordHash, hashPrefix) {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(strings.TrimPrefix(passwordHash, hashPrefix)), []byte(preHash(password)))
	return err == nil
}

func validateRegistration(req models.RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return fmt.Errorf("username must be between %d and %d characters", minUsernameLength, maxUsernameLength)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return errors.New("email is not a valid address")
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateRegistration(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	hash, err := hashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user, err := s.store.createUser(strings.TrimSpace(req.Username), req.Email, hash)
	if errors.Is(err, errUsernameTaken) {
		writeError(w, http.StatusBadRequest, "Username already registered")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	log.Info().Str("username", user.Username).Msg("User registered")
	writeJSON(w, http.StatusCreated, user)
}

// handleLogin accepts JSON or form-encoded credentials
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	} else if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, ok := s.store.userByName(req.Username)
	if !ok || !checkPassword(rec.passwordHash, req.Password) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	token, _, err := GenerateJWT(rec.user, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sign token")
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
