package auth

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const ticketIssuer = "mindengage-quiz"

var ErrBadTicket = errors.New("invalid quiz ticket")

// TicketService issues and verifies quiz tickets: HS256 tokens listing the
// question ids drawn for one quiz, so a submission can only be scored
// against the questions that were actually served. Tickets are not
// single-use: one may be submitted any number of times until it expires.
// Each carries a random id (jti) that is logged for correlation only.
type TicketService struct {
	hmac []byte
	ttl  time.Duration
}

func NewTicketService(secret string, ttl time.Duration) *TicketService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &TicketService{hmac: []byte(secret), ttl: ttl}
}

type Claims struct {
	QuestionIDs []int `json:"qids"`
	jwt.RegisteredClaims
}

func (a *TicketService) Issue(questionIDs []int) (string, error) {
	now := time.Now()
	claims := &Claims{
		QuestionIDs: questionIDs,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    ticketIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

func (a *TicketService) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ticketIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Join(ErrBadTicket, err)
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrBadTicket
	}
	return c, nil
}

// TicketMiddleware verifies a bearer ticket when one is sent and stores its
// claims in the request context. With required set, requests without a
// ticket are rejected. A nil service disables tickets entirely.
func TicketMiddleware(a *TicketService, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if a == nil {
				next.ServeHTTP(w, r)
				return
			}
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				if required {
					http.Error(w, "missing ticket", http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			claims, err := a.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "bad ticket", http.StatusUnauthorized)
				return
			}
			slog.Debug("quiz ticket accepted", "ticket_id", claims.ID, "questions", claims.QuestionIDs)
			next.ServeHTTP(w, r.WithContext(WithTicket(r.Context(), claims)))
		})
	}
}

// AdminGuard protects operator endpoints with HTTP basic auth checked
// against a bcrypt hash.
func AdminGuard(user, passHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			if !ok ||
				subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 ||
				bcrypt.CompareHashAndPassword([]byte(passHash), []byte(p)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="quiz-admin"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// HashPassword produces a value suitable for ADMIN_PASS_HASH.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(b), err
}
