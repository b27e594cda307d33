package middleware

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/LavaJover/shvark-mpesa-service/internal/delivery/http/dto/payment/response"
	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
)

type userIDKey struct{}

// Authenticate accepts personal access tokens of the form "<id>|<plaintext>".
// The stored value is the hex SHA-256 of the plaintext.
func Authenticate(tokens domain.AccessTokenRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := authenticate(r, tokens)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthenticated) {
					slog.Error("token lookup failed", "error", err.Error(), "request_id", RequestIDFromContext(r.Context()))
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(response.Fail("Unauthenticated"))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey{}, userID)))
		})
	}
}

func authenticate(r *http.Request, tokens domain.AccessTokenRepository) (int64, error) {
	header := r.Header.Get("Authorization")
	bearer, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return 0, domain.ErrUnauthenticated
	}

	idPart, plaintext, ok := strings.Cut(strings.TrimSpace(bearer), "|")
	if !ok || plaintext == "" {
		return 0, domain.ErrUnauthenticated
	}
	tokenID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthenticated
	}

	token, err := tokens.GetTokenByID(r.Context(), tokenID)
	if err != nil {
		return 0, err
	}

	sum := sha256.Sum256([]byte(plaintext))
	if subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(token.TokenHash)) != 1 {
		return 0, domain.ErrUnauthenticated
	}
	return token.UserID, nil
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}
