package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/common"
)

type ctxKey string

const sessionUserKey ctxKey = "sessionUser"

// requireSession rejects requests without a valid bearer session token and
// stores the session identity in the request context.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, common.MsgUnauthorized)
			return
		}

		user, err := s.sessions.Authenticate(r.Context(), token)
		if err != nil {
			s.logger.Warn(r.Context(), "rejected session token", "error", err)
			writeError(w, http.StatusUnauthorized, common.MsgUnauthorized)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), sessionUserKey, user)))
	}
}

func sessionUser(ctx context.Context) *models.SessionUser {
	u, _ := ctx.Value(sessionUserKey).(*models.SessionUser)
	if u == nil {
		return &models.SessionUser{}
	}
	return u
}
