package middleware

import (
	"context"
	"net/http"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/user"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type branchIDKey struct{}
type userIDKey struct{}

// BranchScope resolves the branch every operational request acts on and
// stores it in the request context. Staff are locked to the branch in their
// token; owners pick one with the X-Branch-ID header (or branch_id query
// parameter) since they may run several branches.
func BranchScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Missing or invalid token")
			return
		}

		ctx := r.Context()
		if userID, ok := claims["user_id"].(string); ok {
			ctx = context.WithValue(ctx, userIDKey{}, userID)
		}

		branchID, _ := claims["branch_id"].(string)

		if role, _ := claims["role"].(string); role == string(user.RoleOwner) {
			if picked := r.Header.Get("X-Branch-ID"); picked != "" {
				branchID = picked
			} else if picked := r.URL.Query().Get("branch_id"); picked != "" {
				branchID = picked
			}
		}

		if branchID == "" {
			response.BadRequest(w, "No branch selected", nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, branchIDKey{}, branchID)))
	})
}

// BranchIDFromContext returns the branch resolved by BranchScope.
func BranchIDFromContext(ctx context.Context) string {
	branchID, _ := ctx.Value(branchIDKey{}).(string)
	return branchID
}

// UserIDFromContext returns the authenticated user's ID, or "".
func UserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey{}).(string); ok {
		return userID
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}
