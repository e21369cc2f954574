package http

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/worklens/worklens-backend-go/internal/pkg/validator"
)

// requesterEmail extracts the resolved requester identity from the verified
// token claims. The auth middleware has already rejected tokens without one.
func requesterEmail(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", fmt.Errorf("email claim is missing or invalid")
	}
	return validator.NormalizeEmail(email), nil
}
