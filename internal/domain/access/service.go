package access

import (
	"context"

	"github.com/worklens/worklens-backend-go/internal/domain/directory"
)

// Resolver derives the visibility set for a requester.
type Resolver interface {
	// Resolve computes the access context for the requester email against the
	// current directory snapshot. An unknown requester degrades to self-only
	// visibility; it is not an error.
	Resolve(ctx context.Context, requesterEmail string) (Context, error)

	// ResolveSnapshot computes the access context against a snapshot the
	// caller already holds, so a report reads the same directory state it
	// resolved access from.
	ResolveSnapshot(idx *directory.Index, requesterEmail string) Context
}
