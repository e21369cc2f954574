package access

import (
	"context"
	"log/slog"

	"github.com/worklens/worklens-backend-go/internal/domain/access"
	"github.com/worklens/worklens-backend-go/internal/domain/directory"
	"github.com/worklens/worklens-backend-go/internal/pkg/validator"
)

type ResolverImpl struct {
	directoryService directory.Service
	hrAdmins         map[string]struct{}
}

// NewResolver builds an access resolver over the given directory service.
// The HR-admin allowlist is injected so tests and deployments can vary it.
func NewResolver(directoryService directory.Service, hrAdminEmails []string) access.Resolver {
	admins := make(map[string]struct{}, len(hrAdminEmails))
	for _, email := range hrAdminEmails {
		admins[validator.NormalizeEmail(email)] = struct{}{}
	}
	return &ResolverImpl{
		directoryService: directoryService,
		hrAdmins:         admins,
	}
}

func (r *ResolverImpl) Resolve(ctx context.Context, requesterEmail string) (access.Context, error) {
	idx, err := r.directoryService.Snapshot(ctx)
	if err != nil {
		return access.Context{}, err
	}

	return r.ResolveSnapshot(idx, requesterEmail), nil
}

func (r *ResolverImpl) ResolveSnapshot(idx *directory.Index, requesterEmail string) access.Context {
	resolved, cycleDetected := ResolveAccess(requesterEmail, idx, r.hrAdmins)
	if cycleDetected {
		// Data-quality signal, not a failure: the requester still gets the
		// (truncated) visibility set collected before the cycle closed.
		slog.Warn("cycle detected in reporting structure",
			"requester", resolved.RequesterEmail)
	}
	return resolved
}

// ResolveAccess derives the visibility set for a requester from a directory
// snapshot. Pure: depends only on its arguments. The second return reports
// whether the supervisor graph closed a cycle during traversal.
func ResolveAccess(requesterEmail string, idx *directory.Index, hrAdmins map[string]struct{}) (access.Context, bool) {
	email := validator.NormalizeEmail(requesterEmail)

	if _, ok := hrAdmins[email]; ok {
		resolved := access.NewContext(email, idx.ActiveEmails())
		resolved.IsHRAdmin = true
		if requester, found := idx.ByEmail(email); found {
			// Visibility is already org-wide; the walk only fills in the
			// admin's own managerial context.
			_, directCount, totalCount, cycleDetected := collectReports(idx, requester.ID)
			resolved.DirectReportCount = directCount
			resolved.TotalReportCount = totalCount
			resolved.IsManager = directCount > 0
			return resolved, cycleDetected
		}
		return resolved, false
	}

	requester, found := idx.ByEmail(email)
	if !found {
		// Self-only visibility: the requester's own warehouse records are
		// addressable even without a directory entry (e.g. a contractor).
		return access.NewContext(email, nil), false
	}

	emails, directCount, totalCount, cycleDetected := collectReports(idx, requester.ID)

	resolved := access.NewContext(email, emails)
	resolved.IsManager = directCount > 0
	resolved.DirectReportCount = directCount
	resolved.TotalReportCount = totalCount
	return resolved, cycleDetected
}

// collectReports walks the direct-report adjacency breadth-first from the
// given root. The visited set is a hard requirement: the source system does
// not guarantee an acyclic supervisor graph, and a malformed chain must
// terminate instead of hanging the resolver.
func collectReports(idx *directory.Index, rootID string) (emails []string, directCount, totalCount int, cycleDetected bool) {
	visited := map[string]struct{}{rootID: {}}

	direct := idx.DirectReportsOf(rootID)
	directCount = len(direct)

	queue := make([]directory.Employee, 0, len(direct))
	queue = append(queue, direct...)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if _, seen := visited[current.ID]; seen {
			cycleDetected = true
			continue
		}
		visited[current.ID] = struct{}{}
		totalCount++

		if current.HasResolvableEmail() {
			emails = append(emails, validator.NormalizeEmail(current.Email))
		}

		queue = append(queue, idx.DirectReportsOf(current.ID)...)
	}

	return emails, directCount, totalCount, cycleDetected
}
