package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophqa/internal/common"
	"github.com/dmitrijs2005/gophqa/internal/server/models"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/repomanager"
)

// ResourceKind selects the table an ownership check reads.
type ResourceKind int

const (
	ResourceQuestion ResourceKind = iota + 1
	ResourceAnswer
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceQuestion:
		return "question"
	case ResourceAnswer:
		return "answer"
	default:
		return fmt.Sprintf("resource(%d)", int(k))
	}
}

// OwnershipAuthorizer reads the owner of a resource on every call.
type OwnershipAuthorizer struct {
	repos repomanager.Repositories
}

func NewOwnershipAuthorizer(r repomanager.Repositories) *OwnershipAuthorizer {
	return &OwnershipAuthorizer{repos: r}
}

// Lookup reports whether the resource exists and whether account owns it.
// Data-layer failures other than a missing row are returned as is.
func (a *OwnershipAuthorizer) Lookup(ctx context.Context, kind ResourceKind, id int64, account models.AccountID) (exists, owned bool, err error) {
	var owner models.AccountID
	switch kind {
	case ResourceQuestion:
		owner, err = a.repos.Questions().Owner(ctx, id)
	case ResourceAnswer:
		owner, err = a.repos.Answers().Owner(ctx, id)
	default:
		return false, false, fmt.Errorf("unknown resource kind %v", kind)
	}
	if errors.Is(err, common.ErrorNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return true, owner == account, nil
}

// IsOwner is Lookup without the existence bit: a missing resource is not owned.
func (a *OwnershipAuthorizer) IsOwner(ctx context.Context, kind ResourceKind, id int64, account models.AccountID) (bool, error) {
	_, owned, err := a.Lookup(ctx, kind, id, account)
	return owned, err
}

// authorize maps a Lookup result onto the service taxonomy.
func (a *OwnershipAuthorizer) authorize(ctx context.Context, op string, kind ResourceKind, id int64, account models.AccountID) error {
	exists, owned, err := a.Lookup(ctx, kind, id, account)
	switch {
	case err != nil:
		return newError(op, KindUpstream, err)
	case !exists:
		return newError(op, KindNotFound, fmt.Errorf("%v %d: %w", kind, id, common.ErrorNotFound))
	case !owned:
		return newError(op, KindForbidden, fmt.Errorf("%v %d is owned by another account", kind, id))
	}
	return nil
}
