package application

import (
	"github.com/oksasatya/vendor-vault/internal/domain/entity"
	"github.com/oksasatya/vendor-vault/pkg/apperror"
)

// RoleAuthorizer allows a principal when its roles intersect the required set.
// It has no state and no side effects.
type RoleAuthorizer struct{}

// Authorize returns nil on allow. A deny carries no detail about which roles
// would have been accepted.
func (RoleAuthorizer) Authorize(p *entity.Principal, required ...entity.Role) error {
	if len(required) == 0 || !p.HasAny(required...) {
		return apperror.New(apperror.Forbidden, "forbidden")
	}
	return nil
}
