package application

import (
	"context"

	"github.com/oksasatya/vendor-vault/internal/domain/entity"
	"github.com/oksasatya/vendor-vault/pkg/apperror"
)

// Operation names, also used as metric labels.
const (
	OpAdminCreatesAccount     = "admin_creates_account"
	OpAdminSearchesAccounts   = "admin_searches_accounts"
	OpSelfReadsProfile        = "self_reads_profile"
	OpVendorReadsOwnProfile   = "vendor_reads_own_profile"
	OpVendorUpdatesOwnProfile = "vendor_updates_own_profile"
	OpVendorUploadsRecord     = "vendor_uploads_record"
	OpVendorListsRecords      = "vendor_lists_records"
	OpVendorReadsRecord       = "vendor_reads_record"
	OpVendorDeletesRecord     = "vendor_deletes_record"
)

var operationRoles = map[string][]entity.Role{
	OpAdminCreatesAccount:     {entity.RoleAdmin},
	OpAdminSearchesAccounts:   {entity.RoleAdmin},
	OpSelfReadsProfile:        entity.AllRoles(),
	OpVendorReadsOwnProfile:   {entity.RoleVendor},
	OpVendorUpdatesOwnProfile: {entity.RoleVendor},
	OpVendorUploadsRecord:     {entity.RoleVendor},
	OpVendorListsRecords:      {entity.RoleVendor},
	OpVendorReadsRecord:       {entity.RoleVendor},
	OpVendorDeletesRecord:     {entity.RoleVendor},
}

// OperationRoles returns the roles accepted by op, or nil for an unknown op.
func OperationRoles(op string) []entity.Role {
	roles := operationRoles[op]
	if roles == nil {
		return nil
	}
	return append([]entity.Role(nil), roles...)
}

// AccessController runs every boundary operation through the same stages:
// authenticate, authorize, decode and validate, then storage. The first stage
// that fails decides the error kind.
type AccessController struct {
	Authorizer RoleAuthorizer
	Accounts   *AccountService
	Records    *RecordService
	Observer   AccessObserver
}

func NewAccessController(accounts *AccountService, records *RecordService, observer AccessObserver) *AccessController {
	return &AccessController{Accounts: accounts, Records: records, Observer: observer}
}

func (c *AccessController) AdminCreatesAccount(ctx context.Context, p *entity.Principal, body Payload) (*entity.Account, error) {
	const op = OpAdminCreatesAccount
	if err := c.admit(op, p); err != nil {
		return nil, c.done(op, err)
	}
	var in NewAccountInput
	if err := decode(body, &in); err != nil {
		return nil, c.done(op, err)
	}
	a, err := c.Accounts.CreateAccount(ctx, in)
	return a, c.done(op, err)
}

func (c *AccessController) AdminSearchesAccounts(ctx context.Context, p *entity.Principal, query string, size int) ([]map[string]any, error) {
	const op = OpAdminSearchesAccounts
	if err := c.admit(op, p); err != nil {
		return nil, c.done(op, err)
	}
	hits, err := c.Accounts.SearchAccounts(ctx, query, size)
	return hits, c.done(op, err)
}

// SelfReadsProfile is open to any authenticated role.
func (c *AccessController) SelfReadsProfile(ctx context.Context, p *entity.Principal) (*entity.Account, error) {
	const op = OpSelfReadsProfile
	if err := c.admit(op, p); err != nil {
		return nil, c.done(op, err)
	}
	a, err := c.Accounts.GetAccount(ctx, p.ID)
	return a, c.done(op, err)
}

func (c *AccessController) VendorReadsOwnProfile(ctx context.Context, p *entity.Principal) (*entity.Account, error) {
	const op = OpVendorReadsOwnProfile
	if err := c.admit(op, p); err != nil {
		return nil, c.done(op, err)
	}
	a, err := c.Accounts.GetAccount(ctx, p.ID)
	return a, c.done(op, err)
}

func (c *AccessController) VendorUpdatesOwnProfile(ctx context.Context, p *entity.Principal, body Payload) (*entity.Account, error) {
	const op = OpVendorUpdatesOwnProfile
	if err := c.admit(op, p); err != nil {
		return nil, c.done(op, err)
	}
	var patch AccountPatch
	if err := decode(body, &patch); err != nil {
		return nil, c.done(op, err)
	}
	a, err := c.Accounts.UpdateAccount(ctx, p.ID, patch)
	return a, c.done(op, err)
}

func (c *AccessController) VendorUploadsRecord(ctx context.Context, p *entity.Principal, body Payload) (*entity.PersonalRecord, error) {
	const op = OpVendorUploadsRecord
	if err := c.admit(op, p); err != nil {
		return nil, c.done(op, err)
	}
	var in NewRecordInput
	if err := decode(body, &in); err != nil {
		return nil, c.done(op, err)
	}
	r, err := c.Records.CreateRecord(ctx, p.ID, in)
	return r, c.done(op, err)
}

func (c *AccessController) VendorListsRecords(ctx context.Context, p *entity.Principal, includeData bool) ([]entity.PersonalRecord, error) {
	const op = OpVendorListsRecords
	if err := c.admit(op, p); err != nil {
		return nil, c.done(op, err)
	}
	out, err := c.Records.ListRecords(ctx, p.ID, includeData)
	return out, c.done(op, err)
}

func (c *AccessController) VendorReadsRecord(ctx context.Context, p *entity.Principal, recordID string) (*entity.PersonalRecord, error) {
	const op = OpVendorReadsRecord
	if err := c.admit(op, p); err != nil {
		return nil, c.done(op, err)
	}
	r, err := c.Records.GetRecord(ctx, p.ID, recordID)
	return r, c.done(op, err)
}

func (c *AccessController) VendorDeletesRecord(ctx context.Context, p *entity.Principal, recordID string) (entity.Acknowledgement, error) {
	const op = OpVendorDeletesRecord
	if err := c.admit(op, p); err != nil {
		return entity.Acknowledgement{}, c.done(op, err)
	}
	ack, err := c.Records.DeleteRecord(ctx, p.ID, recordID)
	return ack, c.done(op, err)
}

func (c *AccessController) admit(op string, p *entity.Principal) error {
	if p == nil || p.ID == "" {
		return apperror.New(apperror.Unauthenticated, "authentication required")
	}
	err := c.Authorizer.Authorize(p, operationRoles[op]...)
	if c.Observer != nil {
		c.Observer.ObserveDecision(op, err == nil)
	}
	return err
}

func (c *AccessController) done(op string, err error) error {
	if c.Observer != nil {
		outcome := "ok"
		if err != nil {
			outcome = apperror.KindOf(err).String()
		}
		c.Observer.ObserveOutcome(op, outcome)
	}
	return err
}

func decode(body Payload, dst any) error {
	if body == nil {
		return apperror.Invalid("invalid payload", map[string]string{"payload": "is required"})
	}
	return body.Decode(dst)
}
