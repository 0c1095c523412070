package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/secretstore/internal/audit/domain"
	auditUseCase "github.com/allisson/secretstore/internal/audit/usecase"
	authDomain "github.com/allisson/secretstore/internal/auth/domain"
	authService "github.com/allisson/secretstore/internal/auth/service"
	apperrors "github.com/allisson/secretstore/internal/errors"
	"github.com/allisson/secretstore/internal/readonly"
	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
)

// guardedSecretUseCase decorates SecretUseCase with the request gates:
// authorization first, then the read-only gate for mutating operations, then
// the underlying operation, then masked audit submission off the critical
// path. Value reads are audited; metadata reads and listings are authorized
// but not audited.
type guardedSecretUseCase struct {
	next        SecretUseCase
	authorizer  authService.Authorizer
	guard       *readonly.Guard
	auditLogger auditUseCase.AuditLogger
}

// NewGuardedSecretUseCase wraps a SecretUseCase with authorization, read-only
// gating and audit recording.
func NewGuardedSecretUseCase(
	next SecretUseCase,
	authorizer authService.Authorizer,
	guard *readonly.Guard,
	auditLogger auditUseCase.AuditLogger,
) SecretUseCase {
	return &guardedSecretUseCase{
		next:        next,
		authorizer:  authorizer,
		guard:       guard,
		auditLogger: auditLogger,
	}
}

// gate runs the authorization and read-only checks shared by every operation.
func (g *guardedSecretUseCase) gate(
	ctx context.Context,
	projectID uuid.UUID,
	action auditDomain.Action,
	mutating bool,
) (authDomain.Principal, error) {
	principal, ok := authDomain.GetPrincipal(ctx)
	if !ok {
		return authDomain.Principal{}, apperrors.Wrap(apperrors.ErrUnauthorized, "no principal in context")
	}
	if err := g.authorizer.Authorize(principal, projectID.String(), string(action)); err != nil {
		return principal, err
	}
	if mutating {
		if err := g.guard.Check(true, false); err != nil {
			return principal, err
		}
	}
	return principal, nil
}

// audit submits a masked entry describing the attempt and its outcome. The
// operation's own result never depends on the audit write.
func (g *guardedSecretUseCase) audit(
	ctx context.Context,
	principal authDomain.Principal,
	action auditDomain.Action,
	projectID uuid.UUID,
	secretName string,
	err error,
	fields ...auditDomain.Field,
) {
	status := auditDomain.StatusSuccess
	if err != nil {
		status = auditDomain.StatusFailure
	}
	g.auditLogger.Log(auditDomain.NewEntry(
		auditDomain.GetRequestID(ctx),
		action,
		status,
		principal.Name,
		principal.Actor,
		projectID,
		secretName,
		fields...,
	))
}

// Create gates and audits secret creation. The private part is flagged
// sensitive so only the masked placeholder reaches the audit trail.
func (g *guardedSecretUseCase) Create(ctx context.Context, input *CreateSecretInput) (*secretsDomain.Secret, error) {
	principal, err := g.gate(ctx, input.ProjectID, auditDomain.ActionCreateSecret, true)
	if err != nil {
		return nil, err
	}

	secret, err := g.next.Create(ctx, input)
	g.audit(ctx, principal, auditDomain.ActionCreateSecret, input.ProjectID, input.Name, err,
		auditDomain.Field{Key: "provider", Value: input.Provider},
		auditDomain.Field{Key: "publicPart", Value: input.PublicPart},
		auditDomain.Field{Key: "privatePart", Value: input.PrivatePart, Sensitive: true},
	)
	return secret, err
}

// AddVersion gates and audits version upgrades.
func (g *guardedSecretUseCase) AddVersion(
	ctx context.Context,
	projectID uuid.UUID,
	name, publicPart string,
	privatePart []byte,
) (int64, error) {
	principal, err := g.gate(ctx, projectID, auditDomain.ActionUpgradeSecretData, true)
	if err != nil {
		return 0, err
	}

	newVersion, err := g.next.AddVersion(ctx, projectID, name, publicPart, privatePart)
	g.audit(ctx, principal, auditDomain.ActionUpgradeSecretData, projectID, name, err,
		auditDomain.Field{Key: "publicPart", Value: publicPart},
		auditDomain.Field{Key: "privatePart", Value: privatePart, Sensitive: true},
		auditDomain.Field{Key: "newVersion", Value: newVersion},
	)
	return newVersion, err
}

// GetValue gates and audits value reads. Reads skip the read-only gate.
func (g *guardedSecretUseCase) GetValue(
	ctx context.Context,
	projectID uuid.UUID,
	name string,
	version *int64,
) (*SecretValue, error) {
	principal, err := g.gate(ctx, projectID, auditDomain.ActionReadSecret, false)
	if err != nil {
		return nil, err
	}

	value, err := g.next.GetValue(ctx, projectID, name, version)
	var readVersion int64
	if value != nil {
		readVersion = value.DataVersion
	}
	g.audit(ctx, principal, auditDomain.ActionReadSecret, projectID, name, err,
		auditDomain.Field{Key: "dataVersion", Value: readVersion},
	)
	return value, err
}

// GetMetadata gates metadata reads. Not audited: no payload is touched.
func (g *guardedSecretUseCase) GetMetadata(
	ctx context.Context,
	projectID uuid.UUID,
	name string,
) (*secretsDomain.Secret, error) {
	if _, err := g.gate(ctx, projectID, auditDomain.ActionReadSecret, false); err != nil {
		return nil, err
	}
	return g.next.GetMetadata(ctx, projectID, name)
}

// Delete gates and audits secret deletion.
func (g *guardedSecretUseCase) Delete(ctx context.Context, projectID uuid.UUID, name string) error {
	principal, err := g.gate(ctx, projectID, auditDomain.ActionDeleteSecret, true)
	if err != nil {
		return err
	}

	err = g.next.Delete(ctx, projectID, name)
	g.audit(ctx, principal, auditDomain.ActionDeleteSecret, projectID, name, err)
	return err
}

// List gates listings. Not audited: summaries carry no payload.
func (g *guardedSecretUseCase) List(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	if _, err := g.gate(ctx, projectID, auditDomain.ActionReadSecret, false); err != nil {
		return nil, err
	}
	return g.next.List(ctx, projectID, offset, limit)
}
