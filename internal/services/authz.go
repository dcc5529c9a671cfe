package services

import (
	"context"

	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/requestdata"
	"github.com/teamtempo/engage-backend/internal/types"
)

// Capability names one guarded operation. The role-to-capability table below
// is the whole permission model; a role not listed for a capability is denied.
type Capability string

const (
	CapRecordAnswer  Capability = "record_answer"
	CapReflect       Capability = "reflect"
	CapViewCharts    Capability = "view_charts"
	CapManageCatalog Capability = "manage_catalog"
	CapCreateSession Capability = "create_session"
)

var roleCapabilities = map[types.Role]map[Capability]bool{
	types.RoleEmployee: {
		CapRecordAnswer: true,
		CapReflect:      true,
	},
	types.RoleEmployer: {
		CapRecordAnswer: true,
		CapReflect:      true,
		CapViewCharts:   true,
	},
	types.RoleManagement: {
		CapViewCharts:    true,
		CapCreateSession: true,
	},
	types.RoleAdmin: {
		CapRecordAnswer:  true,
		CapReflect:       true,
		CapViewCharts:    true,
		CapManageCatalog: true,
		CapCreateSession: true,
	},
}

// AuthzService is the permission gate. It only reads the request context;
// callers are responsible for having run SetContextFromToken first.
type AuthzService interface {
	Allow(ctx context.Context, cap Capability) error
}

type authzService struct {
	log *logger.Logger
}

func NewAuthzService(log *logger.Logger) AuthzService {
	return &authzService{log: log.With("service", "AuthzService")}
}

func (s *authzService) Allow(ctx context.Context, cap Capability) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || !rd.Role.Valid() {
		return ErrForbidden
	}
	if !roleCapabilities[rd.Role][cap] {
		s.log.Debug("Capability denied", "role", rd.Role, "capability", cap)
		return ErrForbidden
	}
	return nil
}
