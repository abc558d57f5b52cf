package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Operations guarded by the role gate.
const (
	OperationRoomManage       = "room.manage"
	OperationRoomStatus       = "room.status"
	OperationBookingRead      = "booking.read"
	OperationBookingFrontDesk = "booking.front_desk"
	OperationGuestRead        = "guest.read"
	OperationPaymentRead      = "payment.read"
	OperationPaymentConfirm   = "payment.confirm"
	OperationSettingsManage   = "settings.manage"
	OperationStaffManage      = "staff.manage"
	OperationAlertRead        = "alert.read"
	OperationAlertAcknowledge = "alert.acknowledge"
)

// Permission describes one route. Permissions lists the roles allowed on it;
// an empty list only requires a signed-in caller. Optional routes accept
// anonymous callers but still read a bearer token when one is sent.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
	Optional    bool     `json:"optional"`
}

type PermissionData struct {
	Endpoints  []Permission        `json:"endpoints"`
	Operations map[string][]string `json:"operations"`
	Skip       bool                `json:"skip"`
}

// FindPermissions returns the entry of a route pattern. Sub-router index
// routes resolve with a trailing slash, so it is ignored.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// CanPerform reports whether role may run operation. Unknown roles and
// unknown operations are denied.
func (r *PermissionData) CanPerform(role, operation string) bool {
	if r == nil || role == "" {
		return false
	}

	return slices.Contains(r.Operations[operation], role)
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Int("operations", len(permissions.Operations)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
