package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents user roles in the system.
type Role string

const (
	RoleFleetManager     Role = "FleetManager"
	RoleDispatcher       Role = "Dispatcher"
	RoleSafetyOfficer    Role = "SafetyOfficer"
	RoleFinancialAnalyst Role = "FinancialAnalyst"
)

// Action identifies a guarded operation for the permission matrix.
type Action string

const (
	ActionVehiclesCreate    Action = "vehicles:create"
	ActionVehiclesRead      Action = "vehicles:read"
	ActionVehiclesUpdate    Action = "vehicles:update"
	ActionVehiclesDelete    Action = "vehicles:delete"
	ActionDriversCreate     Action = "drivers:create"
	ActionDriversRead       Action = "drivers:read"
	ActionDriversUpdate     Action = "drivers:update"
	ActionDriversDelete     Action = "drivers:delete"
	ActionTripsCreate       Action = "trips:create"
	ActionTripsRead         Action = "trips:read"
	ActionTripsUpdateStatus Action = "trips:updateStatus"
	ActionMaintenanceWrite  Action = "maintenance:write"
	ActionMaintenanceRead   Action = "maintenance:read"
	ActionFuelCreate        Action = "fuel:create"
	ActionFuelRead          Action = "fuel:read"
	ActionAnalyticsRead     Action = "analytics:read"
)

// permissions maps each action to the roles allowed to perform it.
var permissions = map[Action][]Role{
	ActionVehiclesCreate:    {RoleFleetManager},
	ActionVehiclesRead:      {RoleFleetManager, RoleDispatcher, RoleSafetyOfficer, RoleFinancialAnalyst},
	ActionVehiclesUpdate:    {RoleFleetManager},
	ActionVehiclesDelete:    {RoleFleetManager},
	ActionDriversCreate:     {RoleFleetManager},
	ActionDriversRead:       {RoleFleetManager, RoleDispatcher, RoleSafetyOfficer},
	ActionDriversUpdate:     {RoleFleetManager, RoleSafetyOfficer},
	ActionDriversDelete:     {RoleFleetManager},
	ActionTripsCreate:       {RoleFleetManager, RoleDispatcher},
	ActionTripsRead:         {RoleFleetManager, RoleDispatcher, RoleSafetyOfficer, RoleFinancialAnalyst},
	ActionTripsUpdateStatus: {RoleFleetManager, RoleDispatcher},
	ActionMaintenanceWrite:  {RoleFleetManager, RoleSafetyOfficer},
	ActionMaintenanceRead:   {RoleFleetManager, RoleSafetyOfficer, RoleFinancialAnalyst},
	ActionFuelCreate:        {RoleFleetManager, RoleDispatcher},
	ActionFuelRead:          {RoleFleetManager, RoleDispatcher, RoleFinancialAnalyst},
	ActionAnalyticsRead:     {RoleFleetManager, RoleFinancialAnalyst},
}

// IsValidRole checks if a role is valid.
func IsValidRole(role Role) bool {
	switch role {
	case RoleFleetManager, RoleDispatcher, RoleSafetyOfficer, RoleFinancialAnalyst:
		return true
	default:
		return false
	}
}

// Can reports whether the role is allowed to perform the action.
func (r Role) Can(action Action) bool {
	for _, allowed := range permissions[action] {
		if allowed == r {
			return true
		}
	}
	return false
}

// User represents an authenticated operator of the system.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	LastLogin    *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// LoginResponse represents a successful login response.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Claims represents JWT claims.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Exp    int64  `json:"exp"`
}
