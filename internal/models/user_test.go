package models

import (
	"testing"
)

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected bool
	}{
		{"fleet manager role", RoleFleetManager, true},
		{"dispatcher role", RoleDispatcher, true},
		{"safety officer role", RoleSafetyOfficer, true},
		{"financial analyst role", RoleFinancialAnalyst, true},
		{"invalid role", "Admin", false},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidRole(tt.role)
			if result != tt.expected {
				t.Errorf("IsValidRole(%s) = %v, want %v", tt.role, result, tt.expected)
			}
		})
	}
}

func TestRole_Can(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		action   Action
		expected bool
	}{
		// FleetManager has the widest surface
		{"manager creates vehicles", RoleFleetManager, ActionVehiclesCreate, true},
		{"manager deletes vehicles", RoleFleetManager, ActionVehiclesDelete, true},
		{"manager updates trip status", RoleFleetManager, ActionTripsUpdateStatus, true},
		{"manager reads analytics", RoleFleetManager, ActionAnalyticsRead, true},

		// Dispatcher runs trips and fuel but not fleet administration
		{"dispatcher creates trips", RoleDispatcher, ActionTripsCreate, true},
		{"dispatcher updates trip status", RoleDispatcher, ActionTripsUpdateStatus, true},
		{"dispatcher creates fuel logs", RoleDispatcher, ActionFuelCreate, true},
		{"dispatcher cannot create vehicles", RoleDispatcher, ActionVehiclesCreate, false},
		{"dispatcher cannot delete drivers", RoleDispatcher, ActionDriversDelete, false},
		{"dispatcher cannot read analytics", RoleDispatcher, ActionAnalyticsRead, false},

		// SafetyOfficer manages drivers and maintenance
		{"safety officer updates drivers", RoleSafetyOfficer, ActionDriversUpdate, true},
		{"safety officer writes maintenance", RoleSafetyOfficer, ActionMaintenanceWrite, true},
		{"safety officer cannot create trips", RoleSafetyOfficer, ActionTripsCreate, false},
		{"safety officer cannot read fuel", RoleSafetyOfficer, ActionFuelRead, false},

		// FinancialAnalyst is read-only on cost-bearing data
		{"analyst reads analytics", RoleFinancialAnalyst, ActionAnalyticsRead, true},
		{"analyst reads maintenance", RoleFinancialAnalyst, ActionMaintenanceRead, true},
		{"analyst reads fuel", RoleFinancialAnalyst, ActionFuelRead, true},
		{"analyst cannot write maintenance", RoleFinancialAnalyst, ActionMaintenanceWrite, false},
		{"analyst cannot read drivers", RoleFinancialAnalyst, ActionDriversRead, false},

		{"unknown role has nothing", Role("Admin"), ActionVehiclesRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.role.Can(tt.action)
			if result != tt.expected {
				t.Errorf("Role %s Can(%s) = %v, want %v", tt.role, tt.action, result, tt.expected)
			}
		})
	}
}
