package rbac_test

import (
	"testing"

	"go-hrms/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestService_Enforce(t *testing.T) {
	svc, err := rbac.NewDefaultService()
	if !assert.NoError(t, err) {
		return
	}

	cases := []struct {
		role, resource, action string
		allowed                bool
	}{
		{rbac.RoleEmployee, "employee", "read", true},
		{rbac.RoleEmployee, "payroll", "read", false},
		{rbac.RoleAdmin, "payroll", "write", true},
		{rbac.RoleAdmin, "employee", "read", true},
		{rbac.RoleAdmin, "salary_structure", "read", true},
		{rbac.RoleAdmin, "salary_structure", "write", false},
		{rbac.RoleAdmin, "pt_rule", "write", false},
		{rbac.RoleOrganization, "salary_structure", "write", true},
		{rbac.RoleOrganization, "attendance", "write", true},
		{rbac.RoleOrganization, "pt_rule", "write", false},
		{rbac.RoleOwner, "pt_rule", "write", true},
		{rbac.RoleOwner, "payroll", "read", true},
		{"auditor", "payroll", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.role+" "+tc.resource+":"+tc.action, func(t *testing.T) {
			allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestNewEnforcer_CustomPermissions(t *testing.T) {
	e, err := rbac.NewEnforcer([]rbac.Permission{{Role: rbac.RoleEmployee, Resource: "payroll", Action: "read"}})
	if !assert.NoError(t, err) {
		return
	}
	svc := rbac.NewService(e)

	allowed, err := svc.Enforce(rbac.RoleOwner, "payroll", "read")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(rbac.RoleOwner, "payroll", "write")
	assert.NoError(t, err)
	assert.False(t, allowed)
}
