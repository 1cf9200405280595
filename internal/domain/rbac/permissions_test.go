package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/rbac"
)

func TestTablaDePermisos(t *testing.T) {
	const (
		no     = rbac.Scope("")
		tenant = rbac.ScopeTenant
		own    = rbac.ScopeOwn
	)
	// Columnas: Admin, Sales, Buyer.
	want := map[rbac.Action][3]rbac.Scope{
		rbac.ViewDashboard:  {tenant, tenant, tenant},
		rbac.ListUsers:      {tenant, no, no},
		rbac.ManageUsers:    {tenant, no, no},
		rbac.ManageOrders:   {tenant, tenant, no},
		rbac.ViewProducts:   {tenant, tenant, no},
		rbac.ManageProducts: {tenant, no, no},
		rbac.AssignVendors:  {tenant, tenant, no},
		rbac.ManageVendors:  {tenant, no, no},
		rbac.ViewPayments:   {tenant, tenant, own},
		rbac.TrackPayments:  {no, tenant, no},
		rbac.MakePayments:   {no, no, own},
	}
	for action, scopes := range want {
		for i, role := range entity.Roles {
			got, ok := rbac.ScopeFor(role, action)
			assert.Equal(t, scopes[i] != no, ok, "%s/%s", role, action)
			assert.Equal(t, scopes[i], got, "%s/%s", role, action)
		}
	}
}

func TestAllowed_AccionDesconocidaDenegada(t *testing.T) {
	assert.False(t, rbac.Allowed(entity.RoleAdmin, rbac.Action("orders:delete")))
	assert.False(t, rbac.Allowed(entity.Role("Root"), rbac.ViewDashboard))
}

func TestRolesFor(t *testing.T) {
	assert.Equal(t, []entity.Role{entity.RoleAdmin}, rbac.RolesFor(rbac.ListUsers))
	assert.Equal(t, []entity.Role{entity.RoleAdmin, entity.RoleSales}, rbac.RolesFor(rbac.ManageOrders))
	assert.Equal(t, entity.Roles, rbac.RolesFor(rbac.ViewDashboard))
}
