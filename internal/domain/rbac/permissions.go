// Package rbac contiene la tabla de permisos por rol. Las decisiones son una
// función pura de (rol, acción): no hay estado ni consulta a la base de datos.
package rbac

import "github.com/jhoicas/b2b-portal-api/internal/domain/entity"

// Action operación protegida que una ruta puede declarar.
type Action string

const (
	ViewDashboard  Action = "dashboard:view"
	ListUsers      Action = "users:list"
	ManageUsers    Action = "users:manage"
	ManageOrders   Action = "orders:manage"
	ViewProducts   Action = "products:view"
	ManageProducts Action = "products:manage"
	AssignVendors  Action = "vendors:assign"
	ManageVendors  Action = "vendors:manage"
	ViewPayments   Action = "payments:view"
	TrackPayments  Action = "payments:track"
	MakePayments   Action = "payments:make"
)

// Scope alcance de los datos sobre los que aplica un permiso concedido.
type Scope string

const (
	ScopeTenant Scope = "tenant" // todos los registros de la empresa
	ScopeOwn    Scope = "own"    // solo los registros propios del usuario
)

// Tabla de permisos:
//
//	| Acción                        | Admin    | Sales       | Buyer         |
//	|-------------------------------|----------|-------------|---------------|
//	| ver stats del dashboard       | sí       | sí          | sí            |
//	| listar usuarios de la empresa | sí       | no          | no            |
//	| crear/gestionar pedidos       | sí       | sí          | no            |
//	| productos/inventario          | sí       | solo ver    | no            |
//	| proveedores                   | sí       | solo asignar| no            |
//	| pagos                         | ver todos| ver/seguir  | hacer/ver propios |
//
// users:manage (activar/desactivar) es exclusivo de Admin.
var table = map[Action]map[entity.Role]Scope{
	ViewDashboard:  {entity.RoleAdmin: ScopeTenant, entity.RoleSales: ScopeTenant, entity.RoleBuyer: ScopeTenant},
	ListUsers:      {entity.RoleAdmin: ScopeTenant},
	ManageUsers:    {entity.RoleAdmin: ScopeTenant},
	ManageOrders:   {entity.RoleAdmin: ScopeTenant, entity.RoleSales: ScopeTenant},
	ViewProducts:   {entity.RoleAdmin: ScopeTenant, entity.RoleSales: ScopeTenant},
	ManageProducts: {entity.RoleAdmin: ScopeTenant},
	AssignVendors:  {entity.RoleAdmin: ScopeTenant, entity.RoleSales: ScopeTenant},
	ManageVendors:  {entity.RoleAdmin: ScopeTenant},
	ViewPayments:   {entity.RoleAdmin: ScopeTenant, entity.RoleSales: ScopeTenant, entity.RoleBuyer: ScopeOwn},
	TrackPayments:  {entity.RoleSales: ScopeTenant},
	MakePayments:   {entity.RoleBuyer: ScopeOwn},
}

// Allowed informa si el rol puede ejecutar la acción. Acciones desconocidas se deniegan.
func Allowed(role entity.Role, action Action) bool {
	_, ok := ScopeFor(role, action)
	return ok
}

// ScopeFor devuelve el alcance concedido; ok=false si el rol no tiene la acción.
func ScopeFor(role entity.Role, action Action) (Scope, bool) {
	roles, ok := table[action]
	if !ok {
		return "", false
	}
	scope, ok := roles[role]
	return scope, ok
}

// RolesFor lista los roles que pueden ejecutar la acción, en el orden de entity.Roles.
func RolesFor(action Action) []entity.Role {
	var out []entity.Role
	for _, r := range entity.Roles {
		if Allowed(r, action) {
			out = append(out, r)
		}
	}
	return out
}
