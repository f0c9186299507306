package rbac

const (
	RoleOwner        = "owner"
	RoleOrganization = "organization"
	RoleAdmin        = "admin"
	RoleEmployee     = "employee"
)

const ActionAny = "*"

// ModelText is a plain RBAC model with role inheritance. Tenant isolation is
// enforced by the repositories, so the request carries no domain.
const ModelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

type Permission struct {
	Role     string
	Resource string
	Action   string
}

// Inheritance is child-role -> inherited-role, so each level holds every
// permission of the levels below it.
var Inheritance = [][2]string{
	{RoleOwner, RoleOrganization},
	{RoleOrganization, RoleAdmin},
	{RoleAdmin, RoleEmployee},
}

var DefaultPermissions = []Permission{
	{RoleEmployee, "employee", "read"},

	{RoleAdmin, "attendance", ActionAny},
	{RoleAdmin, "payroll", ActionAny},
	{RoleAdmin, "payroll_config", ActionAny},
	{RoleAdmin, "salary_component", "read"},
	{RoleAdmin, "salary_structure", "read"},
	{RoleAdmin, "payroll_settings", "read"},
	{RoleAdmin, "pt_rule", "read"},

	{RoleOrganization, "salary_component", ActionAny},
	{RoleOrganization, "salary_structure", ActionAny},
	{RoleOrganization, "payroll_settings", ActionAny},

	{RoleOwner, "pt_rule", ActionAny},
}
