package model

type Role string

const (
	RoleAdmin                 Role = "admin"
	RoleUser                  Role = "user"
	RoleChauffeur             Role = "chauffeur"
	RoleManoeuvre             Role = "manoeuvre"
	RoleContremaitre          Role = "contremaitre"
	RoleOperateur             Role = "operateur"
	RoleMecano                Role = "mécano"
	RoleOperateurCour         Role = "opérateur_cour"
	RoleGestionnaireCour      Role = "gestionnaire_cour"
	RoleGestionnaireMecano    Role = "gestionnaire_mécano"
	RoleGestionnaireChauffeur Role = "gestionnaire_chauffeur"
	RoleSurintendant          Role = "surintendant"
	RoleChargeeDeProjet       Role = "chargée_de_projet"
)

// AllRoles is the fixed role universe, in roster order.
var AllRoles = []Role{
	RoleChauffeur,
	RoleMecano,
	RoleManoeuvre,
	RoleOperateur,
	RoleOperateurCour,
	RoleContremaitre,
	RoleGestionnaireCour,
	RoleGestionnaireMecano,
	RoleGestionnaireChauffeur,
	RoleSurintendant,
	RoleChargeeDeProjet,
	RoleUser,
	RoleAdmin,
}

// IsFreeAccess reports whether the role is exempt from the mandatory
// punch-in gate and may act on any employee.
func (r Role) IsFreeAccess() bool {
	return r == RoleAdmin || r == RoleSurintendant || r == RoleChargeeDeProjet
}

// IsDriverClass reports whether punch-ins for the role carry a truck plate
// used to correlate transport tickets.
func (r Role) IsDriverClass() bool {
	return r == RoleChauffeur || r == RoleGestionnaireChauffeur
}

type Permission string

const (
	PermPunch      Permission = "punch"
	PermEnvoi      Permission = "envoi"
	PermReception  Permission = "reception"
	PermHistory    Permission = "history"
	PermProvenance Permission = "provenance"
	PermReports    Permission = "reports"
	PermSettings   Permission = "settings"
	PermApproval   Permission = "approval"
)

// UserAccount is one entry of the user roster embedded in settings.
// Name is the join key for punch logs, approvals and tickets; the id is
// display/roster bookkeeping only (legacy document shape).
type UserAccount struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Code        string       `json:"code"`
	Role        Role         `json:"role"`
	Group       string       `json:"group,omitempty"`
	Permissions []Permission `json:"permissions"`
}

func (u *UserAccount) HasPermission(p Permission) bool {
	for _, have := range u.Permissions {
		if have == p {
			return true
		}
	}
	return false
}
