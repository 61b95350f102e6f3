// file: internals/constants/roles.go
package constants

import "fmt"

const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

var AllRoles = []string{RoleVoter, RoleAdmin}

const ErrOnlyAdminsCanAccess = "❌ only admins may access %s."

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}
