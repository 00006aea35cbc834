package router

import (
	"testing"

	"github.com/benayed0/loopa-pro/internal/client/models"
	"github.com/benayed0/loopa-pro/internal/client/session"
	"github.com/stretchr/testify/assert"
)

func menuPaths(items []MenuItem) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Path)
	}
	return out
}

func TestMenu_FiltersByRole(t *testing.T) {
	assert.Empty(t, Menu(session.New()))

	assert.Equal(t,
		[]string{PathDashboard, PathMenus, PathOrders, PathTables, PathQRCodes},
		menuPaths(Menu(stateWith(models.RoleStaff))))

	assert.Equal(t,
		[]string{PathDashboard, PathMerchants, PathMenus, PathOrders, PathTables, PathQRCodes},
		menuPaths(Menu(stateWith(models.RoleManager))))

	assert.Equal(t,
		[]string{PathDashboard, PathMerchants, PathMenus, PathOrders, PathTables, PathQRCodes, PathUsers},
		menuPaths(Menu(stateWith(models.RoleOwner))))
}

func TestMenu_Labels(t *testing.T) {
	items := Menu(stateWith(models.RoleOwner))
	assert.Equal(t, "Dashboard", items[0].Label)
	assert.Equal(t, "Utilisateurs", items[len(items)-1].Label)
}
