package database

import (
	"context"
	"errors"
	"time"

	"github.com/harnesslab/wiremes/internal/common/cnst"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin ensures the system administrator role and the initial admin
// account exist. The admin role carries no stored permissions: it is
// implicitly granted every menu code.
func SeedAdmin(ctx context.Context, db Database, username, password string) error {
	role, err := db.GetRoleByCode(ctx, cnst.AdminRoleCode)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		role = &Role{
			Code:        cnst.AdminRoleCode,
			Name:        "Administrator",
			Description: "System administrator with implicit total access",
			IsSystem:    true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := db.CreateRole(ctx, role); err != nil {
			return err
		}
	}

	if username == "" {
		return nil
	}
	if _, err := db.GetUserByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.CreateUser(ctx, &User{
		Username:  username,
		Password:  string(hashed),
		RoleID:    role.ID,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
}
