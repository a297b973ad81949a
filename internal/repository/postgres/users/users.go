// Package users holds the read queries on the users table shared by the
// repositories of the domains that reference users without owning them.
package users

import (
	"context"
	"errors"

	"care-hub-go/internal/domain/directory"
	"gorm.io/gorm"
)

func List(ctx context.Context, db *gorm.DB) ([]directory.User, error) {
	var users []directory.User
	if err := db.WithContext(ctx).Order("username asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func Get(ctx context.Context, db *gorm.DB, id string) (*directory.User, error) {
	var user directory.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, directory.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
