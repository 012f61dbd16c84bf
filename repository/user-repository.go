package repository

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleSuperAdmin     = "super_admin"
	RoleAdmin          = "admin"
	RoleFinanceAdmin   = "finance_admin"
	RoleInventoryAdmin = "inventory_admin"
)

type AdminUser struct {
	Id           int       `gorm:"primaryKey"`
	Username     string    `gorm:"not null;uniqueIndex"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:admin"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetUserByUsername(username string) (*AdminUser, error) {
	user := AdminUser{}
	result := r.DB.First(&user, &AdminUser{Username: username})
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) GetUserById(id int) (*AdminUser, error) {
	user := AdminUser{}
	result := r.DB.First(&user, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) GetAllUsers() ([]*AdminUser, error) {
	users := make([]*AdminUser, 0)
	result := r.DB.Order("username ASC").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (r *UserRepository) SaveUser(user *AdminUser) (*AdminUser, error) {
	result := r.DB.Save(user)
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}

func (r *UserRepository) DeleteUser(id int) error {
	return r.DB.Delete(&AdminUser{}, id).Error
}
