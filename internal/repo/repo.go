package repo

import (
	"errors"

	"gorm.io/gorm"
)

var ErrDuplicate = errors.New("duplicate record")

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
