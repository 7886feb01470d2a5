package models

import (
	"github.com/teamvolt/binex/config"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func Lock() (tx *gorm.DB) {
	return config.DataBase.Clauses(clause.Locking{Strength: "UPDATE"})
}
