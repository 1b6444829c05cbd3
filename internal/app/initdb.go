package app

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/primecut/storefront/internal/domain"
)

// checkSuper makes sure an operator account exists for the admin API.
func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "storefront"

	var operator domain.SysOpr
	err := a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, herr := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if herr != nil {
			zap.L().Error("failed to hash default password", zap.Error(herr))
			return
		}
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        a.NextID(),
			Realname:  "administrator",
			Email:     "N/A",
			Username:  superUsername,
			Password:  string(hashed),
			Level:     "super",
			Status:    "enabled",
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
	}
}

// checkCatalog seeds a handful of catalog rows on an empty database so
// a fresh install serves something orderable.
func (a *Application) checkCatalog() {
	var count int64
	if err := a.gormDB.Model(&domain.Product{}).Count(&count).Error; err != nil {
		zap.L().Error("failed to count catalog rows", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	defaultCatalog := []domain.Product{
		{ItemNumber: "1001", ItemDesc: "Ribeye", Category: "Steaks", Retail: 32.50, MinQty: 1},
		{ItemNumber: "1002", ItemDesc: "Filet", Category: "Steaks", Retail: 28.00, MinQty: 1},
		{ItemNumber: "1003", ItemDesc: "NY Strip", Category: "Steaks", Retail: 24.00, MinQty: 2},
		{ItemNumber: "2001", ItemDesc: "Ground Beef 80/20", Category: "Ground", Retail: 6.50, MinQty: 5},
		{ItemNumber: "3001", ItemDesc: "Beef Short Ribs", Category: "Ribs", Retail: 12.75, MinQty: 4},
	}
	for _, p := range defaultCatalog {
		p.Status = "enabled"
		if err := a.gormDB.Create(&p).Error; err != nil {
			zap.L().Error("failed to seed catalog row", zap.String("item", p.ItemDesc), zap.Error(err))
		} else {
			zap.L().Info("seeded catalog row", zap.String("item", p.ItemDesc))
		}
	}
}
