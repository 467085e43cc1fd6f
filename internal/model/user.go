package model

import (
	"time"
)

type User struct {
	ID        uint64  `gorm:"primaryKey"`
	Username  *string `gorm:"type:varchar(50);uniqueIndex:idx_username"`
	Phone     *string `gorm:"type:varchar(30);uniqueIndex:idx_phone"`
	Password  *string `gorm:"type:varchar(255)"`
	Role      string  `gorm:"type:varchar(20);default:USER"` // USER / EXPERT / ADMIN
	IsBan     bool    `gorm:"type:tinyint(1);default:0"`
	IsVip     bool    `gorm:"type:tinyint(1);default:0"` // VIP 享受更高的每日喜欢限额
	IsDelete  bool    `gorm:"type:tinyint(1);default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Pets []Pet `gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string {
	return "users"
}
