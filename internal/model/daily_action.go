package model

// DailyActionRecord 每日动作计数，(user_id, action, day) 唯一
// 不做清理，按日期键自然过期
type DailyActionRecord struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64 `gorm:"not null;uniqueIndex:idx_user_action_day,priority:1" json:"userId"`
	Action string `gorm:"type:varchar(30);not null;uniqueIndex:idx_user_action_day,priority:2" json:"action"`
	Day    string `gorm:"type:varchar(8);not null;uniqueIndex:idx_user_action_day,priority:3" json:"day"` // 20060102
	Count  int64  `gorm:"not null;default:0" json:"count"`
}

func (DailyActionRecord) TableName() string {
	return "daily_action_records"
}
