package consts

const (
	IMUserKey     = "im:user:"     // 用户个人推送频道
	BadgeCountKey = "badge:count:" // 角标数量缓存
)
