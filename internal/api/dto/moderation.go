package dto

// BadWordReq 违禁词新增/修改请求体
type BadWordReq struct {
	ID       uint64 `json:"id"`
	Word     string `json:"word" binding:"required"`
	IsRegex  bool   `json:"is_regex"`
	Level    int8   `json:"level" binding:"required,min=1,max=5"`
	Category string `json:"category"`
}

// ScanReq 文本扫描请求体（管理端调试用）
type ScanReq struct {
	Text string `json:"text" binding:"required"`
}

// ScanMatchDTO 单条命中结果
type ScanMatchDTO struct {
	Word     string `json:"word"`
	Level    int8   `json:"level"`
	Category string `json:"category"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}
