package mongo

import (
	"time"
)

// Message MongoDB 消息明细模型
// 消息一经写入不可修改，按 Seq 全序排列
type Message struct {
	ID             string    `bson:"_id,omitempty" json:"id"`               // MongoDB 自动生成的 ObjectID
	ConversationID uint64    `bson:"conversation_id" json:"conversationId"` // 关联 MySQL 的会话 ID
	SenderID       uint64    `bson:"sender_id" json:"senderId"`             // 发送者 UID，AI 回复为 0
	MsgType        int8      `bson:"msg_type" json:"msgType"`               // 1-文本, 2-AI回复
	Content        string    `bson:"content" json:"content"`
	Seq            uint64    `bson:"seq" json:"seq"` // 该消息在会话中的唯一绝对序号 (来自 MySQL)
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}
