package config

// Config 配置主体
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	DB         DBConfig         `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Mongo      MongoConfig      `mapstructure:"mongo"`
	Logstash   LogstashConfig   `mapstructure:"logstash"`
	Quota      QuotaConfig      `mapstructure:"quota"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	LLM        LLMConfig        `mapstructure:"llm"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoConfig Mongo配置，消息明细存储
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// QuotaConfig 每日动作限额，普通用户与 VIP 区分
type QuotaConfig struct {
	LikeDaily       int64 `mapstructure:"like_daily"`
	LikeDailyVip    int64 `mapstructure:"like_daily_vip"`
	AIQuestionDaily int64 `mapstructure:"ai_question_daily"`
}

// ModerationConfig 内容审核配置
type ModerationConfig struct {
	BlockLevel int8   `mapstructure:"block_level"` // 达到该等级的命中直接拦截
	ReloadSpec string `mapstructure:"reload_spec"` // cron 表达式，词库快照定时刷新
}

type LLMConfig struct {
	URL    string `mapstructure:"url"`
	Model  string `mapstructure:"model"`
	ApiKey string `mapstructure:"api_key"`
}
