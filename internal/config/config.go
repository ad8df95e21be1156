package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	KickCooldown       int    `yaml:"kick_cooldown"`        // 被踢冷却（秒）
	ChatLogCap         int    `yaml:"chat_log_cap"`         // 聊天记录上限（条）
	TrickDisplayBuffer int    `yaml:"trick_display_buffer"` // 结算后展示缓冲（秒）
	LobbyTimeout       int    `yaml:"lobby_timeout"`        // 大厅等待超时（分钟）
	DefaultSpeed       string `yaml:"default_speed"`        // 默认回合速度档位
	ShutdownTimeout    int    `yaml:"shutdown_timeout"`     // 优雅关闭等待（秒）
}

// KickCooldownDuration 返回被踢冷却时长
func (c *GameConfig) KickCooldownDuration() time.Duration {
	return time.Duration(c.KickCooldown) * time.Second
}

// TrickDisplayBufferDuration 返回结算展示缓冲时长
func (c *GameConfig) TrickDisplayBufferDuration() time.Duration {
	return time.Duration(c.TrickDisplayBuffer) * time.Second
}

// LobbyTimeoutDuration 返回大厅等待超时时长
func (c *GameConfig) LobbyTimeoutDuration() time.Duration {
	return time.Duration(c.LobbyTimeout) * time.Minute
}

// ShutdownTimeoutDuration 返回优雅关闭等待时长
func (c *GameConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults 设置默认值
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 1915
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Game.KickCooldown == 0 {
		c.Game.KickCooldown = 30
	}
	if c.Game.ChatLogCap == 0 {
		c.Game.ChatLogCap = 100
	}
	if c.Game.TrickDisplayBuffer == 0 {
		c.Game.TrickDisplayBuffer = 2
	}
	if c.Game.LobbyTimeout == 0 {
		c.Game.LobbyTimeout = 10
	}
	if c.Game.DefaultSpeed == "" {
		c.Game.DefaultSpeed = "normal"
	}
	if c.Game.ShutdownTimeout == 0 {
		c.Game.ShutdownTimeout = 60
	}
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
