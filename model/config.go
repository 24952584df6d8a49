package model

// ServerConfig holds the per-guild configuration loaded from data/config.yaml.
type ServerConfig struct {
	Name                string   `mapstructure:"name"`
	GuildID             string   `mapstructure:"guild_id"`
	Enable              bool     `mapstructure:"enable"`
	AdminRoleIDs        []string `mapstructure:"admin_role_ids"`
	ModRoleIDs          []string `mapstructure:"mod_role_ids"`
	InfractionChannelID string   `mapstructure:"infraction_channel_id"`
	AuditChannelID      string   `mapstructure:"audit_channel_id"`
	TryoutChannelID     string   `mapstructure:"tryout_channel_id"`
	TrainingChannelID   string   `mapstructure:"training_channel_id"`
}

// Config stores the application configuration.
type Config struct {
	BotToken         string
	AppID            string
	LogChannelID     string
	DBPath           string
	DeveloperUserIDs []string
	ServerConfigs    map[string]ServerConfig
}
