package config

type Email struct {
	SMTPHost     string `json:"smtp_host" yaml:"smtp_host"`
	SMTPPort     int    `json:"smtp_port" yaml:"smtp_port"`
	SMTPUser     string `json:"smtp_user" yaml:"smtp_user"`
	SMTPPassword string `json:"smtp_password" yaml:"smtp_password"`
	FromEmail    string `json:"from_email" yaml:"from_email"`
}

func ProvideEmailConfig(cfg *Config) *Email {
	return cfg.Email
}
