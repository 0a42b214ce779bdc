package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App     *App     `json:"app" yaml:"app"`
	Server  *Server  `json:"server" yaml:"server"`
	MySQL   *MySQL   `json:"mysql" yaml:"mysql"`
	Redis   *Redis   `json:"redis" yaml:"redis"`
	Jwt     *Jwt     `json:"jwt" yaml:"jwt"`
	Storage *Storage `json:"storage" yaml:"storage"`
	Email   *Email   `json:"email" yaml:"email"`
	Auth    *Auth    `json:"auth" yaml:"auth"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

func New(filename string) *Config {
	conf, err := Load(filename)
	if err != nil {
		panic(err)
	}
	return conf
}

// Load reads and parses the yaml file, filling in defaults for missing sections.
func Load(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	conf.applyDefaults()

	return &conf, nil
}

func (c *Config) applyDefaults() {
	if c.App == nil {
		c.App = &App{Env: "dev"}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.MySQL == nil {
		c.MySQL = &MySQL{}
	}
	if c.Redis == nil {
		c.Redis = &Redis{Address: "127.0.0.1", Port: 6379}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Jwt.ExpiresTime == 0 {
		c.Jwt.ExpiresTime = 3600
	}
	if c.Storage == nil {
		c.Storage = &Storage{}
	}
	c.Storage.applyDefaults()
	if c.Email == nil {
		c.Email = &Email{}
	}
	if c.Auth == nil {
		c.Auth = &Auth{}
	}
	if c.Auth.SiteURL == "" {
		c.Auth.SiteURL = "http://127.0.0.1:5173"
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
