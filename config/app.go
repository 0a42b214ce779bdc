package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
}

// Auth controls the identity endpoints.
type Auth struct {
	// SiteURL is the origin used to build confirmation and reset links.
	SiteURL             string `json:"site_url" yaml:"site_url"`
	RequireConfirmation bool   `json:"require_confirmation" yaml:"require_confirmation"`
}
