package config

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
	RefreshExpDays   int    `mapstructure:"refresh_exp_days"`
}

// PasswordConfig holds password hashing configuration
type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// AuthConfig groups authentication related configuration
type AuthConfig struct {
	JWT      JWTConfig      `mapstructure:"jwt"`
	Password PasswordConfig `mapstructure:"password"`
	// RefreshStore selects the refresh credential backend: "db" or "redis"
	RefreshStore string `mapstructure:"refresh_store"`
}

// OAuthProviderConfig holds one provider's client configuration
type OAuthProviderConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// OAuthConfig holds social login configuration
type OAuthConfig struct {
	Kakao  OAuthProviderConfig `mapstructure:"kakao"`
	Naver  OAuthProviderConfig `mapstructure:"naver"`
	Google OAuthProviderConfig `mapstructure:"google"`
	// FrontendCompletionURL receives first-time social users with an incomplete profile
	FrontendCompletionURL string `mapstructure:"frontend_completion_url"`
	// FrontendCallbackURL receives fully registered social users together with a token pair
	FrontendCallbackURL string `mapstructure:"frontend_callback_url"`
}

// RedisConfig holds redis connection configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
