package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	LLMAPIKey        string `env:"LLM_API_KEY,required"`
	LLMBaseURL       string `env:"LLM_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	LLMModel         string `env:"LLM_MODEL" envDefault:"openai/gpt-4-turbo"`
	LLMFallbackModel string `env:"LLM_FALLBACK_MODEL" envDefault:"anthropic/claude-3-haiku"`
	LLMReferer       string `env:"LLM_REFERER" envDefault:"https://pawsitiveai.coach"`
	LLMAppTitle      string `env:"LLM_APP_TITLE" envDefault:"PawsitiveAI Coach"`

	JWTSecret            string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes  int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`
	JWTRefreshTTLMinutes int    `env:"JWT_REFRESH_TTL_MINUTES" envDefault:"43200"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME" envDefault:"PawsitiveAI Coach"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Hora local (formato HH:MM) a la que corre el job diario de recordatorios.
	ReminderHour string `env:"REMINDER_HOUR" envDefault:"09:00"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
