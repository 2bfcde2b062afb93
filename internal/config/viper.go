package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// NewViper reads config.yaml from the working directory (config.prod.yaml
// when ENV=production). Keys can be overridden through the environment, e.g.
// LLM_API_KEY for llm.api_key.
func NewViper() *viper.Viper {
	config := viper.New()

	if os.Getenv("ENV") == "production" {
		config.SetConfigName("config.prod")
	} else {
		config.SetConfigName("config")
	}

	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	if err := config.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	return config
}
