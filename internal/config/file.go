package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configFileVar = "CONFIG_FILE"

// Load reads the given .env files (missing files are skipped) and then the optional
// YAML file named by CONFIG_FILE. Variables already present in the environment win.
func Load(envFiles ...string) error {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("[config Load] %s: %w", path, err)
		}
	}

	if path := os.Getenv(configFileVar); path != "" {
		if err := LoadYAML(path); err != nil {
			return err
		}
	}
	return nil
}

// LoadYAML reads a flat mapping of variable names to values, e.g.
//
//	API_URL: https://api.captal.com.br
//	TOKEN_SAFETY_MARGIN: 30m
func LoadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("[config LoadYAML] read %s: %w", path, err)
	}

	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("[config LoadYAML] parse %s: %w", path, err)
	}

	for key, value := range values {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("[config LoadYAML] set %s: %w", key, err)
		}
	}
	return nil
}
