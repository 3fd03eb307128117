package config

import (
	"reflect"
	"strings"

	"github.com/renato0307/cardwatch/internal/paths"
)

// GetSettingsFilePath returns the path to the settings file
func GetSettingsFilePath() string {
	return paths.GetSettingsPath()
}

// GetSettingsExample uses reflection to generate example settings
// This automatically stays in sync when new fields are added to Settings
func GetSettingsExample() map[string]any {
	var s Settings
	t := reflect.TypeOf(s)
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}

		// Extract the JSON field name (before comma)
		jsonName := strings.Split(jsonTag, ",")[0]

		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		switch t.Elem().Kind() {
		case reflect.Bool:
			return fieldName == "debug"
		case reflect.Int:
			switch fieldName {
			case "max_log_files":
				return 100
			case "near_expiry_days":
				return 3
			case "redis_db":
				return 0
			case "timeout_seconds":
				return 15
			case "watch_interval_seconds":
				return 300
			}
			return 10
		}
	}

	if t.Kind() == reflect.String {
		switch fieldName {
		case "base_url":
			return "https://xjxjxj.iot889.com"
		case "cookie":
			return "<APPLICATION_SESSION_NAME cookie value>"
		case "fetch_method":
			return "GET"
		case "format":
			return "widget"
		case "ledger_backend":
			return LedgerBackendSQLite
		case "redis_addr":
			return "localhost:6379"
		case "redis_password":
			return ""
		default:
			return "example"
		}
	}

	return nil
}
