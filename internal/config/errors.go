package config

import "fmt"

// ConfigurationError - фатальная ошибка старта: нет ключа, резюме или неверная политика.
type ConfigurationError struct {
	Key    string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("конфигурация %s: %s: %v", e.Key, e.Reason, e.Err)
	}
	return fmt.Sprintf("конфигурация %s: %s", e.Key, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
