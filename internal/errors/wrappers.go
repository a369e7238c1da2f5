package errors

import "fmt"

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(key string, cause error) *BaseError {
	message := fmt.Sprintf("invalid configuration value for '%s'", key)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("key", key)
}

// ConfigurationError creates a configuration error without a cause
func ConfigurationError(key, message string) *BaseError {
	return New(ConfigurationErrorCode, message).WithContext("key", key)
}

// WrapGenerationError wraps a failure of the generation stage itself
func WrapGenerationError(stage string, cause error) *BaseError {
	return Wrap(GenerationErrorCode, fmt.Sprintf("failed to %s", stage), cause).
		WithContext("stage", stage)
}
