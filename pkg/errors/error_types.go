package errors

// ConfigError indicates an invalid configuration file, env override or flag value
const ConfigError ErrorType = "config_error"

// FileNotFoundError indicates the selected input does not exist
const FileNotFoundError ErrorType = "file_not_found_error"

// PermissionError indicates the output location cannot be written
const PermissionError ErrorType = "permission_error"
