package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/federated-matches/internal/platform/logging"
)

// FederationConfig describes one remote federation as seen by this service.
type FederationConfig struct {
	Key                string
	Name               string
	ManagerID          string
	NativeGenderFilter bool
}

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	CORSAllowedOrigins             []string
	SwaggerEnabled                 bool
	LeveradeBaseURL                string
	LeveradeTimeout                time.Duration
	LeveradeMaxRetries             int
	LeveradeCircuitEnabled         bool
	LeveradeCircuitFailureCount    int
	LeveradeCircuitOpenTimeout     time.Duration
	LeveradeCircuitHalfOpenMaxReq  int
	MatchesSeasonID                string
	MatchesPageSize                int
	MatchesQueryTimeout            time.Duration
	MatchesTolerateFederationError bool
	Federations                    []FederationConfig
	CatalogPath                    string
	UptraceEnabled                 bool
	UptraceDSN                     string
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	LogLevel                       logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	readTimeout, err := getEnvAsDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}

	leveradeBaseURL := strings.TrimSpace(getEnv("LEVERADE_BASE_URL", "https://api.leverade.com"))
	leveradeTimeout, err := getEnvAsDuration("LEVERADE_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	leveradeMaxRetries, err := getEnvAsInt("LEVERADE_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEVERADE_MAX_RETRIES: %w", err)
	}
	if leveradeMaxRetries < 0 {
		return Config{}, fmt.Errorf("LEVERADE_MAX_RETRIES must be >= 0")
	}
	leveradeCircuitEnabled, err := strconv.ParseBool(getEnv("LEVERADE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEVERADE_CIRCUIT_ENABLED: %w", err)
	}
	leveradeCircuitFailureCount, err := getEnvAsInt("LEVERADE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEVERADE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if leveradeCircuitFailureCount <= 0 {
		return Config{}, fmt.Errorf("LEVERADE_CIRCUIT_FAILURE_COUNT must be > 0")
	}
	leveradeCircuitOpenTimeout, err := getEnvAsDuration("LEVERADE_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	leveradeCircuitHalfOpenMaxReq, err := getEnvAsInt("LEVERADE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEVERADE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if leveradeCircuitHalfOpenMaxReq <= 0 {
		return Config{}, fmt.Errorf("LEVERADE_CIRCUIT_HALF_OPEN_MAX_REQ must be > 0")
	}

	seasonID := strings.TrimSpace(getEnv("MATCHES_SEASON_ID", ""))
	if seasonID == "" {
		return Config{}, fmt.Errorf("MATCHES_SEASON_ID is required")
	}
	pageSize, err := getEnvAsInt("MATCHES_PAGE_SIZE", 50)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCHES_PAGE_SIZE: %w", err)
	}
	if pageSize <= 0 {
		return Config{}, fmt.Errorf("MATCHES_PAGE_SIZE must be > 0")
	}
	queryTimeout, err := getEnvAsDuration("MATCHES_QUERY_TIMEOUT", 20*time.Second)
	if err != nil {
		return Config{}, err
	}
	tolerateFederationError, err := strconv.ParseBool(getEnv("MATCHES_TOLERATE_FEDERATION_FAILURE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCHES_TOLERATE_FEDERATION_FAILURE: %w", err)
	}

	federationA, err := loadFederation("FEDERATION_A", "a", true)
	if err != nil {
		return Config{}, err
	}
	federationB, err := loadFederation("FEDERATION_B", "b", false)
	if err != nil {
		return Config{}, err
	}
	if federationA.Key == federationB.Key {
		return Config{}, fmt.Errorf("FEDERATION_A_KEY and FEDERATION_B_KEY must differ, both are %q", federationA.Key)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second)
	if err != nil {
		return Config{}, err
	}

	return Config{
		AppEnv:                         appEnv,
		ServiceName:                    strings.TrimSpace(getEnv("SERVICE_NAME", "federated-matches")),
		ServiceVersion:                 strings.TrimSpace(getEnv("SERVICE_VERSION", "dev")),
		HTTPAddr:                       getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:                 swaggerEnabled,
		LeveradeBaseURL:                leveradeBaseURL,
		LeveradeTimeout:                leveradeTimeout,
		LeveradeMaxRetries:             leveradeMaxRetries,
		LeveradeCircuitEnabled:         leveradeCircuitEnabled,
		LeveradeCircuitFailureCount:    leveradeCircuitFailureCount,
		LeveradeCircuitOpenTimeout:     leveradeCircuitOpenTimeout,
		LeveradeCircuitHalfOpenMaxReq:  leveradeCircuitHalfOpenMaxReq,
		MatchesSeasonID:                seasonID,
		MatchesPageSize:                pageSize,
		MatchesQueryTimeout:            queryTimeout,
		MatchesTolerateFederationError: tolerateFederationError,
		Federations:                    []FederationConfig{federationA, federationB},
		CatalogPath:                    strings.TrimSpace(getEnv("CATALOG_PATH", "")),
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAppName:               strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", "federated-matches")),
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		LogLevel:                       logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}, nil
}

func loadFederation(prefix, defaultKey string, defaultNativeGender bool) (FederationConfig, error) {
	key := strings.ToLower(strings.TrimSpace(getEnv(prefix+"_KEY", defaultKey)))
	managerID := strings.TrimSpace(getEnv(prefix+"_MANAGER_ID", ""))
	if managerID == "" {
		return FederationConfig{}, fmt.Errorf("%s_MANAGER_ID is required", prefix)
	}
	nativeGender, err := strconv.ParseBool(getEnv(prefix+"_NATIVE_GENDER", strconv.FormatBool(defaultNativeGender)))
	if err != nil {
		return FederationConfig{}, fmt.Errorf("parse %s_NATIVE_GENDER: %w", prefix, err)
	}

	return FederationConfig{
		Key:                key,
		Name:               strings.TrimSpace(getEnv(prefix+"_NAME", strings.ToUpper(key))),
		ManagerID:          managerID,
		NativeGenderFilter: nativeGender,
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
