package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/assessment"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/llm"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/session"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	APIKey          string
	FallbackModel   string
	ModelFamilies   []string
	MaxCandidates   int
	Generation      llmclient.GenerationConfig
	MinConcernChars int

	RPS   float64
	Burst int

	SessionCapacity int
	Usage           UsageConfig
	Report          ReportConfig
}

type UsageConfig struct {
	PostgresDSN string
	LedgerPath  string
}

type ReportConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load reads .env (when present) and the process environment. It does not
// validate the credential; call Validate before running an analysis.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	env := firstNonEmpty(getenv("APP_ENV"), "local")
	return &Config{
		Port:     normalizePort(getenv("PORT")),
		Env:      env,
		LogLevel: firstNonEmpty(getenv("LOG_LEVEL"), "info"),

		APIKey:        firstNonEmpty(getenv("GEMINI_API_KEY"), getenv("GOOGLE_API_KEY")),
		FallbackModel: firstNonEmpty(getenv("MEDWISE_FALLBACK_MODEL"), llm.DefaultFallbackModel),
		ModelFamilies: splitList(getenv("MEDWISE_MODEL_FAMILIES"), llm.DefaultFamilies),
		MaxCandidates: intEnv("MEDWISE_MAX_CANDIDATES", 5),
		Generation: llmclient.GenerationConfig{
			Temperature:     temperatureEnv("MEDWISE_TEMPERATURE"),
			TopP:            float32(floatEnv("MEDWISE_TOP_P", float64(llmclient.DefaultTopP))),
			TopK:            intEnv("MEDWISE_TOP_K", llmclient.DefaultTopK),
			MaxOutputTokens: intEnv("MEDWISE_MAX_OUTPUT_TOKENS", llmclient.DefaultMaxOutputTokens),
		}.WithDefaults(),
		MinConcernChars: intEnv("MEDWISE_MIN_CONCERN_CHARS", assessment.DefaultMinConcernChars),

		RPS:   floatValue(firstNonEmpty(getenv("LLM_RPS"), getenv("GEMINI_RPS")), llm.DefaultRPS),
		Burst: intValue(firstNonEmpty(getenv("LLM_BURST"), getenv("GEMINI_BURST")), llm.DefaultBurst),

		SessionCapacity: intEnv("MEDWISE_SESSION_CAPACITY", session.DefaultCapacity),
		Usage: UsageConfig{
			PostgresDSN: getenv("USAGE_PG_DSN"),
			LedgerPath:  getenv("USAGE_LEDGER_PATH"),
		},
		Report: loadReportConfig(),
	}
}

// Validate reports a missing credential as a ConfigurationError.
func (c *Config) Validate() error {
	if c == nil || strings.TrimSpace(c.APIKey) == "" {
		return &assessment.ConfigurationError{
			Reason: "GEMINI_API_KEY is not set",
			Err:    llmclient.ErrMissingAPIKey,
		}
	}
	return nil
}

// IsLocal reports whether the process runs in the local development env.
func (c *Config) IsLocal() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "local")
}

func loadReportConfig() ReportConfig {
	endpoint := getenv("REPORT_S3_ENDPOINT")
	return ReportConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(getenv("REPORT_S3_REGION"), "us-east-1"),
		AccessKey: firstNonEmpty(getenv("REPORT_S3_ACCESS_KEY"), getenv("MINIO_ROOT_USER")),
		SecretKey: firstNonEmpty(getenv("REPORT_S3_SECRET_KEY"), getenv("MINIO_ROOT_PASSWORD")),
		Bucket:    firstNonEmpty(getenv("REPORT_S3_BUCKET"), "medwise-reports"),
		UseSSL:    boolValue(getenv("REPORT_S3_USE_SSL"), true),
	}
}

func normalizePort(raw string) string {
	if raw == "" {
		return ":8081"
	}
	if strings.HasPrefix(raw, ":") {
		return raw
	}
	return ":" + raw
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func intEnv(key string, def int) int {
	return intValue(getenv(key), def)
}

func floatEnv(key string, def float64) float64 {
	return floatValue(getenv(key), def)
}

// temperatureEnv returns nil when key is unset or unparsable so an explicit
// 0 can be told apart from a missing value.
func temperatureEnv(key string) *float32 {
	raw := getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil || v < 0 {
		return nil
	}
	return llmclient.Temperature(float32(v))
}

func intValue(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func floatValue(raw string, def float64) float64 {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func boolValue(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func splitList(raw string, def []string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
