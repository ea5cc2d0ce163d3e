package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ProviderConfig holds the settings for one AI backend.
// APIKey initially stores the NAME of the environment variable holding the key;
// LoadConfig replaces it with the actual value.
type ProviderConfig struct {
	Label       string  `mapstructure:"label"`
	APIKey      string  `mapstructure:"api_key_env"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// VocabularyConfig holds the keyword lists driving message classification.
// They are configuration data so they can be revised without touching the
// dispatch algorithm.
type VocabularyConfig struct {
	Greetings       []string `mapstructure:"greetings"`
	Thanks          []string `mapstructure:"thanks"`
	Farewells       []string `mapstructure:"farewells"`
	QuestionMarkers []string `mapstructure:"question_markers"`
	LegalTopics     []string `mapstructure:"legal_topics"`
	MaxSimpleWords  int      `mapstructure:"max_simple_words"`
}

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port           string `mapstructure:"port"`
		WebhookBaseURL string `mapstructure:"webhook_base_url"`
	} `mapstructure:"server"`
	Database struct {
		DSN string `mapstructure:"dsn"` // "memory" or a SQLite file path
	} `mapstructure:"database"`
	Bot struct {
		Token      string `mapstructure:"token_env"` // env var name, resolved at load
		Channel    string `mapstructure:"channel"`   // required channel, e.g. "@uzb_huquq_kanali"
		DailyLimit int    `mapstructure:"daily_limit"`
	} `mapstructure:"bot"`
	Providers struct {
		Serious     ProviderConfig `mapstructure:"serious"`
		Lightweight ProviderConfig `mapstructure:"lightweight"`
	} `mapstructure:"providers"`
	Prompts struct {
		System     string `mapstructure:"system"`     // base legal-assistant persona
		Empathetic string `mapstructure:"empathetic"` // variant for the serious provider
	} `mapstructure:"prompts"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig loads configuration from config.yaml and environment variables.
// Secrets (bot token, provider API keys) are never stored in the YAML file;
// the file names the environment variables and LoadConfig resolves them.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../config") // for running from package test directories

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration: %v", err)
	}

	// Environment variable overrides for non-secret settings.
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if base := os.Getenv("WEBHOOK_BASE_URL"); base != "" {
		AppConfig.Server.WebhookBaseURL = base
		log.Println("INFO: [Config] Webhook base URL overridden by environment variable WEBHOOK_BASE_URL.")
	}
	if channel := os.Getenv("REQUIRED_CHANNEL"); channel != "" {
		AppConfig.Bot.Channel = channel
		log.Printf("INFO: [Config] Required channel overridden by environment variable REQUIRED_CHANNEL: %s", channel)
	}

	// Resolve secrets from the environment variables named in the config.
	AppConfig.Bot.Token = resolveSecret("bot token", AppConfig.Bot.Token)
	AppConfig.Providers.Serious.APIKey = resolveSecret("serious provider API key", AppConfig.Providers.Serious.APIKey)
	AppConfig.Providers.Lightweight.APIKey = resolveSecret("lightweight provider API key", AppConfig.Providers.Lightweight.APIKey)

	log.Println("INFO: [Config] Configuration loading complete.")
}

// resolveSecret treats the configured value as an environment variable name and
// returns that variable's value. A value that does not look like an env var
// name (no _TOKEN/_KEY suffix) is assumed to be the secret itself, which is
// discouraged but tolerated.
func resolveSecret(what, envName string) string {
	if envName == "" {
		log.Printf("WARN: [Config] No environment variable configured for %s.", what)
		return ""
	}
	if value := os.Getenv(envName); value != "" {
		log.Printf("INFO: [Config] Loaded %s from environment variable '%s'.", what, envName)
		return value
	}
	if strings.HasSuffix(envName, "_TOKEN") || strings.HasSuffix(envName, "_KEY") {
		log.Printf("WARN: [Config] Environment variable '%s' for %s is not set.", envName, what)
		return ""
	}
	log.Printf("WARN: [Config] %s appears to be set directly in config.yaml. Consider using an environment variable instead.", what)
	return envName
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.dsn", "memory")
	viper.SetDefault("bot.token_env", "BOT_TOKEN")
	viper.SetDefault("bot.channel", "@uzb_huquq_kanali")
	viper.SetDefault("bot.daily_limit", 10)

	viper.SetDefault("providers.serious.label", "GPT-4o")
	viper.SetDefault("providers.serious.api_key_env", "OPENAI_API_KEY")
	viper.SetDefault("providers.serious.base_url", "https://api.openai.com/v1")
	viper.SetDefault("providers.serious.model", "gpt-4o")
	viper.SetDefault("providers.serious.temperature", 0.4)
	viper.SetDefault("providers.serious.max_tokens", 1200)

	viper.SetDefault("providers.lightweight.label", "Gemini Flash")
	viper.SetDefault("providers.lightweight.api_key_env", "GEMINI_API_KEY")
	viper.SetDefault("providers.lightweight.base_url", "https://generativelanguage.googleapis.com/v1beta/openai/")
	viper.SetDefault("providers.lightweight.model", "gemini-2.0-flash")
	viper.SetDefault("providers.lightweight.temperature", 0.3)
	viper.SetDefault("providers.lightweight.max_tokens", 700)

	viper.SetDefault("prompts.system",
		"Сен юрист ёрдамчиси ботсан. Саволларга фақат Ўзбекистон қонунчилиги асосида жавоб бер. "+
			"Иложи бўлса, тегишли кодекс ва модданинг номини келтир. "+
			"Агар савол мураккаб ёки аниқ вазият бўлса, охирида адвокат хизматидан фойдаланишни тавсия қил.")
	viper.SetDefault("prompts.empathetic",
		"Сен тажрибали юрист ёрдамчиси ботсан. Фойдаланувчи оғир вазиятда бўлиши мумкин, шунинг учун хушмуомала ва ҳамдард бўл. "+
			"Саволларга фақат Ўзбекистон қонунчилиги асосида жавоб бер ва тегишли кодекс ҳамда модда рақамини келтир. "+
			"Мураккаб ёки аниқ вазиятларда албатта адвокатга мурожаат қилишни тавсия қил.")

	viper.SetDefault("vocabulary.max_simple_words", 15)
	viper.SetDefault("vocabulary.greetings", []string{
		"salom", "салом", "assalomu", "ассалому", "assalom", "xayrli kun", "hayrli kun",
		"хайрли кун", "привет", "здравствуйте", "hello",
	})
	viper.SetDefault("vocabulary.thanks", []string{
		"rahmat", "раҳмат", "рахмат", "tashakkur", "ташаккур", "minnatdorman",
		"миннатдорман", "спасибо", "thanks", "thank you",
	})
	viper.SetDefault("vocabulary.farewells", []string{
		"xayr", "хайр", "ko'rishguncha", "korishguncha", "кўришгунча", "до свидания",
		"пока", "bye", "goodbye",
	})
	viper.SetDefault("vocabulary.question_markers", []string{
		"?", "qanday", "қандай", "qanaqa", "қанақа", "nima qil", "нима қил",
		"как", "что делать", "how", "what",
	})
	viper.SetDefault("vocabulary.legal_topics", []string{
		"sud", "суд", "jinoyat", "жиноят", "qamoq", "қамоқ", "hibs", "ҳибс",
		"tergov", "тергов", "militsiya", "милиция", "politsiya", "полиция",
		"prokuror", "прокурор", "zo'ravonlik", "zoravonlik", "зўравонлик",
		"kaltakla", "калтакла", "hujum", "ҳужум",
	})
}
