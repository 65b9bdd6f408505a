// Package config загружает конфигурацию бота из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
// Если рядом лежит .env — он подхватывается до разбора.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Telegram ---
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	// Чаты, которые модерирует бот. Пусто — все группы, куда бота добавили.
	ModeratedChatIDsRaw string  `envconfig:"MODERATED_CHAT_IDS"`
	ModeratedChatIDs    []int64 `envconfig:"-"` // заполним вручную

	// --- Moderation ---
	// continue — пробуем все действия и только логируем провалы,
	// abort — первый провал прерывает обработку апдейта.
	OnActionFailure string `envconfig:"MODERATION_ON_ACTION_FAILURE" default:"continue"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Europe/Moscow"`

	// --- Bot runtime ---
	// Сколько апдейтов обрабатываем параллельно.
	BotMaxInflight int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	// Таймаут long polling (секунды)
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Metrics ---
	// Пустая строка выключает HTTP-сервер метрик.
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`

	// --- Journal ---
	JournalEnabled       bool          `envconfig:"JOURNAL_ENABLED" default:"false"`
	JournalRetention     time.Duration `envconfig:"JOURNAL_RETENTION" default:"720h"`
	JournalPruneSchedule string        `envconfig:"JOURNAL_PRUNE_SCHEDULE" default:"0 4 * * *"`

	// --- Database (только для журнала) ---
	// В Docker дефолт "postgres" (имя сервиса в docker-compose), для локалки DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"botuser"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"joinguard"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"1"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) Validate() error {
	switch c.OnActionFailure {
	case "continue", "abort":
	default:
		return fmt.Errorf("MODERATION_ON_ACTION_FAILURE должен быть continue или abort, получено %q", c.OnActionFailure)
	}
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT должен быть > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS должен быть > 0")
	}
	if !c.JournalEnabled {
		return nil
	}
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD обязателен при JOURNAL_ENABLED=true")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.JournalRetention <= 0 {
		return fmt.Errorf("JOURNAL_RETENTION должен быть > 0")
	}
	if _, err := cron.ParseStandard(c.JournalPruneSchedule); err != nil {
		return fmt.Errorf("JOURNAL_PRUNE_SCHEDULE: %w", err)
	}
	return nil
}

// Location возвращает часовой пояс приложения (для cron), UTC+3 если зона не найдена.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

// Load читает .env (если есть) и переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("не удалось прочитать .env: %w", err)
	}
	return load()
}

func load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	ids, err := parseInt64CSV(cfg.ModeratedChatIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("MODERATED_CHAT_IDS parse: %w", err)
	}
	cfg.ModeratedChatIDs = ids

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInt64CSV(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int64 %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
