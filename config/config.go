package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid        string `yaml:"appid" json:"appid"`
	BusinessName string `yaml:"business_name" json:"business_name"`
	Location     string `yaml:"location" json:"location"`
	Workdir      string `yaml:"workdir" json:"workdir"`
	Debug        bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Secret  string `yaml:"secret" json:"secret"`
	TokenTTL int   `yaml:"token_ttl" json:"token_ttl"` // hours
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

type SmtpConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	// OrdersInbox receives the business copy of every confirmation.
	OrdersInbox string `yaml:"orders_inbox" json:"orders_inbox"`
}

// WidgetConfig describes the transactional email widget used as the
// second submission transport on the client side.
type WidgetConfig struct {
	Endpoint   string `yaml:"endpoint" json:"endpoint"`
	ServiceID  string `yaml:"service_id" json:"service_id"`
	TemplateID string `yaml:"template_id" json:"template_id"`
	PublicKey  string `yaml:"public_key" json:"public_key"`
}

type CheckoutConfig struct {
	// CatalogURL and OrdersURL point at the storefront server in the
	// default deployment but may target any endpoint speaking the
	// sheet-values contract.
	CatalogURL string `yaml:"catalog_url" json:"catalog_url"`
	OrdersURL  string `yaml:"orders_url" json:"orders_url"`
	// QuantityPolicy selects how off-multiple quantities are corrected:
	// "snap" or "raise". See internal/cart.
	QuantityPolicy string        `yaml:"quantity_policy" json:"quantity_policy"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout"`
	ExportDir      string        `yaml:"export_dir" json:"export_dir"`
	JournalFile    string        `yaml:"journal_file" json:"journal_file"`
}

type BackupConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Cron    string `yaml:"cron" json:"cron"`
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	User    string `yaml:"user" json:"user"`
	Passwd  string `yaml:"passwd" json:"passwd"`
	Dir     string `yaml:"dir" json:"dir"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig      `yaml:"system" json:"system"`
	Web      WebConfig      `yaml:"web" json:"web"`
	Database DBConfig       `yaml:"database" json:"database"`
	Smtp     SmtpConfig     `yaml:"smtp" json:"smtp"`
	Widget   WidgetConfig   `yaml:"widget" json:"widget"`
	Checkout CheckoutConfig `yaml:"checkout" json:"checkout"`
	Backup   BackupConfig   `yaml:"backup" json:"backup"`
	Logger   LoggerConfig   `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:        "storefront",
		BusinessName: "Prime Cut Provisions",
		Location:     "America/New_York",
		Workdir:      "/var/storefront",
		Debug:        true,
	},
	Web: WebConfig{
		Host:     "0.0.0.0",
		Port:     1816,
		Secret:   "9b6de5cc-storefront-0cc4",
		TokenTTL: 24,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "storefront",
		User:     "postgres",
		Passwd:   "root",
		MaxConn:  100,
		IdleConn: 10,
	},
	Smtp: SmtpConfig{
		Enabled:     false,
		Host:        "smtp.gmail.com",
		Port:        587,
		From:        "orders@example.com",
		OrdersInbox: "orders@example.com",
	},
	Widget: WidgetConfig{
		Endpoint: "https://api.emailjs.com/api/v1.0/email/send",
	},
	Checkout: CheckoutConfig{
		CatalogURL:     "http://127.0.0.1:1816/api/catalog",
		OrdersURL:      "http://127.0.0.1:1816/api/orders",
		QuantityPolicy: "raise",
		Timeout:        15 * time.Second,
		ExportDir:      ".",
		JournalFile:    "orders.journal",
	},
	Backup: BackupConfig{
		Enabled: false,
		Cron:    "0 2 * * *",
		Port:    22,
		Dir:     "/backup/orders",
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "storefront.log",
	},
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "backup"), 0755)
}

// LoadConfig reads the YAML configuration file and applies environment
// overrides. A missing file is not an error; defaults are used.
func LoadConfig(cfile string) *AppConfig {
	base := *DefaultAppConfig
	cfg := &base
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}
	setEnvValue("STOREFRONT_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("STOREFRONT_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvValue("STOREFRONT_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("STOREFRONT_WEB_PORT", &cfg.Web.Port)
	setEnvValue("STOREFRONT_WEB_SECRET", &cfg.Web.Secret)
	setEnvValue("STOREFRONT_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("STOREFRONT_DB_PORT", &cfg.Database.Port)
	setEnvValue("STOREFRONT_DB_NAME", &cfg.Database.Name)
	setEnvValue("STOREFRONT_DB_USER", &cfg.Database.User)
	setEnvValue("STOREFRONT_DB_PWD", &cfg.Database.Passwd)
	setEnvValue("STOREFRONT_SMTP_HOST", &cfg.Smtp.Host)
	setEnvIntValue("STOREFRONT_SMTP_PORT", &cfg.Smtp.Port)
	setEnvValue("STOREFRONT_SMTP_USERNAME", &cfg.Smtp.Username)
	setEnvValue("STOREFRONT_SMTP_PASSWORD", &cfg.Smtp.Password)
	return cfg
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToBool(evalue)
	}
}

func setEnvIntValue(name string, val *int) {
	evalue := os.Getenv(name)
	if evalue == "" {
		return
	}
	if n, err := cast.ToIntE(evalue); err == nil {
		*val = n
	}
}
