// Package config loads folio settings from defaults, an optional YAML config
// file, .env files and FOLIO_* environment variables, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"folio/internal/derive"
	"folio/internal/logger"
)

// EnvPrefix is prepended to every environment override, e.g. FOLIO_CONTENT_ROOT.
const EnvPrefix = "FOLIO"

// Config is the full folio configuration.
type Config struct {
	Content ContentConfig `mapstructure:"content"`
	Site    SiteConfig    `mapstructure:"site"`
	Server  ServerConfig  `mapstructure:"server"`
	Build   BuildConfig   `mapstructure:"build"`
	Log     logger.Config `mapstructure:"log"`
}

// ContentConfig locates and filters the post sources.
type ContentConfig struct {
	Root          string   `mapstructure:"root"`
	Ignore        []string `mapstructure:"ignore"`
	ExcerptLength int      `mapstructure:"excerpt_length"`
}

// SiteConfig describes the public site the posts are published on.
type SiteConfig struct {
	Name          string `mapstructure:"name"`
	BaseURL       string `mapstructure:"base_url"`
	BlogPath      string `mapstructure:"blog_path"`
	DefaultAuthor string `mapstructure:"default_author"`
}

// ServerConfig configures `folio serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// BuildConfig configures `folio build`.
type BuildConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	StaticDir string `mapstructure:"static_dir"`
}

// Load reads configuration. cfgFile may be empty, in which case ./folio.yaml
// is used if present. A named file that does not exist is an error.
func Load(cfgFile string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("content.root", "content/blog")
	v.SetDefault("content.ignore", []string{})
	v.SetDefault("content.excerpt_length", derive.DefaultExcerptLength)
	v.SetDefault("site.name", "Riverside Learning")
	v.SetDefault("site.base_url", "http://localhost:8080")
	v.SetDefault("site.blog_path", "/blog")
	v.SetDefault("site.default_author", derive.DefaultAuthor)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("build.output_dir", "public")
	v.SetDefault("build.static_dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", true)
}

// loadEnvFiles loads .env.local then .env; variables already set win.
// ENV_FILE, when set, names the only file to load.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func (c *Config) normalize() {
	c.Site.BaseURL = strings.TrimRight(c.Site.BaseURL, "/")
	bp := strings.Trim(c.Site.BlogPath, "/")
	if bp == "" {
		c.Site.BlogPath = ""
	} else {
		c.Site.BlogPath = "/" + bp
	}
}

// Validate reports configuration that cannot work.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Content.Root) == "" {
		return errors.New("config: content.root must not be empty")
	}
	if c.Content.ExcerptLength < 4 {
		return fmt.Errorf("config: content.excerpt_length must be at least 4, got %d", c.Content.ExcerptLength)
	}
	u, err := url.Parse(c.Site.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("config: site.base_url must be an absolute URL, got %q", c.Site.BaseURL)
	}
	return nil
}

// PostURL returns the public URL of a post.
func (s SiteConfig) PostURL(slug string) string {
	return s.BaseURL + s.BlogPath + "/" + slug
}

// PostPath returns the site-relative path of a post.
func (s SiteConfig) PostPath(slug string) string {
	return s.BlogPath + "/" + slug
}
