package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kBool
)

type keySpec struct {
	key    string
	typ    keyType
	env    string
	secret bool
	apply  func(cfg *Config, v any)
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "ASHA_SERVER_PORT",
		apply: func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
	},
	{
		key: "storage.data_dir", typ: kString, env: "ASHA_STORAGE_DATA_DIR",
		apply: func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
	},
	{
		key: "classifier.openai_api_key", typ: kString, env: "ASHA_OPENAI_API_KEY",
		secret: true,
		apply:  func(cfg *Config, v any) { cfg.Classifier.OpenAIAPIKey = v.(string) },
	},
	{
		key: "classifier.model", typ: kString, env: "ASHA_CLASSIFIER_MODEL",
		apply: func(cfg *Config, v any) { cfg.Classifier.Model = v.(string) },
	},
	{
		key: "classifier.timeout_seconds", typ: kInt, env: "ASHA_CLASSIFIER_TIMEOUT_SECONDS",
		apply: func(cfg *Config, v any) { cfg.Classifier.TimeoutSeconds = v.(int) },
	},
	{
		key: "classifier.rules_only", typ: kBool, env: "ASHA_CLASSIFIER_RULES_ONLY",
		apply: func(cfg *Config, v any) { cfg.Classifier.RulesOnly = v.(bool) },
	},
	{
		key: "telephony.account_sid", typ: kString, env: "ASHA_TWILIO_ACCOUNT_SID",
		apply: func(cfg *Config, v any) { cfg.Telephony.AccountSID = v.(string) },
	},
	{
		key: "telephony.auth_token", typ: kString, env: "ASHA_TWILIO_AUTH_TOKEN",
		secret: true,
		apply:  func(cfg *Config, v any) { cfg.Telephony.AuthToken = v.(string) },
	},
	{
		key: "telephony.from_number", typ: kString, env: "ASHA_TWILIO_FROM_NUMBER",
		apply: func(cfg *Config, v any) { cfg.Telephony.FromNumber = v.(string) },
	},
	{
		key: "referral.centers", typ: kString, env: "ASHA_REFERRAL_CENTERS",
		apply: func(cfg *Config, v any) { cfg.Referral.Centers = v.(string) },
	},
	{
		key: "admin.token", typ: kString, env: "ASHA_ADMIN_TOKEN",
		secret: true,
		apply:  func(cfg *Config, v any) { cfg.Admin.Token = v.(string) },
	},
	{
		key: "log.level", typ: kString, env: "ASHA_LOG_LEVEL",
		apply: func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
	},
}

func applyBackend(cfg *Config, b *fileBackend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		switch s.typ {
		case kString:
			v, ok, err := b.getString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.getInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kBool:
			v, ok, err := b.getBool(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		case kBool:
			if b, err := strconv.ParseBool(raw); err == nil {
				s.apply(cfg, b)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse bool from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
