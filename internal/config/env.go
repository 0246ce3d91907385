package config

import (
	"os"
	"strconv"
)

// Environment variables overriding file configuration.
const (
	EnvSpaceCM     = "MTEXT_LB_SPACE_CM"
	EnvKoreanSpace = "MTEXT_LB_KOREAN_SPACE"
	EnvAIAsID      = "MTEXT_LB_AI_AS_ID"
)

// ApplyEnv overlays environment variables onto cfg. Unset variables
// leave the file values alone; unparsable ones are ignored.
func ApplyEnv(cfg *Config) {
	overlayBool(EnvSpaceCM, &cfg.LineBreak.SpaceCM)
	overlayBool(EnvKoreanSpace, &cfg.LineBreak.KoreanSpace)
	overlayBool(EnvAIAsID, &cfg.LineBreak.AIAsID)
}

func overlayBool(env string, dst *bool) {
	val, ok := os.LookupEnv(env)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return
	}
	*dst = b
}
