package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Qiuzg/go-md2docx/internal/config"
)

// envPrefix marks the environment variables read by the CLI.
const envPrefix = "MD2DOCX_"

// envConfig holds configuration from environment variables, for CI jobs
// that cannot ship a YAML file.
type envConfig struct {
	ConfigPath string        // MD2DOCX_CONFIG: config name or path
	Timeout    time.Duration // MD2DOCX_TIMEOUT: conversion timeout
	Workers    int           // MD2DOCX_WORKERS: parallel workers

	InputDir  string // MD2DOCX_INPUT_DIR
	OutputDir string // MD2DOCX_OUTPUT_DIR
	BaseURL   string // MD2DOCX_BASE_URL: image base URL
	PageSize  string // MD2DOCX_PAGE_SIZE
	Style     string // MD2DOCX_STYLE: style sheet name
	AssetPath string // MD2DOCX_ASSET_PATH
	Author    string // MD2DOCX_AUTHOR
}

// knownEnvVars lists valid MD2DOCX_* variables, for typo warnings.
var knownEnvVars = map[string]bool{
	"MD2DOCX_CONFIG":     true,
	"MD2DOCX_TIMEOUT":    true,
	"MD2DOCX_WORKERS":    true,
	"MD2DOCX_INPUT_DIR":  true,
	"MD2DOCX_OUTPUT_DIR": true,
	"MD2DOCX_BASE_URL":   true,
	"MD2DOCX_PAGE_SIZE":  true,
	"MD2DOCX_STYLE":      true,
	"MD2DOCX_ASSET_PATH": true,
	"MD2DOCX_AUTHOR":     true,
}

// loadEnvConfig reads the MD2DOCX_* variables. Unparseable numbers and
// durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MD2DOCX_CONFIG"),
		InputDir:   getenv("MD2DOCX_INPUT_DIR"),
		OutputDir:  getenv("MD2DOCX_OUTPUT_DIR"),
		BaseURL:    getenv("MD2DOCX_BASE_URL"),
		PageSize:   getenv("MD2DOCX_PAGE_SIZE"),
		Style:      getenv("MD2DOCX_STYLE"),
		AssetPath:  getenv("MD2DOCX_ASSET_PATH"),
		Author:     getenv("MD2DOCX_AUTHOR"),
	}

	if v := getenv("MD2DOCX_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := getenv("MD2DOCX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	return cfg
}

// warnUnknownEnvVars reports MD2DOCX_* variables that are not recognized.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig fills empty config fields from the environment.
// Precedence: CLI flags > env vars > config file > defaults; flags are
// merged afterwards by mergeFlags.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIfEmpty(&cfg.Input.DefaultDir, env.InputDir)
	setIfEmpty(&cfg.Output.DefaultDir, env.OutputDir)
	setIfEmpty(&cfg.Images.BaseURL, env.BaseURL)
	setIfEmpty(&cfg.Page.Size, strings.ToLower(env.PageSize))
	setIfEmpty(&cfg.Assets.Style, env.Style)
	setIfEmpty(&cfg.Assets.BasePath, env.AssetPath)
	setIfEmpty(&cfg.Document.Author, env.Author)
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
