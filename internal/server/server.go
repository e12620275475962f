// Package server exposes the planners over a small JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/config"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/planner"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/runner"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/constants"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options configures the handler returned by NewHandler.
type Options struct {
	MaxBodySize int64
	Version     string
	// Defaults supplies market data, inventory and layout settings for
	// fields a request leaves out. It is never modified.
	Defaults *config.Configuration
	// Limiter, when set, guards the plan endpoints.
	Limiter *RateLimiter
}

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	defaults    *config.Configuration
}

// NewHandler constructs the HTTP handler that serves the planning API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		defaults:    opts.Defaults,
	}

	limit := func(next http.HandlerFunc) http.HandlerFunc {
		if opts.Limiter == nil {
			return next
		}
		return opts.Limiter.Middleware(next)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/plan/bundle", limit(h.handleBundle))
	mux.HandleFunc("/api/plan/layout", limit(h.handleLayout))
	mux.HandleFunc("/api/config/export", h.handleConfigExport)
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

// bundleRequest overlays the loaded defaults for one bundle plan. Market
// tables are merged per symbol; inventory and caps replace the defaults.
type bundleRequest struct {
	TargetID     string                    `json:"targetId"`
	TargetReward *float64                  `json:"targetReward"`
	Leaderboard  *config.LeaderboardConfig `json:"leaderboard"`
	Symbols      []string                  `json:"symbols"`
	Caps         map[string]float64        `json:"caps"`
	Prices       map[string]float64        `json:"prices"`
	Points       map[string]float64        `json:"points"`
	Secondary    map[string]float64        `json:"secondary"`
	Inventory    map[string]float64        `json:"inventory"`
	Simulate     *config.SimulateConfig    `json:"simulate"`
}

type layoutRequest struct {
	Budget     *float64                   `json:"budget"`
	BatchSizes []int                      `json:"batchSizes"`
	Candidates []planner.UpgradeCandidate `json:"candidates"`
	Recipes    []planner.Recipe           `json:"recipes"`
	Prices     map[string]float64         `json:"prices"`
	Inventory  map[string]float64         `json:"inventory"`
	Simulate   *config.SimulateConfig     `json:"simulate"`
}

type planResponse struct {
	PlanID string `json:"planId"`
	*runner.Report
	CSV      string `json:"csv"`
	Duration string `json:"duration"`
}

// requestError carries the status a failed request should be answered with.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...interface{}) error {
	return &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func (h *handler) handleBundle(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBundle"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, http.MethodPost)
		return
	}

	start := time.Now()
	var req bundleRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, err, op)
		return
	}

	conf := h.defaults.Clone()
	conf.Layout = config.LayoutConfig{}
	if req.TargetID != "" {
		conf.Market.TargetID = req.TargetID
	}
	conf.Market.Prices = mergeSymbols(conf.Market.Prices, req.Prices)
	conf.Market.Points = mergeSymbols(conf.Market.Points, req.Points)
	conf.Market.Secondary = mergeSymbols(conf.Market.Secondary, req.Secondary)
	applyInventory(conf, req.Inventory, req.Simulate)

	if req.TargetReward != nil || req.Leaderboard != nil {
		conf.Bundle.TargetReward = req.TargetReward
		conf.Bundle.Leaderboard = req.Leaderboard
	}
	if req.Symbols != nil {
		conf.Bundle.Symbols = req.Symbols
	}
	if req.Caps != nil {
		conf.Bundle.Caps = req.Caps
	}
	if !conf.Bundle.Enabled() {
		h.fail(w, badRequest("a targetReward or leaderboard is required"), op)
		return
	}

	h.plan(w, r, conf, start, op)
}

func (h *handler) handleLayout(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLayout"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, http.MethodPost)
		return
	}

	start := time.Now()
	var req layoutRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, err, op)
		return
	}

	conf := h.defaults.Clone()
	conf.Bundle = config.BundleConfig{}
	conf.Market.Prices = mergeSymbols(conf.Market.Prices, req.Prices)
	applyInventory(conf, req.Inventory, req.Simulate)

	if req.Budget != nil {
		conf.Layout.Budget = *req.Budget
	}
	if req.BatchSizes != nil {
		conf.Layout.BatchSizes = req.BatchSizes
	}
	if req.Candidates != nil || req.Recipes != nil {
		conf.Layout.Candidates = req.Candidates
		conf.Layout.Recipes = req.Recipes
	}
	if !conf.Layout.Enabled() {
		h.fail(w, badRequest("at least one batch size is required"), op)
		return
	}

	h.plan(w, r, conf, start, op)
}

func (h *handler) plan(w http.ResponseWriter, r *http.Request, conf *config.Configuration, start time.Time, op string) {
	planRunner, err := runner.NewRunner(h.logger, conf)
	if err != nil {
		h.fail(w, badRequest("%v", err), op)
		return
	}

	report, err := planRunner.Run(r.Context())
	if err != nil {
		if errors.Is(err, planner.ErrInvalidInput) {
			err = badRequest("%v", err)
		}
		h.fail(w, err, op)
		return
	}

	elapsed := time.Since(start)
	response := planResponse{
		PlanID:   uuid.NewString(),
		Report:   report,
		CSV:      output.CsvString(report),
		Duration: elapsed.String(),
	}

	h.logger.Info("plan computed",
		zap.String("op", op),
		zap.String("planId", response.PlanID),
		zap.Int("warnings", len(report.Warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, http.MethodGet)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

type exportResponse struct {
	ConfigYAML string   `json:"configYaml"`
	Warnings   []string `json:"warnings,omitempty"`
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, http.MethodPost)
		return
	}

	var payload map[string]interface{}
	if err := h.decode(w, r, &payload); err != nil {
		h.fail(w, err, op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.fail(w, badRequest("failed to encode configuration: %v", err), op)
		return
	}

	// Round-trip through the loader so the download is known to be usable.
	conf, err := config.LoadConfigurationFromReader(bytes.NewReader(yamlBytes))
	if err != nil {
		h.fail(w, badRequest("%v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, exportResponse{
		ConfigYAML: string(yamlBytes),
		Warnings:   conf.ValidateConfiguration(),
	})
}

// decode reads a single JSON document from the body, rejecting unknown
// fields and bodies over the size limit.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return &requestError{
				status: http.StatusRequestEntityTooLarge,
				msg:    fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize),
			}
		}
		return badRequest("failed to decode request: %v", err)
	}
	return nil
}

var configKeyOrder = []string{"logging", "output", "market", "inventory", "simulate", "bundle", "layout"}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range configKeyOrder {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	return yaml.Marshal(orderedConfig{items: items})
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, item := range o.items {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item.key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

// mergeSymbols returns base with overrides applied per canonical symbol.
func mergeSymbols(base, overrides map[string]float64) map[string]float64 {
	if len(overrides) == 0 {
		return base
	}
	merged := make(map[string]float64, len(base)+len(overrides))
	for symbol, value := range base {
		merged[config.CanonicalSymbol(symbol)] = value
	}
	for symbol, value := range overrides {
		merged[config.CanonicalSymbol(symbol)] = value
	}
	return merged
}

func applyInventory(conf *config.Configuration, inventory map[string]float64, simulate *config.SimulateConfig) {
	if inventory != nil {
		conf.Inventory = inventory
	}
	if simulate != nil {
		conf.Simulate = *simulate
	}
}

func (h *handler) methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeJSONError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}

func (h *handler) fail(w http.ResponseWriter, err error, op string) {
	status := http.StatusInternalServerError
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		status = reqErr.status
	}

	h.logger.Error("plan request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err),
	)

	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeJSON encodes payload before touching the response so an encoding
// failure still produces a well-formed 500.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.Int("status", status),
			zap.Error(err),
		)
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
