package sqlnorm

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/honeynil/sqlnorm/internal/lrucache"
	"github.com/honeynil/sqlnorm/internal/sqlast"
)

// ProcessedState is the immutable result of Compile.
type ProcessedState struct {
	FinalSQL         string
	FinalParameters  any
	PlaceholderList  ParameterInfoList
	AnalysisMetadata map[string]any
}

// CompileFlags toggles the optional stages of a Compile call.
type CompileFlags struct {
	// IsParsed requests the AST oracle be consulted.
	// When false, the pipeline runs the text-only path unconditionally.
	IsParsed bool

	// StrictParse surfaces a ParseError to the caller instead of
	// degrading to the text-only path ParseError row.
	StrictParse bool

	// Dialect is passed through to the AST oracle.
	Dialect string

	// EnableSafetyScan runs step E5.
	EnableSafetyScan bool

	// SafetyScan configures which E5 findings are fatal. Only consulted
	// when EnableSafetyScan is set.
	SafetyScan SafetyScanConfig

	// EnableNullElision runs step E3.
	EnableNullElision bool

	// EnableLiteralParameterization runs step E1. It only has an effect
	// when the caller supplied no parameters of their own.
	EnableLiteralParameterization bool

	// IsMany treats params as a list of parameter sets and expands the
	// statement into a ";\n"-joined script, one statement per set
	// (step E4), for engines without native multi-row DML binds.
	IsMany bool
}

const (
	defaultLexCacheCapacity      = 1000
	defaultASTFragmentCapacity   = 5000
	defaultCompiledCacheCapacity = 1000
)

// Processor owns the three caches: lexed placeholder lists, parsed
// statements, and compiled results. A package-level default instance
// backs the plain-function entry points; callers that want isolated
// caches (e.g. per-test) can construct their own with NewProcessor.
type Processor struct {
	lexCache      *lrucache.Cache[string, ParameterInfoList]
	astCache      *lrucache.Cache[string, astFragment]
	compiledCache *lrucache.Cache[string, ProcessedState]
}

type astFragment struct {
	stmt           *sqlast.Statement
	parameterCount int
}

// ProcessorConfig overrides cache capacities at construction time.
// Zero fields keep the defaults.
type ProcessorConfig struct {
	LexCacheCapacity      int
	ASTFragmentCapacity   int
	CompiledCacheCapacity int
}

// NewProcessor builds a Processor with the default cache capacities.
func NewProcessor() *Processor {
	return NewProcessorWithConfig(ProcessorConfig{})
}

// NewProcessorWithConfig builds a Processor with the given cache
// capacity overrides.
func NewProcessorWithConfig(cfg ProcessorConfig) *Processor {
	if cfg.LexCacheCapacity <= 0 {
		cfg.LexCacheCapacity = defaultLexCacheCapacity
	}
	if cfg.ASTFragmentCapacity <= 0 {
		cfg.ASTFragmentCapacity = defaultASTFragmentCapacity
	}
	if cfg.CompiledCacheCapacity <= 0 {
		cfg.CompiledCacheCapacity = defaultCompiledCacheCapacity
	}
	return &Processor{
		lexCache:      lrucache.New[string, ParameterInfoList](cfg.LexCacheCapacity),
		astCache:      lrucache.New[string, astFragment](cfg.ASTFragmentCapacity),
		compiledCache: lrucache.New[string, ProcessedState](cfg.CompiledCacheCapacity),
	}
}

var defaultProcessor = NewProcessor()

// Compile normalizes sql and params for cfg using the shared default
// Processor.
func Compile(sql string, params any, cfg DriverConfig, flags CompileFlags) (ProcessedState, error) {
	return defaultProcessor.Compile(sql, params, cfg, flags)
}

// ClearCaches empties all three default caches.
func ClearCaches() {
	defaultProcessor.ClearCaches()
}

// CacheStatsReport is the struct returned by CacheStats, one entry per
// cache.
type CacheStatsReport struct {
	Lexer    lrucache.Stats
	AST      lrucache.Stats
	Compiled lrucache.Stats
}

// CacheStats reports hit/miss/eviction counters for all three caches.
func CacheStats() CacheStatsReport {
	return defaultProcessor.CacheStats()
}

func (p *Processor) ClearCaches() {
	p.lexCache.Clear()
	p.astCache.Clear()
	p.compiledCache.Clear()
}

func (p *Processor) CacheStats() CacheStatsReport {
	return CacheStatsReport{
		Lexer:    p.lexCache.StatsSnapshot(),
		AST:      p.astCache.StatsSnapshot(),
		Compiled: p.compiledCache.StatsSnapshot(),
	}
}

// Compile runs the full normalization pipeline end to end.
func (p *Processor) Compile(sql string, params any, cfg DriverConfig, flags CompileFlags) (ProcessedState, error) {
	cacheKey := compileCacheKey(sql, params, cfg, flags.IsParsed)
	if cached, ok := p.compiledCache.Get(cacheKey); ok {
		return cached, nil
	}

	placeholders := p.lex(sql)

	// Step 3: nothing to do. Requested AST passes (literal
	// parameterization, safety scan, many-expansion) can transform a
	// statement with no placeholders, so they keep the pipeline alive.
	astWork := flags.IsParsed && (flags.EnableLiteralParameterization || flags.EnableSafetyScan || flags.IsMany)
	if len(placeholders) == 0 && cfg.TypeCoercionMap == nil && cfg.OutputTransformer == nil && !astWork {
		state := ProcessedState{
			FinalSQL:         sql,
			FinalParameters:  params,
			PlaceholderList:  placeholders,
			AnalysisMetadata: map[string]any{},
		}
		p.compiledCache.Set(cacheKey, state)
		return state, nil
	}

	metadata := map[string]any{}

	var stmt *sqlast.Statement
	if flags.IsParsed {
		frag, err := p.parse(sql, flags.Dialect)
		if err != nil {
			if flags.StrictParse {
				return ProcessedState{}, newParseError(err)
			}
			metadata["parse_failed"] = true
		} else {
			stmt = frag.stmt
		}
	}

	workingSQL := sql
	workingPlaceholders := placeholders
	workingParams := params

	// Parse-backed transforms: COPY extraction first, then NULL
	// elision, then literal parameterization, then the analysis steps,
	// then many-statement expansion.
	if stmt != nil {
		if stmt.Kind == sqlast.KindCopy {
			workingParams = extractCopyData(workingSQL, workingParams, metadata)
		}

		if flags.EnableNullElision {
			workingSQL, workingPlaceholders, workingParams = elideNullParameters(workingSQL, workingPlaceholders, workingParams, metadata)
		}

		if flags.EnableLiteralParameterization {
			workingSQL, workingPlaceholders, workingParams = parameterizeLiterals(workingSQL, stmt, workingParams, metadata)
		}

		if flags.EnableSafetyScan {
			warnings, issues := safetyScan(stmt, workingSQL, flags.SafetyScan)
			metadata["validation_warnings"] = warnings
			if len(issues) > 0 {
				metadata["validation_issues"] = issues
			}
		}

		metadata["tables"] = stmt.Tables
		metadata["columns"] = stmt.Columns
		metadata["joins"] = stmt.Joins
		metadata["operation_type"] = operationType(stmt)
		metadata["returns_rows"] = stmt.ReturnsRows

		if flags.IsMany {
			if sets, ok := workingParams.([]any); ok {
				workingSQL, workingPlaceholders, workingParams = expandManyStatements(workingSQL, workingPlaceholders, sets, metadata)
			}
		}
	}

	// Step 6: IN-list expansion.
	if !cfg.HasNativeListExpansion && !flags.IsMany {
		workingSQL, workingPlaceholders, workingParams = expandInLists(workingSQL, workingPlaceholders, workingParams)
	}

	// Step 7: typed wrapping then type coercion. Wrapping precedes the
	// coercion map so it can key on the inferred DataType.
	workingParams = WrapParameters(workingParams, workingPlaceholders)
	workingParams = coerceParameters(workingParams, cfg.TypeCoercionMap)

	// Unless the driver opts into mixed input, two conditions are
	// rejected rather than silently converted: placeholder styles mixed
	// within one statement (unrewritable without guessing), and a
	// container whose shape disagrees with the placeholder addressing
	// (named placeholders fed from an ordered sequence, or vice versa).
	if !cfg.AllowMixedParameterStyles {
		if len(workingPlaceholders.Styles()) > 1 {
			return ProcessedState{}, newUnsupportedParameterStyleError(workingPlaceholders.DominantStyle())
		}
		if ph, observed, ok := containerShapeMismatch(workingParams, workingPlaceholders); ok {
			expected := "sequence"
			if ph.Style.Named() {
				expected = "map"
			}
			return ProcessedState{}, newParameterStyleMismatchError(ph, observed, expected)
		}
	}

	// Step 8: execution-style selection. The pre-reshape container is
	// kept for step 10: Reshape returns nil for STATIC, but the static
	// embedder still needs the values. PreserveParameterFormat keeps the
	// caller's container shape when the placeholders themselves need no
	// conversion.
	targetStyle := selectExecutionStyle(workingPlaceholders, cfg)
	preReshapeParams := workingParams
	needsRewrite := workingPlaceholders.NeedsConversion(targetStyle)
	if needsRewrite || (shapeMismatch(workingParams, targetStyle) && !cfg.PreserveParameterFormat) {
		reshaped, err := Reshape(workingParams, workingPlaceholders, targetStyle)
		if err != nil {
			return ProcessedState{}, err
		}
		if targetStyle != STATIC {
			rewritten := Rewrite(workingSQL, workingPlaceholders, targetStyle)
			// Re-lex rather than hand-derive positions: placeholder text
			// lengths differ across styles (e.g. "?" vs "@param_0"), so
			// the old ParameterInfo.Position values no longer line up
			// with the rewritten string.
			workingPlaceholders = Lex(rewritten)
			workingSQL = rewritten
		}
		workingParams = reshaped
	}

	// Step 9: output hook.
	if cfg.OutputTransformer != nil {
		workingSQL, workingParams = cfg.OutputTransformer(workingSQL, workingParams)
	}

	// Step 10: STATIC embedding.
	if targetStyle == STATIC {
		embedded, err := embedStaticLiterals(workingSQL, workingPlaceholders, preReshapeParams)
		if err != nil {
			return ProcessedState{}, err
		}
		workingSQL = embedded
		workingParams = nil
	}

	state := ProcessedState{
		FinalSQL:         workingSQL,
		FinalParameters:  workingParams,
		PlaceholderList:  workingPlaceholders,
		AnalysisMetadata: metadata,
	}

	p.compiledCache.Set(cacheKey, state)
	return state, nil
}

func (p *Processor) lex(sql string) ParameterInfoList {
	if cached, ok := p.lexCache.Get(sql); ok {
		return cached
	}
	result := Lex(sql)
	p.lexCache.Set(sql, result)
	return result
}

func (p *Processor) parse(sql, dialect string) (astFragment, error) {
	key := normalizeForASTCache(sql) + "\x00" + dialect
	frag, err := p.astCache.GetOrFill(key, func() (astFragment, error) {
		stmt, err := sqlast.Parse(sql, dialect)
		if err != nil {
			return astFragment{}, err
		}
		return astFragment{stmt: stmt, parameterCount: len(p.lex(sql))}, nil
	})
	if err != nil {
		return astFragment{}, err
	}
	// Hand out a copy so callers may mutate freely without corrupting
	// the cached entry.
	stmtCopy := *frag.stmt
	return astFragment{stmt: &stmtCopy, parameterCount: frag.parameterCount}, nil
}

func normalizeForASTCache(sql string) string {
	return strings.ToLower(strings.TrimSpace(sql))
}

// compileCacheKey hashes (raw sql, parameter shape, driver identity,
// parse flag); two calls agreeing on all four share a compiled entry.
func compileCacheKey(sql string, params any, cfg DriverConfig, isParsed bool) string {
	h := xxhash.New()
	_, _ = h.Write([]byte(sql))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(shapeHash(params)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(cfg.Identity))
	_, _ = h.Write([]byte{0})
	if isParsed {
		_, _ = h.Write([]byte{1})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// shapeHash fingerprints the container kind plus ordered types-or-keys,
// deliberately excluding values so that calls differing only in
// parameter values share a cache entry.
func shapeHash(params any) string {
	var b strings.Builder
	switch p := params.(type) {
	case nil:
		b.WriteString("nil")
	case map[string]any:
		b.WriteString("map:")
		keys := make([]string, 0, len(p))
		for k := range p {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(k)
			b.WriteByte(':')
			fmt.Fprintf(&b, "%T", p[k])
			b.WriteByte(',')
		}
	case []any:
		b.WriteString("seq:")
		for _, v := range p {
			fmt.Fprintf(&b, "%T,", v)
		}
	default:
		fmt.Fprintf(&b, "scalar:%T", params)
	}
	return b.String()
}

func operationType(stmt *sqlast.Statement) string {
	switch stmt.Kind {
	case sqlast.KindSelect, sqlast.KindUnion, sqlast.KindWith:
		return "SELECT"
	case sqlast.KindInsert:
		return "INSERT"
	case sqlast.KindUpdate:
		return "UPDATE"
	case sqlast.KindDelete:
		return "DELETE"
	case sqlast.KindAnonymous:
		return "ANONYMOUS"
	default:
		return "OTHER"
	}
}

// selectExecutionStyle returns STATIC when that is the driver's
// execution target. Otherwise it keeps the statement's current style
// when the driver can execute every style present, and picks the
// driver's execution target when it cannot.
func selectExecutionStyle(placeholders ParameterInfoList, cfg DriverConfig) ParameterStyle {
	if cfg.executionTarget() == STATIC {
		return STATIC
	}
	if len(placeholders) == 0 {
		return cfg.DefaultParameterStyle
	}
	allowed := cfg.executionStyles()
	present := placeholders.Styles()
	subset := true
	for s := range present {
		if !supportsStyle(allowed, s) {
			subset = false
			break
		}
	}
	if subset {
		return placeholders.DominantStyle()
	}
	return cfg.executionTarget()
}

// containerShapeMismatch returns the first placeholder whose addressing
// disagrees with the caller's container shape: a named placeholder
// resolved from an ordered sequence, or a positional placeholder
// resolved from a keyed map. Scalars and nil containers are exempt; the
// scalar rule and missing-parameter validation in Reshape handle those.
func containerShapeMismatch(params any, placeholders ParameterInfoList) (ParameterInfo, string, bool) {
	switch params.(type) {
	case []any:
		for _, ph := range placeholders {
			if ph.Style.Named() {
				return ph, "sequence", true
			}
		}
	case map[string]any:
		for _, ph := range placeholders {
			if ph.Style.Positional() {
				return ph, "map", true
			}
		}
	}
	return ParameterInfo{}, "", false
}

func shapeMismatch(params any, targetStyle ParameterStyle) bool {
	want := ShapeFor(targetStyle)
	switch params.(type) {
	case map[string]any:
		return want != ShapeMap
	case []any:
		return want != ShapeSequence
	default:
		return false
	}
}
