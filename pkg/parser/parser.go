// Package parser owns the tree-sitter grammars used to read icon component
// sources: pooled parsers per dialect and a cache of compiled queries.
package parser

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/gnana997/iconport/pkg/util"
)

// queryKey identifies a compiled query. Queries hold grammar-specific symbol
// ids, so the same pattern is compiled once per dialect.
type queryKey struct {
	dialect Dialect
	pattern string
}

// Manager parses component sources with lazily created parser pools.
//
// Memory Management:
//   - Manager owns parsers and compiled queries and must be closed via Close()
//   - Callers own Tree instances and must call tree.Close() after use
//
// Thread Safety:
//   - Parse and Matches are safe for concurrent use
//   - Each dialect pool holds up to util.PoolSize(size) parsers
//
// Example:
//
//	manager := NewManager(logger, 0)
//	defer manager.Close()
//
//	tree, err := manager.Parse(source, DialectTSX)
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
type Manager struct {
	pools   map[Dialect]*parserPool
	queries map[queryKey]*ts.Query
	size    int

	// mutex guards pools, queries and parses
	mutex  sync.RWMutex
	parses int

	logger *slog.Logger
}

// NewManager creates a Manager. poolSize <= 0 selects util.OptimalPoolSize(),
// which matches the conversion worker pool.
func NewManager(logger *slog.Logger, poolSize int) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		pools:   make(map[Dialect]*parserPool),
		queries: make(map[queryKey]*ts.Query),
		size:    util.PoolSize(poolSize),
		logger:  logger,
	}
}

// Parse parses source with the grammar for dialect.
//
// Returns a Tree that MUST be closed by the caller. Trees with syntax errors
// are still returned (tree-sitter recovers locally and the extractors only
// need the well-formed parts); the error flag is logged.
func (m *Manager) Parse(source []byte, dialect Dialect) (*ts.Tree, error) {
	if dialect == DialectUnknown {
		return nil, fmt.Errorf("cannot parse unknown dialect")
	}

	pool, err := m.getOrCreatePool(dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", dialect, err)
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}

	m.mutex.Lock()
	m.parses++
	m.mutex.Unlock()

	if tree.RootNode().HasError() {
		m.logger.Debug("parse tree contains errors", "dialect", dialect.String())
	}

	return tree, nil
}

// ParseFile parses source using the dialect implied by filePath.
func (m *Manager) ParseFile(source []byte, filePath string) (*ts.Tree, Dialect, error) {
	dialect := DetectDialect(filePath)
	if dialect == DialectUnknown {
		return nil, dialect, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	tree, err := m.Parse(source, dialect)
	return tree, dialect, err
}

// Capture is one captured node of a query match.
type Capture struct {
	Name string
	Node *ts.Node
	Text string
}

// Match is one pattern match, captures keyed by capture name.
type Match struct {
	PatternIndex uint
	Captures     map[string]Capture
	// StartByte is the lowest start offset among the captures; matches are
	// returned sorted by it.
	StartByte uint
}

// Matches runs pattern against node and returns every match in source order.
// The compiled query is cached per (dialect, pattern).
func (m *Manager) Matches(dialect Dialect, pattern string, node *ts.Node, source []byte) ([]Match, error) {
	if node == nil {
		return nil, fmt.Errorf("node is nil")
	}

	query, err := m.getOrCompileQuery(dialect, pattern)
	if err != nil {
		return nil, err
	}

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	names := query.CaptureNames()
	iter := cursor.Matches(query, node, source)

	var matches []Match
	for {
		qm := iter.Next()
		if qm == nil {
			break
		}

		match := Match{
			PatternIndex: uint(qm.PatternIndex),
			Captures:     make(map[string]Capture, len(qm.Captures)),
			StartByte:    ^uint(0),
		}
		for _, c := range qm.Captures {
			var name string
			if int(c.Index) < len(names) {
				name = names[c.Index]
			}
			captured := c.Node
			match.Captures[name] = Capture{
				Name: name,
				Node: &captured,
				Text: captured.Utf8Text(source),
			}
			if captured.StartByte() < match.StartByte {
				match.StartByte = captured.StartByte()
			}
		}
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].StartByte < matches[j].StartByte
	})

	return matches, nil
}

// Close releases all parsers and compiled queries.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	closed := 0
	for _, pool := range m.pools {
		closed += pool.close()
	}
	for key, query := range m.queries {
		query.Close()
		delete(m.queries, key)
	}
	m.pools = make(map[Dialect]*parserPool)

	m.logger.Debug("closed parser manager",
		"parsers_closed", closed,
		"parses", m.parses)

	return nil
}

// Stats contains parser usage statistics.
type Stats struct {
	ParsersCreated  int
	ParsesCalled    int
	QueriesCompiled int
}

// GetStats returns parser usage statistics.
func (m *Manager) GetStats() Stats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	created := 0
	for _, pool := range m.pools {
		created += pool.createdCount()
	}

	return Stats{
		ParsersCreated:  created,
		ParsesCalled:    m.parses,
		QueriesCompiled: len(m.queries),
	}
}

// getOrCreatePool returns the pool for dialect, creating it on first use.
func (m *Manager) getOrCreatePool(dialect Dialect) (*parserPool, error) {
	m.mutex.RLock()
	pool, ok := m.pools[dialect]
	m.mutex.RUnlock()
	if ok {
		return pool, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if pool, ok = m.pools[dialect]; ok {
		return pool, nil
	}

	langPtr, err := languagePointer(dialect)
	if err != nil {
		return nil, err
	}
	pool = newParserPool(dialect, langPtr, m.size, m.logger)
	m.pools[dialect] = pool

	m.logger.Debug("created parser pool", "dialect", dialect.String(), "max_size", m.size)

	return pool, nil
}

func (m *Manager) getOrCompileQuery(dialect Dialect, pattern string) (*ts.Query, error) {
	key := queryKey{dialect: dialect, pattern: pattern}

	m.mutex.RLock()
	query, ok := m.queries[key]
	m.mutex.RUnlock()
	if ok {
		return query, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if query, ok = m.queries[key]; ok {
		return query, nil
	}

	langPtr, err := languagePointer(dialect)
	if err != nil {
		return nil, err
	}
	query, qerr := ts.NewQuery(ts.NewLanguage(langPtr), pattern)
	if qerr != nil {
		return nil, fmt.Errorf("failed to compile query for %s: %s", dialect, qerr.Message)
	}
	m.queries[key] = query

	return query, nil
}

// languagePointer returns the grammar for dialect.
func languagePointer(dialect Dialect) (unsafe.Pointer, error) {
	switch dialect {
	case DialectTSX:
		return ts_typescript.LanguageTSX(), nil
	case DialectJSX:
		return ts_javascript.Language(), nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
}
