package metadata

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"btcturk/pkg/core"
)

// Snapshot is an immutable, point-in-time copy of all exchange metadata.
// It is built once per refresh and never mutated; lookups are safe for
// concurrent use without locking.
type Snapshot struct {
	TimeZone   string
	ServerTime int64

	// Symbols is ordered by the exchange's display order field.
	Symbols    []Symbol
	Currencies []Currency

	symbolsByName map[string]*Symbol
	symbolsByID   map[int64]*Symbol
	currencies    map[string]*Currency
	blocks        map[string]*CurrencyOperationBlock
}

// Symbol resolves a symbol by normalized name, exchange name or numeric
// id. Name matching is case-insensitive.
func (s *Snapshot) Symbol(ref string) (*Symbol, error) {
	if sym, ok := s.symbolsByName[strings.ToUpper(ref)]; ok {
		return sym, nil
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if sym, ok := s.symbolsByID[id]; ok {
			return sym, nil
		}
	}
	return nil, core.NewMetadataError(core.ErrCodeSymbolNotFound, "symbol %q not found", ref)
}

// SymbolByID resolves a symbol by its numeric id.
func (s *Snapshot) SymbolByID(id int64) (*Symbol, error) {
	if sym, ok := s.symbolsByID[id]; ok {
		return sym, nil
	}
	return nil, core.NewMetadataError(core.ErrCodeSymbolNotFound, "symbol id %d not found", id)
}

// Currency resolves a currency by ticker, case-insensitively.
func (s *Snapshot) Currency(symbol string) (*Currency, error) {
	if c, ok := s.currencies[strings.ToUpper(symbol)]; ok {
		return c, nil
	}
	return nil, core.NewMetadataError(core.ErrCodeCurrencyNotFound, "currency %q not found", symbol)
}

// OperationBlock returns the withdrawal/deposit block override for a
// currency, if any. Matching is case-insensitive.
func (s *Snapshot) OperationBlock(symbol string) (*CurrencyOperationBlock, bool) {
	b, ok := s.blocks[strings.ToUpper(symbol)]
	return b, ok
}

// Store holds the current metadata snapshot. Refresh replaces the
// snapshot atomically: readers never block and never observe a partially
// updated symbol set. Loads are serialized so concurrent refreshes cannot
// interleave. The store performs no network I/O; raw payload bytes come
// from the transport collaborator.
type Store struct {
	loadMu sync.Mutex
	snap   atomic.Pointer[Snapshot]
	logger zerolog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load events.
func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates an empty metadata store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var validateInfo = validator.New()

// Load parses a raw exchange-info payload, validates it and swaps it in
// as the current snapshot. A malformed required field fails the whole
// load; the previous snapshot stays in place so callers never trade
// against a partial metadata set.
func (s *Store) Load(raw []byte) (*Snapshot, error) {
	var info ExchangeInfo
	if err := sonic.Unmarshal(raw, &info); err != nil {
		return nil, core.NewMetadataError(core.ErrCodeMalformedMetadata, "decode exchange info: %v", err)
	}
	return s.LoadInfo(&info)
}

// LoadInfo builds and installs a snapshot from an already-parsed payload.
func (s *Store) LoadInfo(info *ExchangeInfo) (*Snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	snap, err := buildSnapshot(info)
	if err != nil {
		return nil, err
	}
	s.snap.Store(snap)
	s.logger.Debug().
		Int("symbols", len(snap.Symbols)).
		Int("currencies", len(snap.Currencies)).
		Msg("metadata snapshot loaded")
	return snap, nil
}

// Current returns the latest snapshot, or ErrCodeNotLoaded before the
// first successful load.
func (s *Store) Current() (*Snapshot, error) {
	if snap := s.snap.Load(); snap != nil {
		return snap, nil
	}
	return nil, core.NewMetadataError(core.ErrCodeNotLoaded, "exchange metadata not loaded")
}

// LookupSymbol resolves a symbol in the current snapshot by normalized
// name, exchange name or numeric id.
func (s *Store) LookupSymbol(ref string) (*Symbol, error) {
	snap, err := s.Current()
	if err != nil {
		return nil, err
	}
	return snap.Symbol(ref)
}

// LookupCurrency resolves a currency in the current snapshot.
func (s *Store) LookupCurrency(symbol string) (*Currency, error) {
	snap, err := s.Current()
	if err != nil {
		return nil, err
	}
	return snap.Currency(symbol)
}

func buildSnapshot(info *ExchangeInfo) (*Snapshot, error) {
	snap := &Snapshot{
		TimeZone:      info.TimeZone,
		ServerTime:    info.ServerTime,
		Symbols:       append([]Symbol(nil), info.Symbols...),
		Currencies:    append([]Currency(nil), info.Currencies...),
		symbolsByName: make(map[string]*Symbol, 2*len(info.Symbols)),
		symbolsByID:   make(map[int64]*Symbol, len(info.Symbols)),
		currencies:    make(map[string]*Currency, len(info.Currencies)),
		blocks:        make(map[string]*CurrencyOperationBlock, len(info.CurrencyOperationBlocks)),
	}

	sort.SliceStable(snap.Symbols, func(i, j int) bool {
		return snap.Symbols[i].Order < snap.Symbols[j].Order
	})

	for i := range snap.Symbols {
		sym := &snap.Symbols[i]
		if err := validateSymbol(sym); err != nil {
			return nil, err
		}

		normalized := strings.ToUpper(sym.NameNormalized)
		if _, dup := snap.symbolsByName[normalized]; dup {
			return nil, core.NewMetadataError(core.ErrCodeDuplicateSymbol, "duplicate symbol name %q", sym.NameNormalized)
		}
		snap.symbolsByName[normalized] = sym

		if _, dup := snap.symbolsByID[sym.ID]; dup {
			return nil, core.NewMetadataError(core.ErrCodeDuplicateSymbol, "duplicate symbol id %d", sym.ID)
		}
		snap.symbolsByID[sym.ID] = sym

		// Exchange name as a secondary alias, e.g. "BTCTRY" next to
		// "BTC_TRY".
		if name := strings.ToUpper(sym.Name); name != normalized {
			if _, dup := snap.symbolsByName[name]; dup {
				return nil, core.NewMetadataError(core.ErrCodeDuplicateSymbol, "duplicate symbol name %q", sym.Name)
			}
			snap.symbolsByName[name] = sym
		}
	}

	for i := range snap.Currencies {
		cur := &snap.Currencies[i]
		if err := validateCurrency(cur); err != nil {
			return nil, err
		}
		key := strings.ToUpper(cur.Symbol)
		if _, dup := snap.currencies[key]; dup {
			return nil, core.NewMetadataError(core.ErrCodeDuplicateCurrency, "duplicate currency %q", cur.Symbol)
		}
		snap.currencies[key] = cur
	}

	for i := range info.CurrencyOperationBlocks {
		block := info.CurrencyOperationBlocks[i]
		if block.CurrencySymbol == "" {
			return nil, core.NewMetadataError(core.ErrCodeMalformedMetadata, "currency operation block without currency symbol")
		}
		snap.blocks[strings.ToUpper(block.CurrencySymbol)] = &block
	}

	return snap, nil
}

func validateSymbol(sym *Symbol) error {
	if err := validateInfo.Struct(sym); err != nil {
		return core.NewMetadataError(core.ErrCodeMalformedMetadata, "symbol %q: %v", sym.Name, err)
	}

	priceFilters := 0
	for i := range sym.Filters {
		pf := sym.Filters[i].Price
		if pf == nil {
			continue
		}
		priceFilters++
		if pf.TickSize.Sign() <= 0 {
			return core.NewMetadataError(core.ErrCodeMalformedMetadata, "symbol %q: tick size must be positive", sym.Name)
		}
		if pf.MinPrice.Cmp(pf.MaxPrice) > 0 {
			return core.NewMetadataError(core.ErrCodeMalformedMetadata, "symbol %q: min price above max price", sym.Name)
		}
	}
	if priceFilters > 1 {
		return core.NewMetadataError(core.ErrCodeMalformedMetadata, "symbol %q: more than one price filter", sym.Name)
	}
	return nil
}

func validateCurrency(cur *Currency) error {
	if err := validateInfo.Struct(cur); err != nil {
		return core.NewMetadataError(core.ErrCodeMalformedMetadata, "currency %q: %v", cur.Symbol, err)
	}
	if cur.Tag.Enable && (cur.Tag.Name == nil || *cur.Tag.Name == "") {
		return core.NewMetadataError(core.ErrCodeMalformedMetadata, "currency %q: tag enabled without a name", cur.Symbol)
	}
	return nil
}
