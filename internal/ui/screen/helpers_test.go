package screen

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-monitor/internal/config"
	"github.com/rovshanmuradov/token-monitor/internal/export"
	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/logger"
	"github.com/rovshanmuradov/token-monitor/internal/poller"
	"github.com/rovshanmuradov/token-monitor/internal/token"
	"github.com/rovshanmuradov/token-monitor/internal/ui"
)

var errRejected = errors.New("status 409: token already exists")

type stubFetcher struct {
	tokens []token.Token
	err    error
}

func (f *stubFetcher) ListTokens(context.Context) ([]token.Token, error) {
	return f.tokens, f.err
}

type stubTokenService struct {
	mu      sync.Mutex
	added   []string
	deleted []string
	toggled map[string]bool
	err     error
}

func (s *stubTokenService) AddToken(_ context.Context, name, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, name+"="+address)
	return nil
}

func (s *stubTokenService) DeleteToken(_ context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, address)
	return nil
}

func (s *stubTokenService) SetActive(_ context.Context, address string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.toggled == nil {
		s.toggled = make(map[string]bool)
	}
	s.toggled[address] = active
	return nil
}

type testEnv struct {
	services *ui.RealServiceProvider
	tokens   *stubTokenService
	fetcher  *stubFetcher
	poller   *poller.Poller
	logs     *logger.LogBuffer
	cfg      *config.Config
}

func sampleTokens() []token.Token {
	return []token.Token{
		{
			Name:           "Bonk",
			Address:        "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263",
			CurrentPrice:   token.NewNumber(0.000021),
			PriceChange24h: token.NewNumber(-3.5),
			RSI1m:          token.NewNumber(72),
			Active:         true,
		},
		{
			Name:           "Wif",
			Address:        "EKpQGSJtjMFqKZ9KQanSqYXRcF8fBopzLHYxdM65zcjm",
			CurrentPrice:   token.NewNumber(1.5),
			PriceChange24h: token.NewNumber(4.25),
			RSI1m:          token.NewNumber(40),
			Active:         false,
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		APIBaseURL:      "http://localhost:8000",
		RefreshInterval: time.Minute,
		ExportDir:       t.TempDir(),
		AddressFormat:   "any",
	}
	formatter := format.NewFormatter(4, time.UTC)
	fetcher := &stubFetcher{tokens: sampleTokens()}
	p := poller.New(fetcher, cfg.RefreshInterval, zap.NewNop())
	logs, err := logger.NewLogBuffer(50, "", nil)
	if err != nil {
		t.Fatalf("log buffer: %v", err)
	}
	svc := &stubTokenService{}

	services := ui.NewRealServiceProvider(context.Background(), cfg, zap.NewNop(), ui.Services{
		Poller:    p,
		Tokens:    svc,
		Formatter: formatter,
		Exporter:  export.NewSnapshotExporter(formatter, zap.NewNop()),
		Logs:      logs,
	})
	return &testEnv{services: services, tokens: svc, fetcher: fetcher, poller: p, logs: logs, cfg: cfg}
}

// poll runs one poll cycle and applies it the way the app model does.
func (e *testEnv) poll(forced bool) ui.PollResultMsg {
	msg := ui.PollCmd(context.Background(), e.poller, forced)().(ui.PollResultMsg)
	e.services.GetSession().Apply(msg.Result)
	return msg
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(update func(tea.Msg), s string) {
	for _, r := range s {
		update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}
