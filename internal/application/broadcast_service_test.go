package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"broadcast-service/internal/adapters/output/memory"
	"broadcast-service/internal/domain"
)

var testTargets = []string{"mn", "vi", "zh-CN"}

// stubTranslator implements output.Translator for testing
type stubTranslator struct {
	mu            sync.Mutex
	calls         int
	translateFunc func(text, sourceLang, targetLang string) (string, error)
}

func (s *stubTranslator) Translate(_ context.Context, text, sourceLang, targetLang string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.translateFunc != nil {
		return s.translateFunc(text, sourceLang, targetLang)
	}
	return text + "/" + targetLang, nil
}

func (s *stubTranslator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type testFixture struct {
	srv      *BroadcastService
	registry *memory.SessionRegistry
	bus      *memory.EventBus
	cache    *memory.TranslationCache
	fast     *stubTranslator
	quality  *stubTranslator
}

func newFixture(historyCap int) *testFixture {
	f := &testFixture{
		registry: memory.NewSessionRegistry(historyCap, time.Hour),
		bus:      memory.NewEventBus(),
		cache:    memory.NewTranslationCache(500, time.Hour),
		fast:     &stubTranslator{},
		quality:  &stubTranslator{},
	}
	f.srv = NewBroadcastService(f.fast, f.quality, f.cache, f.registry, f.bus, nil, "ko", testTargets)
	return f
}

// collectEvents drains n messages from the subscription channel,
// failing the test if they do not arrive promptly.
func collectEvents(t *testing.T, ch <-chan domain.Message, n int) []domain.Message {
	t.Helper()
	events := make([]domain.Message, 0, n)
	for len(events) < n {
		select {
		case msg := <-ch:
			events = append(events, msg)
		case <-time.After(2 * time.Second):
			t.Fatalf("expected %d events, got %d before timeout", n, len(events))
		}
	}
	return events
}

// TestHandleFinalPublishesProvisionalBeforeFinal tests that for a
// finalized utterance the fast-pass message is published strictly
// before the quality-pass message carrying the same timestamp.
func TestHandleFinalPublishesProvisionalBeforeFinal(t *testing.T) {
	f := newFixture(100)
	sessionID := f.srv.CreateSession()

	ch, cancel := f.bus.Subscribe(sessionID)
	defer cancel()

	f.srv.HandleFinal(sessionID, "오늘 숙제를 확인하세요")

	events := collectEvents(t, ch, 2)
	if !events[0].Provisional() {
		t.Errorf("expected first event to be provisional, got state %s", events[0].State)
	}
	if events[1].State != domain.StateFinal {
		t.Errorf("expected second event to be final, got state %s", events[1].State)
	}
	if !events[0].Timestamp.Equal(events[1].Timestamp) {
		t.Error("expected both phases to share one timestamp")
	}
}

// TestHandleFinalReplacesProvisionalInHistory tests that after the
// quality pass the session history holds exactly one message for the
// utterance's timestamp, and it is no longer provisional.
func TestHandleFinalReplacesProvisionalInHistory(t *testing.T) {
	f := newFixture(100)
	sessionID := f.srv.CreateSession()

	f.srv.HandleFinal(sessionID, "교과서 32페이지를 펴세요")

	history, ok := f.srv.History(sessionID)
	if !ok {
		t.Fatal("expected session to exist")
	}
	if len(history) != 1 {
		t.Fatalf("expected exactly one history entry, got %d", len(history))
	}
	if history[0].State != domain.StateFinal {
		t.Errorf("expected final state in history, got %s", history[0].State)
	}
	if history[0].Provisional() {
		t.Error("expected provisional=false after quality pass")
	}
}

// TestInterimMessagesNeverEnterHistory tests interim isolation: the
// fast-only path touches the last-interim slot and the bus, never the
// persisted history, and the slot always holds the newest fragment.
func TestInterimMessagesNeverEnterHistory(t *testing.T) {
	f := newFixture(100)
	sessionID := f.srv.CreateSession()

	f.srv.HandleInterim(sessionID, "오늘")
	f.srv.HandleInterim(sessionID, "오늘 숙제는")

	history, ok := f.srv.History(sessionID)
	if !ok {
		t.Fatal("expected session to exist")
	}
	if len(history) != 0 {
		t.Errorf("expected empty history after interim submissions, got %d entries", len(history))
	}

	interim, ok := f.srv.LastInterim(sessionID)
	if !ok {
		t.Fatal("expected a last interim message")
	}
	if interim.Original != "오늘 숙제는" {
		t.Errorf("expected last interim to be the most recent fragment, got %q", interim.Original)
	}
	if !interim.Interim() {
		t.Error("expected interim state on last-interim slot")
	}
}

// TestQualityCacheIdempotence tests that translating the same text
// twice issues quality provider calls only once; the second final pass
// is served from cache.
func TestQualityCacheIdempotence(t *testing.T) {
	f := newFixture(100)
	sessionID := f.srv.CreateSession()

	f.srv.HandleFinal(sessionID, "수업을 시작하겠습니다")
	firstRound := f.quality.callCount()
	if firstRound != len(testTargets) {
		t.Fatalf("expected %d quality calls on first pass, got %d", len(testTargets), firstRound)
	}

	f.srv.HandleFinal(sessionID, "수업을 시작하겠습니다")
	if f.quality.callCount() != firstRound {
		t.Errorf("expected second pass to be served from cache, got %d extra quality calls",
			f.quality.callCount()-firstRound)
	}
}

// TestHandleFinalWithPartiallyWarmCache tests the normal post-expiry
// state where one language is cached and the rest miss: cached and
// provider results must combine into a complete map while provider
// goroutines are in flight, and only the missed languages may reach
// the quality backend.
func TestHandleFinalWithPartiallyWarmCache(t *testing.T) {
	f := newFixture(100)
	sessionID := f.srv.CreateSession()

	// a small provider delay keeps the per-language goroutines in
	// flight while the caller is still resolving cache hits
	slow := func(text, _, targetLang string) (string, error) {
		time.Sleep(time.Millisecond)
		return text + "/" + targetLang, nil
	}
	f.fast.translateFunc = slow
	f.quality.translateFunc = slow

	const rounds = 20
	for i := 0; i < rounds; i++ {
		text := fmt.Sprintf("반복 문장 %d", i)
		f.cache.Set(text, "vi", "cached "+text)

		f.srv.HandleFinal(sessionID, text)

		history, _ := f.srv.History(sessionID)
		final := history[len(history)-1]
		if final.Translations["vi"] != "cached "+text {
			t.Fatalf("round %d: expected cached vi translation, got %q", i, final.Translations["vi"])
		}
		if final.Translations["mn"] != text+"/mn" || final.Translations["zh-CN"] != text+"/zh-CN" {
			t.Fatalf("round %d: expected provider translations for missed languages, got %v", i, final.Translations)
		}
	}

	// two missed languages per utterance, per phase
	if got := f.quality.callCount(); got != 2*rounds {
		t.Errorf("expected %d quality calls, got %d", 2*rounds, got)
	}
	if got := f.fast.callCount(); got != 2*rounds {
		t.Errorf("expected %d fast calls, got %d", 2*rounds, got)
	}
}

// TestGracefulDegradationWhenBothBackendsFail tests that with both
// providers failing deterministically, every translation equals the
// original text and nothing escapes the pipeline.
func TestGracefulDegradationWhenBothBackendsFail(t *testing.T) {
	f := newFixture(100)
	providerDown := errors.New("provider down")
	f.fast.translateFunc = func(_, _, _ string) (string, error) { return "", providerDown }
	f.quality.translateFunc = func(_, _, _ string) (string, error) { return "", providerDown }

	sessionID := f.srv.CreateSession()
	ch, cancel := f.bus.Subscribe(sessionID)
	defer cancel()

	f.srv.HandleFinal(sessionID, "칠판을 보세요")

	events := collectEvents(t, ch, 2)
	for _, msg := range events {
		for _, lang := range testTargets {
			if msg.Translations[lang] != "칠판을 보세요" {
				t.Errorf("expected fallback to original for %s, got %q", lang, msg.Translations[lang])
			}
		}
	}

	// degraded results must never poison the cache
	if f.cache.Len() != 0 {
		t.Errorf("expected no cache entries after failed quality pass, got %d", f.cache.Len())
	}
}

// TestFastFailureDoesNotBlockQualityPass tests per-phase fault
// isolation: a dead fast backend still yields a provisional message
// (carrying source text) and the quality pass proceeds normally.
func TestFastFailureDoesNotBlockQualityPass(t *testing.T) {
	f := newFixture(100)
	f.fast.translateFunc = func(_, _, _ string) (string, error) { return "", errors.New("fast down") }

	sessionID := f.srv.CreateSession()
	ch, cancel := f.bus.Subscribe(sessionID)
	defer cancel()

	f.srv.HandleFinal(sessionID, "조용히 하세요")

	events := collectEvents(t, ch, 2)
	if events[0].Translations["mn"] != "조용히 하세요" {
		t.Errorf("expected provisional fallback to source text, got %q", events[0].Translations["mn"])
	}
	if events[1].Translations["mn"] != "조용히 하세요/mn" {
		t.Errorf("expected quality translation despite fast failure, got %q", events[1].Translations["mn"])
	}
}

// TestLateJoinerSeesLastInterim tests that a listener connecting after
// an interim publish can replay the in-progress fragment.
func TestLateJoinerSeesLastInterim(t *testing.T) {
	f := newFixture(100)
	sessionID := f.srv.CreateSession()

	// interim published with nobody subscribed: publish is a no-op,
	// but the slot retains the fragment for the next listener
	f.srv.HandleInterim(sessionID, "잠깐만요")

	interim, ok := f.srv.LastInterim(sessionID)
	if !ok {
		t.Fatal("expected interim replay to be available to a late joiner")
	}
	if interim.Original != "잠깐만요" {
		t.Errorf("expected latest interim fragment, got %q", interim.Original)
	}
	if interim.Translations["vi"] != "잠깐만요/vi" {
		t.Errorf("expected translated interim, got %q", interim.Translations["vi"])
	}
}

// TestKoreanToMongolianScenario runs the end-to-end two-phase scenario:
// a Mongolian listener first sees the fast draft, then the polished
// replacement under the same timestamp.
func TestKoreanToMongolianScenario(t *testing.T) {
	f := newFixture(100)
	f.fast.translateFunc = func(text, _, targetLang string) (string, error) {
		if text == "안녕하세요" && targetLang == "mn" {
			return "Sain baina uu", nil
		}
		return text, nil
	}
	f.quality.translateFunc = func(text, _, targetLang string) (string, error) {
		if text == "안녕하세요" && targetLang == "mn" {
			return "Сайн байна уу", nil
		}
		return text, nil
	}

	sessionID := f.srv.CreateSession()
	ch, cancel := f.bus.Subscribe(sessionID)
	defer cancel()

	f.srv.HandleFinal(sessionID, "안녕하세요")

	events := collectEvents(t, ch, 2)

	if !events[0].Provisional() || events[0].TranslationFor("mn") != "Sain baina uu" {
		t.Errorf("expected provisional 'Sain baina uu', got state %s text %q",
			events[0].State, events[0].TranslationFor("mn"))
	}
	if events[1].Provisional() || events[1].TranslationFor("mn") != "Сайн байна уу" {
		t.Errorf("expected final 'Сайн байна уу', got state %s text %q",
			events[1].State, events[1].TranslationFor("mn"))
	}
	if !events[0].Timestamp.Equal(events[1].Timestamp) {
		t.Error("expected the replacement to carry the provisional's timestamp")
	}
}

// TestHistoryCapEvictsOldest tests that submitting more finals than the
// history cap retains exactly the cap, oldest evicted first.
func TestHistoryCapEvictsOldest(t *testing.T) {
	f := newFixture(100)
	sessionID := f.srv.CreateSession()

	for i := 0; i < 101; i++ {
		f.srv.HandleFinal(sessionID, fmt.Sprintf("utterance %d", i))
	}

	history, ok := f.srv.History(sessionID)
	if !ok {
		t.Fatal("expected session to exist")
	}
	if len(history) != 100 {
		t.Fatalf("expected history capped at 100, got %d", len(history))
	}
	if history[0].Original != "utterance 1" {
		t.Errorf("expected oldest entry evicted, history starts with %q", history[0].Original)
	}
	if history[99].Original != "utterance 100" {
		t.Errorf("expected newest entry retained, history ends with %q", history[99].Original)
	}
}

// TestPipelineWritesAfterSessionEndAreNoOps tests that orchestration
// racing a session teardown neither crashes nor resurrects state.
func TestPipelineWritesAfterSessionEndAreNoOps(t *testing.T) {
	f := newFixture(100)
	sessionID := f.srv.CreateSession()
	if !f.srv.EndSession(sessionID) {
		t.Fatal("expected EndSession to report removal")
	}

	f.srv.HandleFinal(sessionID, "이미 끝난 수업")
	f.srv.HandleInterim(sessionID, "이미 끝난 수업")

	if f.srv.SessionActive(sessionID) {
		t.Error("expected session to stay absent after late pipeline writes")
	}
	if _, ok := f.srv.History(sessionID); ok {
		t.Error("expected no history for removed session")
	}
}

// TestEndSessionIdempotent tests that ending an unknown session is a
// reported non-error.
func TestEndSessionIdempotent(t *testing.T) {
	f := newFixture(100)
	if f.srv.EndSession("no-such-session") {
		t.Error("expected EndSession on unknown id to return false")
	}
}
