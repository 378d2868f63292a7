package application

import (
	"context"
	"sync"
	"time"

	"broadcast-service/internal/domain"
	"broadcast-service/internal/ports/input"
	"broadcast-service/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure BroadcastService implements the input port
var _ input.BroadcastService = (*BroadcastService)(nil)

// BroadcastService struct - Application service implementing the live
// broadcast use cases: session lifecycle and the two-phase translation
// pipeline. A finalized utterance is translated twice under one
// timestamp - a fast provisional pass published within roughly a
// second, then a quality pass that replaces it in history and on the
// wire. Interim fragments take only the fast pass and never touch
// history.
type BroadcastService struct {
	fast     output.Translator
	quality  output.Translator
	cache    output.TranslationCache
	registry output.SessionRegistry
	bus      output.EventBus
	captions output.CaptionStore // nil when running without durable storage

	sourceLang string
	targets    []string
}

// NewBroadcastService func - Creates new broadcast service.
// captions may be nil; durable persistence is best-effort and optional.
func NewBroadcastService(
	fast output.Translator,
	quality output.Translator,
	cache output.TranslationCache,
	registry output.SessionRegistry,
	bus output.EventBus,
	captions output.CaptionStore,
	sourceLang string,
	targets []string,
) *BroadcastService {
	if sourceLang == "" {
		sourceLang = domain.DefaultSourceLanguage
	}
	if len(targets) == 0 {
		targets = domain.DefaultTargetLanguages()
	}
	return &BroadcastService{
		fast:       fast,
		quality:    quality,
		cache:      cache,
		registry:   registry,
		bus:        bus,
		captions:   captions,
		sourceLang: sourceLang,
		targets:    targets,
	}
}

// TargetLanguages returns the configured listener language set.
func (s *BroadcastService) TargetLanguages() []string {
	langs := make([]string, len(s.targets))
	copy(langs, s.targets)
	return langs
}

// CreateSession - Use case: start a new broadcast
func (s *BroadcastService) CreateSession() string {
	session := s.registry.Create()
	logrus.Infof("Created broadcast session %s", session.ID)

	if s.captions != nil {
		go func() {
			if err := s.captions.SaveSession(session.ID); err != nil {
				logrus.Errorf("Failed to persist session %s: %v", session.ID, err)
			}
		}()
	}
	return session.ID
}

// EndSession - Use case: tear a broadcast down. In-flight translation
// tasks for the session keep running; their registry writes become
// no-ops.
func (s *BroadcastService) EndSession(sessionID string) bool {
	removed := s.registry.Remove(sessionID)
	if removed {
		logrus.Infof("Ended broadcast session %s", sessionID)
	}

	if s.captions != nil {
		go func() {
			if err := s.captions.CloseSession(sessionID); err != nil {
				logrus.Errorf("Failed to close persisted session %s: %v", sessionID, err)
			}
		}()
	}
	return removed
}

// SessionActive reports whether the session currently exists.
func (s *BroadcastService) SessionActive(sessionID string) bool {
	_, ok := s.registry.Get(sessionID)
	return ok
}

// History returns the session's persisted message history.
func (s *BroadcastService) History(sessionID string) ([]domain.Message, bool) {
	return s.registry.History(sessionID)
}

// LastInterim returns the session's in-flight interim message, if any.
func (s *BroadcastService) LastInterim(sessionID string) (domain.Message, bool) {
	return s.registry.LastInterim(sessionID)
}

// HandleInterim - Use case: in-progress utterance. Fast pass only,
// stored in the single last-interim slot for late joiners and published
// on the bus; history is never touched. Publishing for an absent or
// listener-less session is a no-op, not an error.
func (s *BroadcastService) HandleInterim(sessionID, text string) {
	defer recoverPipeline("interim", sessionID)

	translations, _ := s.fanOut(context.Background(), s.fast, text)
	msg := domain.Message{
		Original:     text,
		Translations: translations,
		Timestamp:    time.Now(),
		State:        domain.StateInterim,
	}

	s.registry.SetLastInterim(sessionID, msg)
	s.bus.Publish(sessionID, msg)
}

// HandleFinal - Use case: finalized utterance, two sequential phases
// sharing one timestamp so the quality result overwrites the fast one.
// Phase 1 always completes and publishes before phase 2 begins; each
// phase degrades independently, so a dead quality backend leaves the
// provisional message as the permanent record and a dead fast backend
// still publishes the original text within phase 1.
func (s *BroadcastService) HandleFinal(sessionID, text string) {
	defer recoverPipeline("final", sessionID)

	timestamp := time.Now()

	// Phase 1: fast pass, provisional
	translations, _ := s.fanOut(context.Background(), s.fast, text)
	provisional := domain.Message{
		Original:     text,
		Translations: translations,
		Timestamp:    timestamp,
		State:        domain.StateProvisional,
	}
	s.registry.AppendOrReplace(sessionID, provisional)
	s.bus.Publish(sessionID, provisional)

	// Phase 2: quality pass, replaces phase 1 under the same timestamp
	qualityTranslations, fromProvider := s.fanOut(context.Background(), s.quality, text)
	final := domain.Message{
		Original:     text,
		Translations: qualityTranslations,
		Timestamp:    timestamp,
		State:        domain.StateFinal,
	}
	s.registry.AppendOrReplace(sessionID, final)

	// only genuine quality results are cached - never fast-pass text,
	// never the degrade fallback
	for lang := range fromProvider {
		s.cache.Set(text, lang, qualityTranslations[lang])
	}

	if s.captions != nil {
		go func() {
			if err := s.captions.SaveCaption(sessionID, final); err != nil {
				logrus.Errorf("Failed to persist caption for session %s: %v", sessionID, err)
			}
		}()
	}

	s.bus.Publish(sessionID, final)
}

// fanOut translates text into every target language concurrently and
// waits for all calls (fan-out/fan-in). The cache is consulted before
// the provider; a hit serves the stored quality result. Provider
// failures degrade to the original text so the phase always produces a
// complete translation map. fromProvider marks languages whose text
// came from a live provider call, the only results eligible for
// caching afterwards.
func (s *BroadcastService) fanOut(ctx context.Context, translator output.Translator, text string) (map[string]string, map[string]bool) {
	translations := make(map[string]string, len(s.targets))
	fromProvider := make(map[string]bool, len(s.targets))

	// resolve every cache hit before the first goroutine spawns so all
	// map writes below happen under the mutex
	pending := make([]string, 0, len(s.targets))
	for _, lang := range s.targets {
		if cached, ok := s.cache.Get(text, lang); ok {
			translations[lang] = cached
			continue
		}
		pending = append(pending, lang)
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, lang := range pending {
		wg.Add(1)
		go func(lang string) {
			defer wg.Done()
			translated, err := translator.Translate(ctx, text, s.sourceLang, lang)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logrus.Warnf("Translation to %s failed, falling back to source text: %v", lang, err)
				translations[lang] = text
				return
			}
			translations[lang] = translated
			fromProvider[lang] = true
		}(lang)
	}
	wg.Wait()

	return translations, fromProvider
}

// recoverPipeline is the supervision policy for detached pipeline
// tasks: log and continue. One utterance's failure must never take the
// broadcast down.
func recoverPipeline(phase, sessionID string) {
	if r := recover(); r != nil {
		logrus.Errorf("Broadcast %s pipeline panic for session %s: %v", phase, sessionID, r)
	}
}
